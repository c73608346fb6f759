// Package query provides the interface and base types for query plugins.
package query

import (
	"context"

	"github.com/spf13/cobra"

	pub "github.com/mobock/lumen/pkg/plugin"
)

// HandleOptions holds options passed to query plugins on each invocation.
type HandleOptions struct {
	// Verbose enables verbose output
	Verbose bool

	// PluginArgs are custom arguments for this plugin
	PluginArgs map[string]any
}

// Plugin represents a query plugin that turns one typed query into result
// items.
type Plugin interface {
	// Name returns the plugin's name (e.g., "colorconv", "dirwalk").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Handle computes result items for a query. Returning no items with a
	// nil error means the query is not for this plugin.
	Handle(ctx context.Context, query pub.Query, opts HandleOptions) ([]pub.Item, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin has all required inputs configured.
	Validate() error
}

// Registry holds all registered query plugins in registration order.
type Registry struct {
	plugins map[string]Plugin
	order   []string
}

// NewRegistry creates a new query plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(plugin Plugin) {
	if _, exists := r.plugins[plugin.Name()]; !exists {
		r.order = append(r.order, plugin.Name())
	}
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names in registration order.
func (r *Registry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns all registered plugins in registration order.
func (r *Registry) All() []Plugin {
	plugins := make([]Plugin, 0, len(r.order))
	for _, name := range r.order {
		plugins = append(plugins, r.plugins[name])
	}
	return plugins
}
