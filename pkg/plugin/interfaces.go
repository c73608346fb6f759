// Package plugin provides the public API for lumen query plugins.
package plugin

import (
	"context"
)

// QueryPlugin is the interface that query plugins must implement for
// go-plugin RPC.
type QueryPlugin interface {
	// Handle computes result items for one query invocation. A nil or
	// empty slice with a nil error means "not my query" and is not an
	// error condition.
	Handle(ctx context.Context, query Query, opts HandleOptions) ([]Item, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo

	// GetFlagHelp returns help information for plugin flags.
	GetFlagHelp() []FlagHelp
}
