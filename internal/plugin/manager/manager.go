// Package manager provides query plugin management with configuration support.
package manager

import (
	"context"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-ps"
	"github.com/spf13/cobra"

	"github.com/mobock/lumen/internal/plugin/executor"
	"github.com/mobock/lumen/internal/plugin/protocol"
	"github.com/mobock/lumen/internal/plugin/query"
	"github.com/mobock/lumen/internal/plugin/query/colorconv"
	"github.com/mobock/lumen/internal/plugin/query/dirwalk"
)

// Config holds plugin configuration.
type Config struct {
	// DisabledPlugins is a list of plugin names to disable.
	DisabledPlugins []string

	// EnabledPlugins is a list of plugin names to explicitly enable.
	// If set, only these plugins are enabled (whitelist mode).
	EnabledPlugins []string

	// PluginDir is the directory external plugin binaries are discovered in.
	PluginDir string
}

// Builder provides a fluent interface for constructing a Manager with configuration.
type Builder struct {
	config   Config
	registry *query.Registry
	logger   hclog.Logger
	useEnv   bool
	verbose  bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		config:   Config{},
		registry: query.NewRegistry(),
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig loads configuration from environment variables.
// Reads LUMEN_DISABLED_PLUGINS, LUMEN_ENABLED_PLUGINS and LUMEN_PLUGIN_DIR.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithPluginDir sets the directory external plugin binaries are discovered in.
func (b *Builder) WithPluginDir(dir string) *Builder {
	b.config.PluginDir = dir
	return b
}

// WithCustomRegistry allows providing a custom plugin registry (useful for testing).
func (b *Builder) WithCustomRegistry(registry *query.Registry) *Builder {
	b.registry = registry
	return b
}

// WithLogger sets the logger used for dispatch boundary logging.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithVerbose enables verbose plugin invocation.
func (b *Builder) WithVerbose(verbose bool) *Builder {
	b.verbose = verbose
	return b
}

// Build constructs the Manager with the configured settings.
func (b *Builder) Build() *Manager {
	if b.useEnv {
		if disabled := os.Getenv("LUMEN_DISABLED_PLUGINS"); disabled != "" {
			b.config.DisabledPlugins = splitList(disabled)
		}
		if enabled := os.Getenv("LUMEN_ENABLED_PLUGINS"); enabled != "" {
			b.config.EnabledPlugins = splitList(enabled)
		}
		if dir := os.Getenv("LUMEN_PLUGIN_DIR"); dir != "" {
			b.config.PluginDir = dir
		}
	}

	logger := b.logger
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:  "dispatch",
			Level: hclog.Error,
		})
	}

	m := &Manager{
		config:    b.config,
		registry:  b.registry,
		logger:    logger,
		verbose:   b.verbose,
		executors: make(map[string]*executor.PluginExecutor),
	}
	m.registerBuiltins()
	return m
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Manager coordinates the built-in query plugins and external plugin
// binaries, and dispatches queries across them.
type Manager struct {
	config    Config
	registry  *query.Registry
	logger    hclog.Logger
	verbose   bool
	executors map[string]*executor.PluginExecutor
}

// registerBuiltins registers the built-in query plugins, honoring the
// enable/disable configuration.
func (m *Manager) registerBuiltins() {
	for _, p := range []query.Plugin{colorconv.New(), dirwalk.New()} {
		if m.pluginEnabled(p.Name()) {
			m.registry.Register(p)
		}
	}
}

// pluginEnabled applies whitelist/blacklist filtering to a plugin name.
func (m *Manager) pluginEnabled(name string) bool {
	if len(m.config.EnabledPlugins) > 0 {
		return slices.Contains(m.config.EnabledPlugins, name)
	}
	return !slices.Contains(m.config.DisabledPlugins, name)
}

// SetVerbose toggles verbose plugin invocation after construction. The CLI
// builds the manager before flags are parsed.
func (m *Manager) SetVerbose(verbose bool) {
	m.verbose = verbose
	if verbose {
		m.logger.SetLevel(hclog.Debug)
	}
}

// PluginDir returns the configured external plugin directory.
func (m *Manager) PluginDir() string {
	return m.config.PluginDir
}

// AllPlugins returns the registered in-process plugins in order.
func (m *Manager) AllPlugins() []query.Plugin {
	return m.registry.All()
}

// RegisterFlags registers every plugin's flags with a cobra command.
func (m *Manager) RegisterFlags(cmd *cobra.Command) {
	for _, p := range m.registry.All() {
		p.RegisterFlags(cmd)
	}
}

// ExternalPaths lists executable plugin binaries in the configured plugin
// directory.
func (m *Manager) ExternalPaths() []string {
	if m.config.PluginDir == "" {
		return nil
	}
	entries, err := os.ReadDir(m.config.PluginDir)
	if err != nil {
		return nil
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}
		if !m.pluginEnabled(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(m.config.PluginDir, entry.Name()))
	}
	return paths
}

// Dispatch runs one raw query against every enabled plugin in order and
// returns the first non-empty result set. This is the boundary between the
// host and plugin code: plugin errors and panics are logged with a stack
// trace and swallowed, so a single bad query can never crash the host.
func (m *Manager) Dispatch(ctx context.Context, raw string) []protocol.Item {
	q := protocol.Query{Raw: raw}
	opts := query.HandleOptions{Verbose: m.verbose}

	for _, p := range m.registry.All() {
		if items := m.safeHandle(ctx, p, q, opts); len(items) > 0 {
			return items
		}
	}

	rpcOpts := protocol.HandleOptions{Verbose: m.verbose}
	for _, path := range m.ExternalPaths() {
		if items := m.safeHandleExternal(ctx, path, q, rpcOpts); len(items) > 0 {
			return items
		}
	}

	return nil
}

// safeHandle invokes an in-process plugin, converting failures to an empty
// contribution plus a log line.
func (m *Manager) safeHandle(ctx context.Context, p query.Plugin, q protocol.Query, opts query.HandleOptions) (items []protocol.Item) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("query plugin panicked",
				"plugin", p.Name(),
				"panic", r,
				"stack", string(debug.Stack()))
			items = nil
		}
	}()

	items, err := p.Handle(ctx, q, opts)
	if err != nil {
		m.logger.Error("query plugin failed",
			"plugin", p.Name(),
			"error", err,
			"stack", string(debug.Stack()))
		return nil
	}
	return items
}

// safeHandleExternal invokes an external plugin binary through its executor
// with the same swallow semantics.
func (m *Manager) safeHandleExternal(ctx context.Context, path string, q protocol.Query, opts protocol.HandleOptions) []protocol.Item {
	exe, err := m.executorFor(path)
	if err != nil {
		m.logger.Error("external plugin unavailable", "path", path, "error", err)
		return nil
	}

	items, err := exe.Handle(ctx, q, opts)
	if err != nil {
		m.logger.Error("external plugin failed", "path", path, "error", err)
		return nil
	}
	return items
}

// executorFor returns a cached executor for a plugin binary, creating it on
// first use.
func (m *Manager) executorFor(path string) (*executor.PluginExecutor, error) {
	if exe, ok := m.executors[path]; ok {
		return exe, nil
	}
	exe, err := executor.NewWithVerbose(path, m.verbose)
	if err != nil {
		return nil, err
	}
	m.executors[path] = exe
	return exe, nil
}

// Running reports which external plugin binaries currently have a live
// process, keyed by binary name.
func (m *Manager) Running() map[string]bool {
	running := make(map[string]bool)
	names := make(map[string]bool)
	for _, path := range m.ExternalPaths() {
		names[filepath.Base(path)] = true
		running[filepath.Base(path)] = false
	}
	if len(names) == 0 {
		return running
	}

	processes, err := ps.Processes()
	if err != nil {
		return running
	}
	for _, proc := range processes {
		if names[proc.Executable()] {
			running[proc.Executable()] = true
		}
	}
	return running
}

// Close releases executors and any plugin-held resources.
func (m *Manager) Close() {
	for _, exe := range m.executors {
		exe.Close()
	}
	m.executors = make(map[string]*executor.PluginExecutor)

	for _, p := range m.registry.All() {
		if closer, ok := p.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}
