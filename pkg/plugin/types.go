// Package plugin provides the public API for lumen query plugins.
// External plugins should import this package instead of internal packages.
package plugin

// Query is the raw launcher input handed to a plugin on each keystroke.
type Query struct {
	// Raw is the full query string as typed, including the system tag or
	// path prefix that selects a plugin.
	Raw string `json:"raw"`
}

// ActionKind distinguishes what selecting an action does.
type ActionKind string

const (
	// ActionClipboard copies the action payload to the clipboard.
	ActionClipboard ActionKind = "clipboard"

	// ActionExec launches the payload as an argv via the host.
	ActionExec ActionKind = "exec"
)

// Action describes one selectable action on a result item. Plugins only
// describe actions; the host performs them.
type Action struct {
	Kind ActionKind `json:"kind"`
	Text string     `json:"text"`

	// Payload is the clipboard string (single element) or the argv for
	// exec actions.
	Payload []string `json:"payload"`
}

// Item is one result entry shown by the launcher.
type Item struct {
	// Completion replaces the input line when the user tabs on the item.
	Completion string `json:"completion"`

	// Text is the primary display line.
	Text string `json:"text"`

	// Subtext is the secondary description line.
	Subtext string `json:"subtext"`

	// IconPath points at an image file rendered next to the item.
	IconPath string `json:"icon_path,omitempty"`

	Actions []Action `json:"actions,omitempty"`
}

// HandleOptions holds options passed to query plugins on each invocation.
type HandleOptions struct {
	Verbose    bool           `json:"verbose"`
	PluginArgs map[string]any `json:"plugin_args,omitempty"`
}

// FlagHelp represents help information for a single plugin flag.
// This type is part of the plugin protocol and is used by both internal and
// external plugins.
type FlagHelp struct {
	Name        string `json:"name"`        // Flag name (e.g., "dirwalk.opener")
	Shorthand   string `json:"shorthand"`   // Short flag
	Type        string `json:"type"`        // Type (e.g., "string", "int", "bool")
	Default     string `json:"default"`     // Default value as string
	Description string `json:"description"` // Help text
	Required    bool   `json:"required"`    // Is this flag required?
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Type            string `json:"type"` // always "query"
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}
