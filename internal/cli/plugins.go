package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mobock/lumen/internal/compression"
	"github.com/mobock/lumen/internal/plugin/protocol"
	"github.com/mobock/lumen/internal/security"
)

// pluginsCmd represents the plugins command.
var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "Manage plugins",
	Long: `Manage Lumen query plugins including listing, installing, and inspecting
external plugin binaries.

Plugins can be controlled via environment variables:
  LUMEN_ENABLED_PLUGINS   comma list; when set, only these plugins run
  LUMEN_DISABLED_PLUGINS  comma list of plugins to disable
  LUMEN_PLUGIN_DIR        directory external plugin binaries live in

When LUMEN_ENABLED_PLUGINS is set, only those plugins are enabled (whitelist
mode). When LUMEN_DISABLED_PLUGINS is set, those plugins are disabled
(blacklist mode).`,
}

// pluginListCmd lists all available plugins.
var pluginListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available plugins",
	Long: `List all available plugins including built-in query plugins and external
binaries in the plugin directory, with their running state.`,
	RunE: runPluginList,
}

// pluginAddCmd installs an external plugin binary or archive.
var pluginAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Install an external plugin",
	Long: `Install an external plugin into the plugin directory.

The source may be a plugin binary, a compressed file (.gz, .xz, .bz2), or an
archive (.tar.gz, .tar.xz, .tar.bz2, .zip) containing the plugin binary. The
plugin must answer --plugin-info with a compatible protocol version.

Examples:
  lumen plugins add ./lumen-plugin-calc
  lumen plugins add lumen-plugin-calc_0.1.0_Linux_x86_64.tar.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runPluginAdd,
}

// pluginInfoCmd prints metadata for an external plugin.
var pluginInfoCmd = &cobra.Command{
	Use:   "info <plugin-name>",
	Short: "Show metadata for an installed external plugin",
	Args:  cobra.ExactArgs(1),
	RunE:  runPluginInfo,
}

func init() {
	pluginsCmd.AddCommand(pluginListCmd)
	pluginsCmd.AddCommand(pluginAddCmd)
	pluginsCmd.AddCommand(pluginInfoCmd)
}

func runPluginList(cmd *cobra.Command, args []string) error {
	table := NewTable([]string{"NAME", "KIND", "STATE", "DESCRIPTION"})
	if width := terminalWidth(); width > 0 {
		table.SetColumnMaxWidth(3, width/2)
	}

	for _, p := range sharedPluginManager.AllPlugins() {
		table.AddRow([]string{p.Name(), "builtin", "enabled", p.Description()})
	}

	running := sharedPluginManager.Running()
	for _, path := range sharedPluginManager.ExternalPaths() {
		name := filepath.Base(path)
		state := "installed"
		if running[name] {
			state = "running"
		}

		description := ""
		if result, err := protocol.DetectProtocol(path); err == nil {
			description = result.PluginInfo.Description
		}

		table.AddRow([]string{name, "external", state, description})
	}

	fmt.Print(table.Render())
	return nil
}

func runPluginAdd(cmd *cobra.Command, args []string) error {
	source := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	pluginDir, err := resolvePluginDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(pluginDir, 0o755); err != nil {
		return fmt.Errorf("failed to create plugin directory: %w", err)
	}

	data, err := os.ReadFile(source) // #nosec G304 - user-supplied install source
	if err != nil {
		return fmt.Errorf("failed to read plugin source: %w", err)
	}

	result, err := compression.InstallPlugin(data, filepath.Base(source), pluginDir, verbose)
	if err != nil {
		return fmt.Errorf("failed to install plugin: %w", err)
	}

	if err := security.ValidatePluginPath(result.Path, pluginDir); err != nil {
		os.Remove(result.Path)
		return err
	}

	// The installed binary must identify itself before we keep it.
	detected, err := protocol.DetectProtocol(result.Path)
	if err != nil {
		os.Remove(result.Path)
		return fmt.Errorf("installed file is not a lumen plugin: %w", err)
	}

	compatible, err := protocol.IsCompatible(detected.PluginInfo.ProtocolVersion)
	if err != nil {
		os.Remove(result.Path)
		return fmt.Errorf("protocol compatibility check failed: %w", err)
	}
	if !compatible {
		os.Remove(result.Path)
		return fmt.Errorf("plugin protocol version %s is not compatible (requires %s, min %s)",
			detected.PluginInfo.ProtocolVersion, protocol.ProtocolVersion, protocol.MinCompatibleVersion)
	}

	fmt.Printf("Plugin '%s' installed successfully\n", detected.PluginInfo.Name)
	if detected.PluginInfo.Description != "" {
		fmt.Printf("Description: %s\n", detected.PluginInfo.Description)
	}
	if detected.PluginInfo.Version != "" {
		fmt.Printf("Version: %s\n", detected.PluginInfo.Version)
	}
	fmt.Printf("Protocol: %s (%s)\n", detected.PluginInfo.ProtocolVersion, detected.Type)
	fmt.Printf("Path: %s\n", result.Path)
	return nil
}

func runPluginInfo(cmd *cobra.Command, args []string) error {
	name := args[0]

	for _, path := range sharedPluginManager.ExternalPaths() {
		if filepath.Base(path) != name {
			continue
		}

		detected, err := protocol.DetectProtocol(path)
		if err != nil {
			return fmt.Errorf("failed to query plugin: %w", err)
		}

		info := detected.PluginInfo
		fmt.Printf("Name: %s\n", info.Name)
		if info.Description != "" {
			fmt.Printf("Description: %s\n", info.Description)
		}
		fmt.Printf("Type: %s\n", info.Type)
		if info.Version != "" {
			fmt.Printf("Version: %s\n", info.Version)
		}
		fmt.Printf("Protocol: %s (%s)\n", info.ProtocolVersion, detected.Type)
		fmt.Printf("Path: %s\n", path)
		return nil
	}

	return fmt.Errorf("external plugin '%s' not found", name)
}

// resolvePluginDir returns the configured plugin directory, defaulting to the
// user data directory.
func resolvePluginDir() (string, error) {
	if dir := sharedPluginManager.PluginDir(); dir != "" {
		return dir, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve plugin directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "lumen", "plugins"), nil
}
