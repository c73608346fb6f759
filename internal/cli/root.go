// Package cli provides the command-line interface for Lumen.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mobock/lumen/internal/plugin/manager"
	"github.com/mobock/lumen/internal/version"
)

var (
	// Shared plugin manager instance used by all commands
	sharedPluginManager *manager.Manager

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "lumen",
		Short: "A launcher query plugin host",
		Long: `Lumen hosts query plugins for application launchers: it turns a single
typed query into a ranked list of result items with completions, icons and
actions.

Two plugins are built in: a color converter (rgb, hex, yiq, hls, hsl, hsv)
and a filesystem path walker. External plugin binaries are discovered in the
plugin directory and spoken to over RPC or json-stdio.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer sharedPluginManager.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Initialise shared plugin manager using builder pattern
	sharedPluginManager = manager.NewBuilder().
		WithEnvConfig().
		Build()

	// Register plugin flags with the commands that dispatch queries
	registerPluginFlags()

	// Plugin flags are namespaced "plugin.flag"; accept underscores for the
	// dashes as well.
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		sharedPluginManager.SetVerbose(verbose)
	}

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(pluginsCmd)
}

// registerPluginFlags registers plugin-specific flags with commands that use them.
func registerPluginFlags() {
	sharedPluginManager.RegisterFlags(queryCmd)
	sharedPluginManager.RegisterFlags(interactiveCmd)
}

func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
