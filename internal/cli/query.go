package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	pub "github.com/mobock/lumen/pkg/plugin"
)

// queryCmd runs one query through the plugin pipeline and prints the results.
var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run a single query through the plugin pipeline",
	Long: `Run a single query string through the enabled query plugins and print the
result items.

The query is dispatched exactly as a launcher would dispatch a keystroke:
plugins are tried in order and the first one claiming the query wins.

Examples:
  lumen query "rgb(100, 60, 20)"
  lumen query "#643c14"
  lumen query "~/Doc"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	items := sharedPluginManager.Dispatch(cmd.Context(), args[0])

	if len(items) == 0 {
		quiet, _ := cmd.Flags().GetBool("quiet")
		if !quiet {
			fmt.Println("No results.")
		}
		return nil
	}

	fmt.Print(renderItems(items))
	return nil
}

// renderItems formats result items as a text table sized to the terminal.
func renderItems(items []pub.Item) string {
	table := NewTable([]string{"RESULT", "DESCRIPTION", "COMPLETION"})

	if width := terminalWidth(); width > 0 {
		// Leave the other columns roughly half the line.
		table.SetColumnMaxWidth(1, width/2)
	}

	for _, item := range items {
		table.AddRow([]string{item.Text, item.Subtext, item.Completion})
	}

	return table.Render()
}

// terminalWidth returns the stdout width, or 0 when not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}
