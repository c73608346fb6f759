package cli

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	pub "github.com/mobock/lumen/pkg/plugin"
)

// interactiveCmd previews the launcher experience in the terminal: every
// keystroke re-runs the query pipeline and redraws the result list.
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactively preview queries as you type",
	Long: `Open a full-screen prompt that dispatches the current input on every
keystroke, the same contract a launcher holds its plugins to.

Esc or Ctrl-C exits.`,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	session := &interactiveSession{
		screen:   screen,
		dispatch: sharedPluginManager.Dispatch,
	}
	session.run(cmd.Context())
	return nil
}

// interactiveSession holds the state of one interactive run.
type interactiveSession struct {
	screen   tcell.Screen
	dispatch func(context.Context, string) []pub.Item
	input    []rune
	items    []pub.Item
}

func (s *interactiveSession) run(ctx context.Context) {
	s.draw()

	for {
		switch ev := s.screen.PollEvent().(type) {
		case *tcell.EventResize:
			s.screen.Sync()
			s.draw()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(s.input) > 0 {
					s.input = s.input[:len(s.input)-1]
					s.requery(ctx)
				}
			case tcell.KeyCtrlU:
				if len(s.input) > 0 {
					s.input = nil
					s.requery(ctx)
				}
			case tcell.KeyRune:
				s.input = append(s.input, ev.Rune())
				s.requery(ctx)
			}
		}
	}
}

// requery re-dispatches the current input and redraws.
func (s *interactiveSession) requery(ctx context.Context) {
	if len(s.input) == 0 {
		s.items = nil
	} else {
		s.items = s.dispatch(ctx, string(s.input))
	}
	s.draw()
}

func (s *interactiveSession) draw() {
	s.screen.Clear()
	width, height := s.screen.Size()

	prompt := "> " + string(s.input)
	drawText(s.screen, 0, 0, width, prompt, tcell.StyleDefault.Bold(true))

	row := 2
	for _, item := range s.items {
		if row >= height {
			break
		}
		drawText(s.screen, 0, row, width, item.Text, tcell.StyleDefault)
		row++
		if item.Subtext != "" && row < height {
			drawText(s.screen, 2, row, width-2, item.Subtext, tcell.StyleDefault.Dim(true))
			row++
		}
	}

	s.screen.ShowCursor(len(prompt), 0)
	s.screen.Show()
}

// drawText writes a single clipped line of text at (x, y).
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col-x >= maxWidth {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}
