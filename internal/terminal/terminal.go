// Package terminal implements runner.Terminal against the real controlling
// tty: raw mode and alt-screen/cursor control via ANSI escapes, and a
// minimal plain-text directory listing. Full widget layout is an external
// collaborator's job; this is just enough to drive the dispatcher loop
// end to end.
package terminal

import (
	"fmt"
	"io"
	"os"

	xterm "github.com/charmbracelet/x/term"
	"github.com/mattn/go-runewidth"

	"github.com/sayanarijit/xplr-sub000/internal/appstate"
)

// maxNameWidth is the display-cell budget (not byte/rune count) a node
// name is truncated to, since filenames may contain wide CJK runes that
// occupy two terminal cells each.
const maxNameWidth = 60

// Terminal drives stdin/stdout directly, matching the runner.Terminal
// interface.
type Terminal struct {
	in    *os.File
	out   io.Writer
	state *xterm.State
}

// New returns a Terminal bound to stdin/stdout.
func New() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stdout}
}

func (t *Terminal) EnableRawMode() error {
	state, err := xterm.MakeRaw(t.in.Fd())
	if err != nil {
		return fmt.Errorf("terminal: entering raw mode: %w", err)
	}
	t.state = state
	return nil
}

func (t *Terminal) DisableRawMode() error {
	if t.state == nil {
		return nil
	}
	err := xterm.Restore(t.in.Fd(), t.state)
	t.state = nil
	return err
}

func (t *Terminal) EnterAltScreen() error {
	_, err := fmt.Fprint(t.out, "\x1b[?1049h")
	return err
}

func (t *Terminal) LeaveAltScreen() error {
	_, err := fmt.Fprint(t.out, "\x1b[?1049l")
	return err
}

func (t *Terminal) HideCursor() error {
	_, err := fmt.Fprint(t.out, "\x1b[?25l")
	return err
}

func (t *Terminal) ShowCursor() error {
	_, err := fmt.Fprint(t.out, "\x1b[?25h")
	return err
}

func (t *Terminal) Clear() error {
	_, err := fmt.Fprint(t.out, "\x1b[2J\x1b[H")
	return err
}

// Draw renders a minimal listing of the focused directory: one line per
// node, the focused one marked with a caret, selected ones with an
// asterisk. It is a placeholder for a real widget-layout renderer, which
// is out of this core's scope.
func (t *Terminal) Draw(app appstate.App) error {
	if err := t.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(t.out, "%s\r\n", app.Pwd)

	buf, ok := app.Buffer()
	if !ok {
		return nil
	}
	for i, n := range buf.Nodes {
		marker := "  "
		if i == buf.Scroll.CurrentFocus {
			marker = "> "
		}
		sel := " "
		if app.IsSelected(n.AbsolutePath) {
			sel = "*"
		}
		fmt.Fprintf(t.out, "%s%s%s\r\n", marker, sel, truncateName(n.RelativePath))
	}
	return nil
}

// truncateName trims name to maxNameWidth display cells, accounting for
// double-width runes, appending an ellipsis when it had to cut.
func truncateName(name string) string {
	if runewidth.StringWidth(name) <= maxNameWidth {
		return name
	}
	return runewidth.Truncate(name, maxNameWidth, "…")
}
