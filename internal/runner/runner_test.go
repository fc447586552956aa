package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/sayanarijit/xplr-sub000/internal/appstate"
	"github.com/sayanarijit/xplr-sub000/internal/keymap"
	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
	"github.com/sayanarijit/xplr-sub000/internal/task"
)

type fakeTerminal struct {
	clears int
	drawn  int
}

func (f *fakeTerminal) EnableRawMode() error      { return nil }
func (f *fakeTerminal) DisableRawMode() error     { return nil }
func (f *fakeTerminal) EnterAltScreen() error     { return nil }
func (f *fakeTerminal) LeaveAltScreen() error     { return nil }
func (f *fakeTerminal) HideCursor() error         { return nil }
func (f *fakeTerminal) ShowCursor() error         { return nil }
func (f *fakeTerminal) Clear() error              { f.clears++; return nil }
func (f *fakeTerminal) Draw(appstate.App) error   { f.drawn++; return nil }

func TestRun_PrintPwdAndQuitReturnsPwd(t *testing.T) {
	app := appstate.New("test", 1, t.TempDir(), "/tmp/dir")
	q := task.NewQueue()
	q.Push(task.PriorityExternal, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.PrintPwdAndQuit}), nil)
	q.Close()

	res, err := Run(context.Background(), app, q, &fakeTerminal{}, nil, make(chan string, 1))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.HasOutput || res.Output != "/tmp/dir" {
		t.Fatalf("Result = %+v, want pwd output", res)
	}
}

func TestRun_QuitStopsLoop(t *testing.T) {
	app := appstate.New("test", 1, t.TempDir(), "/tmp/dir")
	q := task.NewQueue()
	q.Push(task.PriorityExternal, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.Quit}), nil)

	res, err := Run(context.Background(), app, q, &fakeTerminal{}, nil, make(chan string, 1))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.HasOutput {
		t.Fatalf("Result = %+v, want no output for plain Quit", res)
	}
}

func TestRun_ClearScreenDrivesTerminal(t *testing.T) {
	app := appstate.New("test", 1, t.TempDir(), "/tmp/dir")
	q := task.NewQueue()
	q.Push(task.PriorityExternal, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.ClearScreen}), nil)
	q.Push(task.PriorityExternal, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.Quit}), nil)

	term := &fakeTerminal{}
	if _, err := Run(context.Background(), app, q, term, nil, make(chan string, 1)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if term.clears != 1 {
		t.Fatalf("clears = %d, want 1", term.clears)
	}
}

func TestRenderHelpMenu_ListsBoundKeysForCurrentMode(t *testing.T) {
	app := appstate.New("test", 1, t.TempDir(), "/tmp/dir")
	app.Mode.Name = "default"
	app.Keys = keymap.Table{
		"default": {
			keys.Char('q'): {msgin.ExternalMsg{Kind: msgin.Quit}},
		},
		"selection": {
			keys.Char('x'): {msgin.ExternalMsg{Kind: msgin.ClearScreen}},
		},
	}

	out := renderHelpMenu(app)
	if !strings.Contains(out, "Quit") {
		t.Fatalf("renderHelpMenu = %q, want it to mention Quit", out)
	}
	if strings.Contains(out, "ClearScreen") {
		t.Fatalf("renderHelpMenu = %q, leaked a binding from another mode", out)
	}
}

func TestRenderHelpMenu_EmptyModeYieldsEmptyString(t *testing.T) {
	app := appstate.New("test", 1, t.TempDir(), "/tmp/dir")
	app.Mode.Name = "unbound"
	app.Keys = keymap.Table{}

	if out := renderHelpMenu(app); out != "" {
		t.Fatalf("renderHelpMenu = %q, want empty for unbound mode", out)
	}
}
