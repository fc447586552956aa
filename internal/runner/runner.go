// Package runner hosts the dispatcher main loop: it pops tasks from the
// priority queue, applies appstate.Handle, and drains the resulting
// effects — spawning external commands, writing pipe projections, and
// driving terminal ownership handoff — in order before popping again.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/sayanarijit/xplr-sub000/internal/appstate"
	"github.com/sayanarijit/xplr-sub000/internal/explorer"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
	"github.com/sayanarijit/xplr-sub000/internal/msgout"
	"github.com/sayanarijit/xplr-sub000/internal/pipe"
	"github.com/sayanarijit/xplr-sub000/internal/task"
)

// Terminal abstracts the raw-mode/alt-screen/cursor operations the
// dispatcher needs around spawning a foreground child process and
// redrawing the UI. The concrete implementation in internal/terminal wraps
// charmbracelet/x/term; tests use a no-op fake.
type Terminal interface {
	EnableRawMode() error
	DisableRawMode() error
	EnterAltScreen() error
	LeaveAltScreen() error
	HideCursor() error
	ShowCursor() error
	Clear() error
	Draw(app appstate.App) error
}

// PauseEventReader is sent true before a foreground child process is
// spawned and false once it exits, so StartEventReader stops reading the
// terminal while the child owns it.
type PauseEventReader chan<- bool

// Result is what Run returns: the string to print, and whether there is
// one to print at all.
type Result struct {
	Output  string
	HasOutput bool
}

// Run drains queue until a terminating effect is produced, applying
// appstate.Handle to each task and performing every MsgOut along the way.
// It leaves this loop only on a quit-family effect, on ctx cancellation,
// or when the queue has been closed and drained.
func Run(ctx context.Context, app appstate.App, queue *task.Queue, term Terminal, pauseEventReader PauseEventReader, pwdRetarget chan<- string) (Result, error) {
	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		t, ok := queue.Pop()
		if !ok {
			return Result{}, nil
		}

		lastPwd := app.Pwd
		next, effects := appstate.Handle(app, t.Msg)
		app = next

		for _, eff := range effects {
			var done bool
			var res Result
			app, done, res = applyEffect(app, eff, queue, term, pauseEventReader, pwdRetarget, lastPwd)
			if done {
				return res, nil
			}
		}
	}
}

func applyEffect(app appstate.App, eff msgout.MsgOut, queue *task.Queue, term Terminal, pauseEventReader PauseEventReader, pwdRetarget chan<- string, lastPwd string) (appstate.App, bool, Result) {
	switch eff.Kind {
	case msgout.Enque:
		queue.Push(eff.Task.Priority, eff.Task.Msg, eff.Task.Key)

	case msgout.Quit, msgout.PrintPwdAndQuit, msgout.PrintFocusPathAndQuit:
		return app, true, Result{Output: eff.Path, HasOutput: eff.Path != ""}

	case msgout.PrintSelectionAndQuit:
		out := ""
		for i, p := range app.Selected {
			if i > 0 {
				out += "\n"
			}
			out += p
		}
		return app, true, Result{Output: out, HasOutput: true}

	case msgout.PrintResultAndQuit:
		return app, true, Result{Output: eff.Path, HasOutput: true}

	case msgout.PrintAppStateAndQuit:
		return app, true, Result{Output: fmt.Sprintf("%+v", app), HasOutput: true}

	case msgout.Debug:
		_ = os.WriteFile(eff.Path, []byte(fmt.Sprintf("%+v", app)), 0o644)

	case msgout.ClearScreen:
		_ = term.Clear()

	case msgout.ExplorePwdAsync:
		focusRel := ""
		if n, ok := app.Focused(); ok {
			focusRel = n.RelativePath
		}
		explorer.Explore(app.Config, app.Pwd, focusRel, queue)

	case msgout.ExploreParentsAsync:
		focusRel := ""
		if n, ok := app.Focused(); ok {
			focusRel = n.RelativePath
		}
		explorer.ExploreRecursiveAsync(app.Config, app.Pwd, focusRel, queue)

	case msgout.Refresh:
		if app.Pwd != lastPwd {
			select {
			case pwdRetarget <- app.Pwd:
			default:
			}
			explorer.ExploreRecursiveAsync(app.Config, app.Pwd, "", queue)
		}
		_ = term.Draw(app)

	case msgout.Call, msgout.CallSilently:
		silent := eff.Kind == msgout.CallSilently
		runForeground(app, eff, term, pauseEventReader, silent, queue)

	case msgout.CallLua, msgout.CallLuaSilently, msgout.LuaEval, msgout.LuaEvalSilently:
		// Lua effects are ignored: nothing is evaluated and nothing is
		// logged.

	case msgout.EnableMouse, msgout.DisableMouse, msgout.ToggleMouse:
		// Mouse capture is not toggled on the terminal; only App.MouseOn
		// records the requested state.

	case msgout.StartFifo, msgout.StopFifo, msgout.ToggleFifo:
		// Nothing is written to a fifo; only App.FifoPath records the
		// requested state.
	}

	return app, false, Result{}
}

func runForeground(app appstate.App, eff msgout.MsgOut, term Terminal, pauseEventReader PauseEventReader, silent bool, queue *task.Queue) {
	if !silent {
		_ = term.DisableRawMode()
		_ = term.ShowCursor()
		_ = term.LeaveAltScreen()
	}
	if pauseEventReader != nil {
		pauseEventReader <- true
	}

	sessionPath := app.SessionPath
	p := pipe.FromSessionPath(sessionPath)
	writeAppPipes(app, p)

	cmd := exec.Command(eff.Command, eff.Args...)
	cmd.Env = append(os.Environ(), buildEnv(app, p)...)
	if silent {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil
	} else {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	}

	err := cmd.Run()

	if pauseEventReader != nil {
		pauseEventReader <- false
	}
	if !silent {
		_ = term.EnterAltScreen()
		_ = term.EnableRawMode()
		_ = term.HideCursor()
		_ = term.Clear()
	}

	if err != nil {
		queue.Push(task.PriorityExternal, msgin.FromExternal(msgin.ExternalMsg{
			Kind:    msgin.LogError,
			Message: err.Error(),
		}), nil)
	}
}

func writeAppPipes(app appstate.App, p pipe.Pipe) {
	var selected string
	for i, s := range app.Selected {
		if i > 0 {
			selected += "\n"
		}
		selected += s
	}
	_ = os.WriteFile(p.SelectionOut, []byte(selected), 0o600)

	var history string
	for i, h := range app.History {
		if i > 0 {
			history += "\n"
		}
		history += h
	}
	_ = os.WriteFile(p.HistoryOut, []byte(history), 0o600)

	if buf, ok := app.Buffer(); ok {
		var names string
		for i, n := range buf.Nodes {
			if i > 0 {
				names += "\n"
			}
			names += n.AbsolutePath
		}
		_ = os.WriteFile(p.DirectoryNodesOut, []byte(names), 0o600)
	}

	var logs string
	for i, l := range app.Logs {
		if i > 0 {
			logs += "\n"
		}
		logs += string(l.Level) + ": " + l.Message
	}
	_ = os.WriteFile(p.LogsOut, []byte(logs), 0o600)

	_ = os.WriteFile(p.GlobalHelpMenuOut, []byte(renderHelpMenu(app)), 0o600)
}

// renderHelpMenu lists every key bound in the current mode, one per line
// as "key -> Msg1, Msg2".
func renderHelpMenu(app appstate.App) string {
	bindings := app.Keys[app.Mode.Name]
	var out string
	first := true
	for k, msgs := range bindings {
		if !first {
			out += "\n"
		}
		first = false
		out += k.String() + " -> "
		for i, m := range msgs {
			if i > 0 {
				out += ", "
			}
			out += string(m.Kind)
		}
	}
	return out
}

func buildEnv(app appstate.App, p pipe.Pipe) []string {
	focusPath := ""
	focusIndex := "0"
	if n, ok := app.Focused(); ok {
		focusPath = n.AbsolutePath
	}
	if buf, ok := app.Buffer(); ok {
		focusIndex = strconv.Itoa(buf.Scroll.CurrentFocus)
	}
	input := ""
	if app.InputBuffer != nil {
		input = *app.InputBuffer
	}

	return []string{
		"XPLR_APP_VERSION=" + app.Version,
		"XPLR_CONFIG_VERSION=" + app.ConfigVersion,
		"XPLR_PID=" + strconv.Itoa(app.Pid),
		"XPLR_INPUT_BUFFER=" + input,
		"XPLR_FOCUS_PATH=" + focusPath,
		"XPLR_FOCUS_INDEX=" + focusIndex,
		"XPLR_SESSION_PATH=" + app.SessionPath,
		"XPLR_MODE=" + app.Mode.Name,
		"XPLR_PIPE_MSG_IN=" + p.MsgIn,
		"XPLR_PIPE_SELECTION_OUT=" + p.SelectionOut,
		"XPLR_PIPE_HISTORY_OUT=" + p.HistoryOut,
		"XPLR_PIPE_RESULT_OUT=" + p.ResultOut,
		"XPLR_PIPE_GLOBAL_HELP_MENU_OUT=" + p.GlobalHelpMenuOut,
		"XPLR_PIPE_DIRECTORY_NODES_OUT=" + p.DirectoryNodesOut,
		"XPLR_PIPE_LOGS_OUT=" + p.LogsOut,
	}
}
