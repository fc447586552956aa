// Package appstate holds the App snapshot — the single root value the
// dispatcher threads through every Handle call — and the pure
// transition function itself. Handle never performs I/O; every side
// effect it wants performed is appended to the returned MsgOut slice for
// the dispatcher to drain.
package appstate

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sayanarijit/xplr-sub000/internal/dirbuf"
	"github.com/sayanarijit/xplr-sub000/internal/explorerconfig"
	"github.com/sayanarijit/xplr-sub000/internal/keymap"
	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
	"github.com/sayanarijit/xplr-sub000/internal/msgout"
	"github.com/sayanarijit/xplr-sub000/internal/node"
	"github.com/sayanarijit/xplr-sub000/internal/task"
)

// LogLevel classifies one entry in App.Logs.
type LogLevel string

const (
	LogInfoLevel    LogLevel = "Info"
	LogSuccessLevel LogLevel = "Success"
	LogWarningLevel LogLevel = "Warning"
	LogErrorLevel   LogLevel = "Error"
)

// LogEntry is one recorded log line.
type LogEntry struct {
	Level   LogLevel
	Message string
	At      time.Time
}

// Mode is the current input mode plus the stack of modes PopMode
// returns to.
type Mode struct {
	Name  string
	Stack []string
}

// App is the single root entity threaded through the dispatcher. It is
// replaced wholesale by Handle, never mutated in place.
type App struct {
	Version       string
	ConfigVersion string
	ReadOnly      bool
	Pid           int
	SessionPath   string

	ExploreCache map[string]dirbuf.DirectoryBuffer
	Pwd          string
	History      []string
	HistoryIndex int

	Selected []string

	Mode   Mode
	Config explorerconfig.Config
	Keys   keymap.Table

	InputBuffer *string
	Logs        []LogEntry
	Layout      string
	MouseOn     bool
	FifoPath    string
	Result      string
}

// New builds the initial App snapshot for a freshly started session.
func New(version string, pid int, sessionPath, pwd string) App {
	return App{
		Version:       version,
		ConfigVersion: version,
		Pid:           pid,
		SessionPath:  sessionPath,
		ExploreCache: map[string]dirbuf.DirectoryBuffer{},
		Pwd:          pwd,
		History:      []string{pwd},
		HistoryIndex: 0,
		Mode:         Mode{Name: keymap.ModeDefault},
		Config:       explorerconfig.New(),
		Keys:         keymap.Default(),
		Layout:       "default",
	}
}

// Buffer returns the cached DirectoryBuffer for the current pwd.
func (a App) Buffer() (dirbuf.DirectoryBuffer, bool) {
	b, ok := a.ExploreCache[a.Pwd]
	return b, ok
}

// Focused returns the node focused in the current pwd's buffer.
func (a App) Focused() (node.Node, bool) {
	b, ok := a.Buffer()
	if !ok {
		return node.Node{}, false
	}
	return b.Focused()
}

// IsSelected reports whether absPath is in the selection set.
func (a App) IsSelected(absPath string) bool {
	for _, p := range a.Selected {
		if p == absPath {
			return true
		}
	}
	return false
}

// Handle is the pure transition function: given the current App and one
// inbound message, it returns the next App value and the effects the
// dispatcher should perform.
func Handle(app App, msg msgin.MsgIn) (App, []msgout.MsgOut) {
	if msg.Internal != nil {
		return handleInternal(app, *msg.Internal)
	}
	return handleExternal(app, *msg.External)
}

func handleInternal(app App, m msgin.InternalMsg) (App, []msgout.MsgOut) {
	switch m.Kind {
	case msgin.SetDirectory:
		return setDirectory(app, m), nil

	case msgin.RefreshSelection:
		return refreshSelection(app), nil

	case msgin.HandleKey:
		msgs := app.Keys.Resolve(app.Mode.Name, m.Key)
		var out []msgout.MsgOut
		for _, em := range msgs {
			out = append(out, msgout.MsgOut{
				Kind: msgout.Enque,
				Task: task.Task{Priority: task.PriorityKeyAndInternal, Msg: msgin.FromExternal(em), Key: &m.Key},
			})
		}
		return app, out

	case msgin.AddLastFocus:
		return app, nil

	default:
		return app, nil
	}
}

func setDirectory(app App, m msgin.InternalMsg) App {
	app.ExploreCache = cloneCache(app.ExploreCache)
	app.ExploreCache[m.Parent] = m.Directory

	if m.Parent != app.Pwd {
		return app
	}

	buf := m.Directory
	if m.FocusedRelPath != "" {
		if idx := buf.FocusIndexOf(m.FocusedRelPath); idx >= 0 {
			buf = buf.WithFocus(idx)
		}
	}
	app.ExploreCache[app.Pwd] = buf
	return app
}

func cloneCache(m map[string]dirbuf.DirectoryBuffer) map[string]dirbuf.DirectoryBuffer {
	out := make(map[string]dirbuf.DirectoryBuffer, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// refreshSelection drops any selected path whose node no longer exists
// in the current buffer's parent directory, without touching paths that
// belong to other directories.
func refreshSelection(app App) App {
	buf, ok := app.Buffer()
	if !ok {
		return app
	}
	present := map[string]bool{}
	for _, n := range buf.Nodes {
		present[n.AbsolutePath] = true
	}
	kept := app.Selected[:0:0]
	for _, p := range app.Selected {
		if filepath.Dir(p) != buf.Parent || present[p] {
			kept = append(kept, p)
		}
	}
	app.Selected = kept
	return app
}

func handleExternal(app App, m msgin.ExternalMsg) (App, []msgout.MsgOut) {
	if app.ReadOnly && !msgin.IsReadOnly(m) {
		return logMsg(app, LogErrorLevel, "blocked in read-only mode: "+string(m.Kind)), nil
	}
	app.Config = app.Config.Clone()

	switch m.Kind {
	case msgin.ExplorePwd:
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.ExplorePwdAsync:
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.ExploreParentsAsync:
		return app, []msgout.MsgOut{{Kind: msgout.ExploreParentsAsync}}

	case msgin.ClearScreen:
		return app, []msgout.MsgOut{{Kind: msgout.ClearScreen}}
	case msgin.Refresh:
		return app, []msgout.MsgOut{{Kind: msgout.Refresh}}

	case msgin.FocusNext:
		return focusBy(app, 1), nil
	case msgin.FocusPrevious:
		return focusBy(app, -1), nil
	case msgin.FocusFirst:
		return withFocus(app, 0), nil
	case msgin.FocusLast:
		buf, ok := app.Buffer()
		if !ok || buf.Total == 0 {
			return app, nil
		}
		return withFocus(app, buf.Total-1), nil
	case msgin.FocusByIndex:
		return withFocus(app, m.Index), nil
	case msgin.FocusByIndexFromInput:
		return app, nil
	case msgin.FocusByFileName:
		return focusByName(app, m.Path), nil
	case msgin.FocusByFileNameFromInput:
		return focusByName(app, inputOr(app, "")), nil
	case msgin.FocusNextByRelativeIndex:
		return focusBy(app, m.N), nil
	case msgin.FocusPreviousByRelativeIndex:
		return focusBy(app, -m.N), nil
	case msgin.FocusPath:
		return focusPath(app, m.Path)
	case msgin.FocusPathFromInput:
		return focusPath(app, inputOr(app, ""))

	case msgin.ChangeDirectory:
		return changeDirectory(app, m.Path)
	case msgin.Enter:
		return enter(app)
	case msgin.Back:
		return back(app)
	case msgin.LastVisitedPath:
		return historyMove(app, -1)
	case msgin.NextVisitedPath:
		return historyMove(app, 1)
	case msgin.FollowSymlink:
		if n, ok := app.Focused(); ok && n.Canonical != nil {
			return focusPath(app, n.Canonical.AbsolutePath)
		}
		return app, nil

	case msgin.UpdateInputBuffer:
		return updateInputBuffer(app, m.Op), nil
	case msgin.BufferInput:
		return appendInput(app, m.Input), nil
	case msgin.SetInputBuffer:
		s := m.Input
		app.InputBuffer = &s
		return app, nil
	case msgin.RemoveInputBufferLastCharacter:
		return updateInputBuffer(app, keys.OpDeletePreviousCharacter), nil
	case msgin.RemoveInputBufferLastWord:
		return updateInputBuffer(app, keys.OpDeletePreviousWord), nil
	case msgin.ResetInputBuffer:
		app.InputBuffer = nil
		return app, nil

	case msgin.SwitchMode:
		return switchMode(app, m.Mode, true), nil
	case msgin.SwitchModeKeepingInputBuffer:
		return switchMode(app, m.Mode, false), nil
	case msgin.PopMode:
		return popMode(app, true), nil
	case msgin.PopModeKeepingInputBuffer:
		return popMode(app, false), nil
	case msgin.SwitchLayout:
		app.Layout = m.Layout
		return app, nil

	case msgin.Call:
		return app, []msgout.MsgOut{{Kind: msgout.Call, Command: m.Command, Args: m.Args}}
	case msgin.CallSilently:
		return app, []msgout.MsgOut{{Kind: msgout.CallSilently, Command: m.Command, Args: m.Args}}
	case msgin.BashExec:
		return app, []msgout.MsgOut{{Kind: msgout.Call, Command: "bash", Args: []string{"-c", m.Command}}}
	case msgin.BashExecSilently:
		return app, []msgout.MsgOut{{Kind: msgout.CallSilently, Command: "bash", Args: []string{"-c", m.Command}}}
	case msgin.CallLua:
		return app, []msgout.MsgOut{{Kind: msgout.CallLua, Command: m.Command}}
	case msgin.CallLuaSilently:
		return app, []msgout.MsgOut{{Kind: msgout.CallLuaSilently, Command: m.Command}}
	case msgin.LuaEval:
		return app, []msgout.MsgOut{{Kind: msgout.LuaEval, Command: m.Command}}
	case msgin.LuaEvalSilently:
		return app, []msgout.MsgOut{{Kind: msgout.LuaEvalSilently, Command: m.Command}}

	case msgin.Select:
		return selectPath(app, focusedPathOr(app, "")), nil
	case msgin.SelectPath:
		return selectPath(app, m.Path), nil
	case msgin.SelectAll:
		return selectAll(app), nil
	case msgin.UnSelect:
		return unselectPath(app, focusedPathOr(app, "")), nil
	case msgin.UnSelectPath:
		return unselectPath(app, m.Path), nil
	case msgin.UnSelectAll:
		app.Selected = nil
		return app, nil
	case msgin.ToggleSelection:
		return toggleSelection(app, focusedPathOr(app, "")), nil
	case msgin.ToggleSelectAll:
		if len(app.Selected) > 0 {
			app.Selected = nil
			return app, nil
		}
		return selectAll(app), nil
	case msgin.ClearSelection:
		app.Selected = nil
		return app, nil

	case msgin.AddNodeFilter:
		app.Config.AddFilter(m.Filter)
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.AddNodeFilterFromInput:
		f := m.Filter
		f.Input = inputOr(app, "")
		app.Config.AddFilter(f)
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.RemoveNodeFilter:
		app.Config.RemoveFilter(m.Filter)
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.ToggleNodeFilter:
		app.Config.ToggleFilter(m.Filter)
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.ToggleNodeFilterFromInput:
		f := m.Filter
		f.Input = inputOr(app, "")
		app.Config.ToggleFilter(f)
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.RemoveLastNodeFilter:
		app.Config.RemoveLastFilter()
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.ResetNodeFilters, msgin.ClearNodeFilters:
		app.Config.ClearFilters()
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}

	case msgin.AddNodeSorter:
		app.Config.AddSorter(m.Sorter)
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.AddNodeSorterFromInput:
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.RemoveNodeSorter:
		app.Config.RemoveSorter(m.Sorter.Kind)
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.ToggleNodeSorter:
		app.Config.ToggleSorter(m.Sorter)
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.ToggleNodeSorterFromInput:
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.RemoveLastNodeSorter:
		app.Config.RemoveLastSorter()
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.ResetNodeSorters, msgin.ClearNodeSorters:
		app.Config.ClearSorters()
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.ReverseNodeSorter:
		app.Config.ReverseSorter(m.Sorter.Kind)
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	case msgin.ReverseNodeSorters:
		app.Config.ReverseSorters()
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}

	case msgin.EnableMouse:
		app.MouseOn = true
		return app, []msgout.MsgOut{{Kind: msgout.EnableMouse}}
	case msgin.DisableMouse:
		app.MouseOn = false
		return app, []msgout.MsgOut{{Kind: msgout.DisableMouse}}
	case msgin.ToggleMouse:
		app.MouseOn = !app.MouseOn
		return app, []msgout.MsgOut{{Kind: msgout.ToggleMouse}}

	case msgin.StartFifo:
		app.FifoPath = m.Path
		return app, []msgout.MsgOut{{Kind: msgout.StartFifo, FifoPath: m.Path}}
	case msgin.StopFifo:
		app.FifoPath = ""
		return app, []msgout.MsgOut{{Kind: msgout.StopFifo}}
	case msgin.ToggleFifo:
		if app.FifoPath != "" {
			app.FifoPath = ""
			return app, []msgout.MsgOut{{Kind: msgout.StopFifo}}
		}
		app.FifoPath = m.Path
		return app, []msgout.MsgOut{{Kind: msgout.StartFifo, FifoPath: m.Path}}

	case msgin.LogInfo:
		return logMsg(app, LogInfoLevel, m.Message), nil
	case msgin.LogSuccess:
		return logMsg(app, LogSuccessLevel, m.Message), nil
	case msgin.LogWarning:
		return logMsg(app, LogWarningLevel, m.Message), nil
	case msgin.LogError:
		return logMsg(app, LogErrorLevel, m.Message), nil

	case msgin.Debug:
		return app, []msgout.MsgOut{{Kind: msgout.Debug, Path: m.Path}}

	case msgin.Quit:
		return app, []msgout.MsgOut{{Kind: msgout.Quit}}
	case msgin.PrintPwdAndQuit:
		return app, []msgout.MsgOut{{Kind: msgout.PrintPwdAndQuit, Path: app.Pwd}}
	case msgin.PrintFocusPathAndQuit:
		return app, []msgout.MsgOut{{Kind: msgout.PrintFocusPathAndQuit, Path: focusedPathOr(app, "")}}
	case msgin.PrintSelectionAndQuit:
		return app, []msgout.MsgOut{{Kind: msgout.PrintSelectionAndQuit}}
	case msgin.PrintResultAndQuit:
		return app, []msgout.MsgOut{{Kind: msgout.PrintResultAndQuit, Path: app.Result}}
	case msgin.PrintAppStateAndQuit:
		return app, []msgout.MsgOut{{Kind: msgout.PrintAppStateAndQuit}}
	case msgin.Terminate:
		return app, []msgout.MsgOut{{Kind: msgout.Quit}}

	default:
		return app, nil
	}
}

func focusBy(app App, delta int) App {
	buf, ok := app.Buffer()
	if !ok || buf.Total == 0 {
		return app
	}
	return withFocus(app, buf.Scroll.CurrentFocus+delta)
}

func withFocus(app App, focus int) App {
	buf, ok := app.Buffer()
	if !ok {
		return app
	}
	app.ExploreCache = cloneCache(app.ExploreCache)
	app.ExploreCache[app.Pwd] = buf.WithFocus(focus)
	return app
}

func focusByName(app App, name string) App {
	buf, ok := app.Buffer()
	if !ok {
		return app
	}
	idx := buf.FocusIndexOf(name)
	if idx < 0 {
		return app
	}
	return withFocus(app, idx)
}

func focusPath(app App, path string) (App, []msgout.MsgOut) {
	if path == "" {
		return app, nil
	}
	parent := filepath.Dir(path)
	base := filepath.Base(path)
	changed := parent != app.Pwd
	app.Pwd = parent
	app = pushHistory(app, parent)
	if buf, ok := app.ExploreCache[parent]; ok {
		if idx := buf.FocusIndexOf(base); idx >= 0 {
			app.ExploreCache = cloneCache(app.ExploreCache)
			app.ExploreCache[parent] = buf.WithFocus(idx)
		}
	}
	if changed {
		return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
	}
	return app, nil
}

func changeDirectory(app App, dir string) (App, []msgout.MsgOut) {
	if dir == "" {
		return app, nil
	}
	expanded := expandTilde(dir)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		abs = expanded
	}
	abs = filepath.Clean(abs)
	if abs == app.Pwd {
		return app, nil
	}
	app.Pwd = abs
	app = pushHistory(app, abs)
	return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
}

func enter(app App) (App, []msgout.MsgOut) {
	n, ok := app.Focused()
	if !ok || !n.IsDir {
		return app, nil
	}
	app.Pwd = n.AbsolutePath
	app = pushHistory(app, n.AbsolutePath)
	return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
}

func back(app App) (App, []msgout.MsgOut) {
	if app.Pwd == string(filepath.Separator) {
		return app, nil
	}
	child := filepath.Base(app.Pwd)
	parent := filepath.Dir(app.Pwd)
	app.Pwd = parent
	app = pushHistory(app, parent)
	if buf, ok := app.ExploreCache[parent]; ok {
		if idx := buf.FocusIndexOf(child); idx >= 0 {
			app.ExploreCache = cloneCache(app.ExploreCache)
			app.ExploreCache[parent] = buf.WithFocus(idx)
		}
	}
	return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
}

func pushHistory(app App, pwd string) App {
	if len(app.History) > 0 && app.History[app.HistoryIndex] == pwd {
		return app
	}
	trimmed := append([]string{}, app.History[:app.HistoryIndex+1]...)
	trimmed = append(trimmed, pwd)
	app.History = trimmed
	app.HistoryIndex = len(trimmed) - 1
	return app
}

func historyMove(app App, delta int) (App, []msgout.MsgOut) {
	idx := app.HistoryIndex + delta
	if idx < 0 || idx >= len(app.History) {
		return app, nil
	}
	app.HistoryIndex = idx
	app.Pwd = app.History[idx]
	return app, []msgout.MsgOut{{Kind: msgout.ExplorePwdAsync}}
}

func inputOr(app App, fallback string) string {
	if app.InputBuffer == nil {
		return fallback
	}
	return *app.InputBuffer
}

func appendInput(app App, s string) App {
	cur := inputOr(app, "")
	cur += s
	app.InputBuffer = &cur
	return app
}

func updateInputBuffer(app App, op keys.InputOperation) App {
	cur := inputOr(app, "")
	switch op {
	case keys.OpDeletePreviousCharacter:
		if len(cur) > 0 {
			r := []rune(cur)
			cur = string(r[:len(r)-1])
		}
	case keys.OpDeletePreviousWord:
		cur = strings.TrimRight(cur, " ")
		if idx := strings.LastIndexByte(cur, ' '); idx >= 0 {
			cur = cur[:idx+1]
		} else {
			cur = ""
		}
	case keys.OpDeleteLine:
		cur = ""
	}
	app.InputBuffer = &cur
	return app
}

func switchMode(app App, mode string, clearInput bool) App {
	app.Mode = Mode{Name: mode, Stack: append(append([]string{}, app.Mode.Stack...), app.Mode.Name)}
	if clearInput {
		app.InputBuffer = nil
	}
	return app
}

func popMode(app App, clearInput bool) App {
	if len(app.Mode.Stack) == 0 {
		return app
	}
	top := app.Mode.Stack[len(app.Mode.Stack)-1]
	app.Mode = Mode{Name: top, Stack: app.Mode.Stack[:len(app.Mode.Stack)-1]}
	if clearInput {
		app.InputBuffer = nil
	}
	return app
}

func focusedPathOr(app App, fallback string) string {
	if n, ok := app.Focused(); ok {
		return n.AbsolutePath
	}
	return fallback
}

func selectPath(app App, path string) App {
	if path == "" || app.IsSelected(path) {
		return app
	}
	app.Selected = append(append([]string{}, app.Selected...), path)
	return app
}

func unselectPath(app App, path string) App {
	if path == "" {
		return app
	}
	var kept []string
	for _, p := range app.Selected {
		if p != path {
			kept = append(kept, p)
		}
	}
	app.Selected = kept
	return app
}

func toggleSelection(app App, path string) App {
	if app.IsSelected(path) {
		return unselectPath(app, path)
	}
	return selectPath(app, path)
}

func selectAll(app App) App {
	buf, ok := app.Buffer()
	if !ok {
		return app
	}
	for _, n := range buf.Nodes {
		app = selectPath(app, n.AbsolutePath)
	}
	return app
}

func logMsg(app App, level LogLevel, message string) App {
	app.Logs = append(append([]LogEntry{}, app.Logs...), LogEntry{Level: level, Message: message, At: time.Now()})
	return app
}

func expandTilde(p string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}
