// Package msgout defines the closed catalog of outbound effects the
// transition function appends to an App's effect queue. Effects are
// drained by the dispatcher, never by App.Handle itself.
package msgout

import "github.com/sayanarijit/xplr-sub000/internal/task"

// Kind names one MsgOut variant.
type Kind string

const (
	ExplorePwdAsync     Kind = "ExplorePwdAsync"
	ExploreParentsAsync Kind = "ExploreParentsAsync"
	Refresh             Kind = "Refresh"
	ClearScreen         Kind = "ClearScreen"
	Quit                Kind = "Quit"
	Debug               Kind = "Debug"
	Call                Kind = "Call"
	CallSilently        Kind = "CallSilently"
	CallLua             Kind = "CallLua"
	CallLuaSilently     Kind = "CallLuaSilently"
	LuaEval             Kind = "LuaEval"
	LuaEvalSilently     Kind = "LuaEvalSilently"
	Enque               Kind = "Enque"
	EnableMouse         Kind = "EnableMouse"
	DisableMouse        Kind = "DisableMouse"
	ToggleMouse         Kind = "ToggleMouse"
	StartFifo           Kind = "StartFifo"
	StopFifo            Kind = "StopFifo"
	ToggleFifo          Kind = "ToggleFifo"

	PrintPwdAndQuit       Kind = "PrintPwdAndQuit"
	PrintFocusPathAndQuit Kind = "PrintFocusPathAndQuit"
	PrintSelectionAndQuit Kind = "PrintSelectionAndQuit"
	PrintResultAndQuit    Kind = "PrintResultAndQuit"
	PrintAppStateAndQuit  Kind = "PrintAppStateAndQuit"
)

// MsgOut is one outbound effect.
type MsgOut struct {
	Kind Kind

	Path    string
	Command string
	Args    []string
	Code    string
	Silent  bool

	Task task.Task

	FifoPath string
}
