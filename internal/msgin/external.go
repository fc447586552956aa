// Package msgin defines the closed catalog of inbound messages: the
// dispatcher-internal InternalMsg and the user-facing ExternalMsg.
//
// ExternalMsg is modeled as a single struct tagged by Kind rather than one
// Go type per variant. The wire format requires every variant to
// round-trip as either a bare identifier string (nullary variants) or a
// single-key mapping `Variant: payload`; a tagged struct with
// MarshalYAML/UnmarshalYAML makes that encoding mechanical, where ~90
// separate marshaler implementations would not add clarity.
package msgin

import (
	"github.com/sayanarijit/xplr-sub000/internal/explorerconfig"
	"github.com/sayanarijit/xplr-sub000/internal/keys"
)

// ExternalKind names one ExternalMsg variant.
type ExternalKind string

const (
	ExplorePwd           ExternalKind = "ExplorePwd"
	ExplorePwdAsync      ExternalKind = "ExplorePwdAsync"
	ExploreParentsAsync  ExternalKind = "ExploreParentsAsync"

	ClearScreen ExternalKind = "ClearScreen"
	Refresh     ExternalKind = "Refresh"

	FocusNext                          ExternalKind = "FocusNext"
	FocusPrevious                      ExternalKind = "FocusPrevious"
	FocusFirst                         ExternalKind = "FocusFirst"
	FocusLast                          ExternalKind = "FocusLast"
	FocusPath                          ExternalKind = "FocusPath"
	FocusByIndex                       ExternalKind = "FocusByIndex"
	FocusByFileName                    ExternalKind = "FocusByFileName"
	FocusNextByRelativeIndex           ExternalKind = "FocusNextByRelativeIndex"
	FocusPreviousByRelativeIndex       ExternalKind = "FocusPreviousByRelativeIndex"
	FocusPathFromInput                 ExternalKind = "FocusPathFromInput"
	FocusByIndexFromInput              ExternalKind = "FocusByIndexFromInput"
	FocusByFileNameFromInput           ExternalKind = "FocusByFileNameFromInput"
	FocusNextByRelativeIndexFromInput  ExternalKind = "FocusNextByRelativeIndexFromInput"
	FocusPreviousByRelativeIndexFromInput ExternalKind = "FocusPreviousByRelativeIndexFromInput"

	ChangeDirectory  ExternalKind = "ChangeDirectory"
	Enter            ExternalKind = "Enter"
	Back             ExternalKind = "Back"
	LastVisitedPath  ExternalKind = "LastVisitedPath"
	NextVisitedPath  ExternalKind = "NextVisitedPath"
	FollowSymlink    ExternalKind = "FollowSymlink"

	UpdateInputBuffer             ExternalKind = "UpdateInputBuffer"
	BufferInput                   ExternalKind = "BufferInput"
	SetInputBuffer                ExternalKind = "SetInputBuffer"
	RemoveInputBufferLastCharacter ExternalKind = "RemoveInputBufferLastCharacter"
	RemoveInputBufferLastWord     ExternalKind = "RemoveInputBufferLastWord"
	ResetInputBuffer              ExternalKind = "ResetInputBuffer"

	SwitchMode                   ExternalKind = "SwitchMode"
	SwitchModeKeepingInputBuffer ExternalKind = "SwitchModeKeepingInputBuffer"
	PopMode                      ExternalKind = "PopMode"
	PopModeKeepingInputBuffer    ExternalKind = "PopModeKeepingInputBuffer"
	SwitchLayout                 ExternalKind = "SwitchLayout"

	Call             ExternalKind = "Call"
	CallSilently     ExternalKind = "CallSilently"
	BashExec         ExternalKind = "BashExec"
	BashExecSilently ExternalKind = "BashExecSilently"
	CallLua          ExternalKind = "CallLua"
	CallLuaSilently  ExternalKind = "CallLuaSilently"
	LuaEval          ExternalKind = "LuaEval"
	LuaEvalSilently  ExternalKind = "LuaEvalSilently"

	Select           ExternalKind = "Select"
	SelectAll        ExternalKind = "SelectAll"
	SelectPath       ExternalKind = "SelectPath"
	UnSelect         ExternalKind = "UnSelect"
	UnSelectAll      ExternalKind = "UnSelectAll"
	UnSelectPath     ExternalKind = "UnSelectPath"
	ToggleSelection  ExternalKind = "ToggleSelection"
	ToggleSelectAll  ExternalKind = "ToggleSelectAll"
	ClearSelection   ExternalKind = "ClearSelection"

	AddNodeFilter            ExternalKind = "AddNodeFilter"
	AddNodeFilterFromInput   ExternalKind = "AddNodeFilterFromInput"
	RemoveNodeFilter         ExternalKind = "RemoveNodeFilter"
	ToggleNodeFilter         ExternalKind = "ToggleNodeFilter"
	ToggleNodeFilterFromInput ExternalKind = "ToggleNodeFilterFromInput"
	RemoveLastNodeFilter     ExternalKind = "RemoveLastNodeFilter"
	ResetNodeFilters         ExternalKind = "ResetNodeFilters"
	ClearNodeFilters         ExternalKind = "ClearNodeFilters"

	AddNodeSorter             ExternalKind = "AddNodeSorter"
	AddNodeSorterFromInput    ExternalKind = "AddNodeSorterFromInput"
	RemoveNodeSorter          ExternalKind = "RemoveNodeSorter"
	ToggleNodeSorter          ExternalKind = "ToggleNodeSorter"
	ToggleNodeSorterFromInput ExternalKind = "ToggleNodeSorterFromInput"
	RemoveLastNodeSorter      ExternalKind = "RemoveLastNodeSorter"
	ResetNodeSorters          ExternalKind = "ResetNodeSorters"
	ClearNodeSorters          ExternalKind = "ClearNodeSorters"
	ReverseNodeSorter         ExternalKind = "ReverseNodeSorter"
	ReverseNodeSorters        ExternalKind = "ReverseNodeSorters"

	EnableMouse  ExternalKind = "EnableMouse"
	DisableMouse ExternalKind = "DisableMouse"
	ToggleMouse  ExternalKind = "ToggleMouse"

	StartFifo  ExternalKind = "StartFifo"
	StopFifo   ExternalKind = "StopFifo"
	ToggleFifo ExternalKind = "ToggleFifo"

	LogInfo    ExternalKind = "LogInfo"
	LogSuccess ExternalKind = "LogSuccess"
	LogWarning ExternalKind = "LogWarning"
	LogError   ExternalKind = "LogError"

	Debug ExternalKind = "Debug"

	Quit                  ExternalKind = "Quit"
	PrintPwdAndQuit       ExternalKind = "PrintPwdAndQuit"
	PrintFocusPathAndQuit ExternalKind = "PrintFocusPathAndQuit"
	PrintSelectionAndQuit ExternalKind = "PrintSelectionAndQuit"
	PrintResultAndQuit    ExternalKind = "PrintResultAndQuit"
	PrintAppStateAndQuit  ExternalKind = "PrintAppStateAndQuit"
	Terminate             ExternalKind = "Terminate"
)

// ExternalMsg is one user-facing message. Only the fields relevant to Kind
// are populated; the zero value of the rest is ignored.
type ExternalMsg struct {
	Kind ExternalKind `yaml:"-" json:"-"`

	Path    string   `yaml:"path,omitempty" json:"path,omitempty"`
	Paths   []string `yaml:"paths,omitempty" json:"paths,omitempty"`
	Index   int      `yaml:"index,omitempty" json:"index,omitempty"`
	N       int      `yaml:"n,omitempty" json:"n,omitempty"`
	Command string   `yaml:"command,omitempty" json:"command,omitempty"`
	Args    []string `yaml:"args,omitempty" json:"args,omitempty"`
	Input   string   `yaml:"input,omitempty" json:"input,omitempty"`
	Mode    string   `yaml:"mode,omitempty" json:"mode,omitempty"`
	Layout  string   `yaml:"layout,omitempty" json:"layout,omitempty"`
	Message string   `yaml:"message,omitempty" json:"message,omitempty"`

	Op keys.InputOperation `yaml:"op,omitempty" json:"op,omitempty"`

	Filter explorerconfig.NodeFilter `yaml:"filter,omitempty" json:"filter,omitempty"`
	Sorter explorerconfig.NodeSorter `yaml:"sorter,omitempty" json:"sorter,omitempty"`
}

// readOnlyExceptions is the set of Kinds that may execute arbitrary user
// code; every other Kind is read-only.
var readOnlyExceptions = map[ExternalKind]bool{
	Call:             true,
	CallSilently:     true,
	BashExec:         true,
	BashExecSilently: true,
	CallLua:          true,
	CallLuaSilently:  true,
	LuaEval:          true,
	LuaEvalSilently:  true,
}

// IsReadOnly reports whether msg is safe to apply under --read-only.
func IsReadOnly(msg ExternalMsg) bool {
	return !readOnlyExceptions[msg.Kind]
}
