// Package keymap holds the default key-binding table consulted by
// HandleKey: for the active mode, which key presses resolve to which
// ExternalMsg batch.
package keymap

import (
	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
)

// Mode names used by the default table and by SwitchMode/PopMode.
const (
	ModeDefault = "default"
	ModeSelect  = "select"
	ModeGoTo    = "go_to"
	ModeCreate  = "create"
	ModeRename  = "rename"
	ModeDelete  = "delete"
	ModeFilter  = "filter"
	ModeSort    = "sort"
	ModeSearch  = "search"
)

// Table maps a mode name to its bindings, each a Key to the ExternalMsg
// batch it resolves to.
type Table map[string]map[keys.Key][]msgin.ExternalMsg

func ext(kind msgin.ExternalKind) msgin.ExternalMsg { return msgin.ExternalMsg{Kind: kind} }

// Default returns the built-in binding table. Users may layer
// configuration-supplied overrides on top (configuration is an external
// collaborator per the system's scope, so the merge mechanism itself
// lives in internal/config, not here).
func Default() Table {
	return Table{
		ModeDefault: {
			keys.Char('j'): {ext(msgin.FocusNext)},
			keys.Down:      {ext(msgin.FocusNext)},
			keys.Char('k'): {ext(msgin.FocusPrevious)},
			keys.Up:        {ext(msgin.FocusPrevious)},
			keys.Char('g'): {ext(msgin.FocusFirst)},
			keys.Home:      {ext(msgin.FocusFirst)},
			keys.Char('G'): {ext(msgin.FocusLast)},
			keys.End:       {ext(msgin.FocusLast)},
			keys.Enter:     {ext(msgin.Enter)},
			keys.Right:     {ext(msgin.Enter)},
			keys.Left:      {ext(msgin.Back)},
			keys.Backspace: {ext(msgin.Back)},
			keys.Char(' '): {ext(msgin.ToggleSelection), ext(msgin.FocusNext)},
			keys.Char('v'): {{Kind: msgin.SwitchMode, Mode: ModeSelect}},
			keys.Char('d'): {{Kind: msgin.SwitchMode, Mode: ModeDelete}},
			keys.Char('/'): {{Kind: msgin.SwitchMode, Mode: ModeSearch}},
			keys.Char('f'): {{Kind: msgin.SwitchMode, Mode: ModeFilter}},
			keys.Char('s'): {{Kind: msgin.SwitchMode, Mode: ModeSort}},
			keys.Char('.'): {ext(msgin.ToggleNodeFilter)},
			keys.Char('q'): {ext(msgin.PrintPwdAndQuit)},
			keys.CtrlChar('c'): {ext(msgin.Terminate)},
			keys.Esc:       {ext(msgin.ClearSelection)},
			keys.Char('!'): {{Kind: msgin.BashExec, Command: "$SHELL"}},
			keys.CtrlChar('r'): {ext(msgin.ExplorePwdAsync)},
			keys.CtrlChar('l'): {ext(msgin.ClearScreen)},
		},

		ModeSelect: {
			keys.Char('j'):     {ext(msgin.ToggleSelection), ext(msgin.FocusNext)},
			keys.Down:          {ext(msgin.ToggleSelection), ext(msgin.FocusNext)},
			keys.Char('k'):     {ext(msgin.ToggleSelection), ext(msgin.FocusPrevious)},
			keys.Up:            {ext(msgin.ToggleSelection), ext(msgin.FocusPrevious)},
			keys.Char('a'):     {ext(msgin.SelectAll)},
			keys.Char('A'):     {ext(msgin.UnSelectAll)},
			keys.Enter:         {ext(msgin.PrintSelectionAndQuit)},
			keys.Esc:           {ext(msgin.PopMode)},
		},

		ModeDelete: {
			keys.Char('y'): {{Kind: msgin.BashExec, Command: "rm -rf"}, ext(msgin.ExplorePwdAsync), ext(msgin.PopMode)},
			keys.Char('n'): {ext(msgin.PopMode)},
			keys.Esc:       {ext(msgin.PopMode)},
		},

		ModeFilter: {
			keys.Enter: {ext(msgin.AddNodeFilterFromInput), ext(msgin.PopMode), ext(msgin.ExplorePwdAsync)},
			keys.Esc:   {ext(msgin.PopMode)},
		},

		ModeSort: {
			keys.Enter: {ext(msgin.AddNodeSorterFromInput), ext(msgin.PopMode), ext(msgin.ExplorePwdAsync)},
			keys.Esc:   {ext(msgin.PopMode)},
		},

		ModeSearch: {
			keys.Enter: {ext(msgin.FocusByFileNameFromInput), ext(msgin.PopMode)},
			keys.Esc:   {ext(msgin.PopMode)},
		},

		ModeGoTo: {
			keys.Char('g'): {ext(msgin.FocusFirst), ext(msgin.PopMode)},
			keys.Esc:       {ext(msgin.PopMode)},
		},
	}
}

// Resolve returns the ExternalMsg batch bound to k in mode. An unbound
// alphanumeric key resolves to a single BufferInput carrying its rune;
// any other unbound key resolves to nil.
func (t Table) Resolve(mode string, k keys.Key) []msgin.ExternalMsg {
	if bindings, ok := t[mode]; ok {
		if msgs, ok := bindings[k]; ok {
			return msgs
		}
	}
	if k.IsAlphanumeric() {
		if r, ok := k.Rune(); ok {
			return []msgin.ExternalMsg{{Kind: msgin.BufferInput, Input: string(r)}}
		}
	}
	return nil
}
