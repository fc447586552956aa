package msgin

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// nullaryKinds lists every ExternalKind that carries no payload and so
// round-trips as a bare identifier string rather than a one-key mapping.
var nullaryKinds = func() map[ExternalKind]bool {
	all := []ExternalKind{
		ExplorePwd, ExplorePwdAsync, ExploreParentsAsync,
		ClearScreen, Refresh,
		FocusNext, FocusPrevious, FocusFirst, FocusLast,
		FocusPathFromInput, FocusByIndexFromInput, FocusByFileNameFromInput,
		FocusNextByRelativeIndexFromInput, FocusPreviousByRelativeIndexFromInput,
		Enter, Back, LastVisitedPath, NextVisitedPath, FollowSymlink,
		RemoveInputBufferLastCharacter, RemoveInputBufferLastWord, ResetInputBuffer,
		PopMode, PopModeKeepingInputBuffer,
		Select, SelectAll, UnSelect, UnSelectAll, ToggleSelection, ToggleSelectAll, ClearSelection,
		RemoveLastNodeFilter, ResetNodeFilters, ClearNodeFilters,
		RemoveLastNodeSorter, ResetNodeSorters, ClearNodeSorters, ReverseNodeSorters,
		EnableMouse, DisableMouse, ToggleMouse,
		StopFifo,
		Quit, PrintPwdAndQuit, PrintFocusPathAndQuit, PrintSelectionAndQuit,
		PrintResultAndQuit, PrintAppStateAndQuit, Terminate,
	}
	m := make(map[ExternalKind]bool, len(all))
	for _, k := range all {
		m[k] = true
	}
	return m
}()

// payload returns the part of msg that should be marshaled under its
// Kind's map key; nullary kinds return nil and are rendered bare.
func (m ExternalMsg) payload() interface{} {
	if nullaryKinds[m.Kind] {
		return nil
	}
	type alias ExternalMsg
	return alias(m)
}

// MarshalYAML renders m as a bare scalar for nullary kinds, or a one-key
// mapping `Kind: payload` otherwise.
func (m ExternalMsg) MarshalYAML() (interface{}, error) {
	if p := m.payload(); p == nil {
		return string(m.Kind), nil
	} else {
		return map[ExternalKind]interface{}{m.Kind: p}, nil
	}
}

// MarshalJSON mirrors MarshalYAML's shape in JSON.
func (m ExternalMsg) MarshalJSON() ([]byte, error) {
	if p := m.payload(); p == nil {
		return json.Marshal(string(m.Kind))
	} else {
		return json.Marshal(map[ExternalKind]interface{}{m.Kind: p})
	}
}

// ParseExternalMsg decodes one wire record, trying JSON first (per the
// speed preference documented for the pipe-reader) and falling back to
// YAML.
func ParseExternalMsg(record []byte) (ExternalMsg, error) {
	if msg, err := parseExternalMsgJSON(record); err == nil {
		return msg, nil
	}
	return parseExternalMsgYAML(record)
}

func parseExternalMsgJSON(record []byte) (ExternalMsg, error) {
	var bare string
	if err := json.Unmarshal(record, &bare); err == nil {
		return ExternalMsg{Kind: ExternalKind(bare)}, nil
	}

	var m map[ExternalKind]json.RawMessage
	if err := json.Unmarshal(record, &m); err != nil {
		return ExternalMsg{}, err
	}
	return decodeOneKeyMap(m, func(raw json.RawMessage, v interface{}) error {
		return json.Unmarshal(raw, v)
	})
}

func parseExternalMsgYAML(record []byte) (ExternalMsg, error) {
	var bare string
	if err := yaml.Unmarshal(record, &bare); err == nil && bare != "" {
		return ExternalMsg{Kind: ExternalKind(bare)}, nil
	}

	var m map[ExternalKind]yaml.Node
	if err := yaml.Unmarshal(record, &m); err != nil {
		return ExternalMsg{}, err
	}
	return decodeOneKeyMap(m, func(raw yaml.Node, v interface{}) error {
		return raw.Decode(v)
	})
}

// UnmarshalYAML lets ExternalMsg decode directly as a struct field (e.g.
// Config's key bindings and on_load list), not just as a standalone
// ParseExternalMsg record.
func (m *ExternalMsg) UnmarshalYAML(value *yaml.Node) error {
	var raw []byte
	node := *value
	b, err := yaml.Marshal(&node)
	if err != nil {
		return err
	}
	raw = b
	decoded, err := parseExternalMsgYAML(raw)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

func decodeOneKeyMap[T any](m map[ExternalKind]T, unmarshal func(T, interface{}) error) (ExternalMsg, error) {
	if len(m) != 1 {
		return ExternalMsg{}, fmt.Errorf("expected exactly one variant key, got %d", len(m))
	}
	type alias ExternalMsg
	var a alias
	var kind ExternalKind
	for k, raw := range m {
		kind = k
		if err := unmarshal(raw, &a); err != nil {
			return ExternalMsg{}, fmt.Errorf("decoding payload for %s: %w", k, err)
		}
	}
	msg := ExternalMsg(a)
	msg.Kind = kind
	return msg, nil
}
