// Package keys defines the abstract, terminal-driver-independent key
// representation the core consumes. Decoding raw terminal escape
// sequences into a Key is an external collaborator's responsibility; this
// package only defines the closed vocabulary and its classification.
package keys

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a closed enum of abstract key presses. Values are comparable and
// usable as map keys, e.g. in a mode's key-binding table.
type Key struct {
	name    string
	special rune
}

// Named keys.
var (
	Enter     = Key{name: "Enter"}
	Esc       = Key{name: "Escape"}
	Tab       = Key{name: "Tab"}
	BackTab   = Key{name: "BackTab"}
	Backspace = Key{name: "Backspace"}
	Delete    = Key{name: "Delete"}
	Insert    = Key{name: "Insert"}
	Home      = Key{name: "Home"}
	End       = Key{name: "End"}
	PageUp    = Key{name: "PageUp"}
	PageDown  = Key{name: "PageDown"}
	Up        = Key{name: "Up"}
	Down      = Key{name: "Down"}
	Left      = Key{name: "Left"}
	Right     = Key{name: "Right"}

	NotSupported = Key{name: "NotSupported"}
)

// Function returns the Fn key, 1 <= n <= 24.
func Function(n int) Key { return Key{name: fmt.Sprintf("F%d", n)} }

// Char returns the plain character key for r.
func Char(r rune) Key { return Key{name: "Char", special: r} }

// CtrlChar returns the Ctrl-modified character key for r (a-z).
func CtrlChar(r rune) Key { return Key{name: "Ctrl", special: r} }

// AltChar returns the Alt-modified character key for r.
func AltChar(r rune) Key { return Key{name: "Alt", special: r} }

// ShiftChar returns the Shift-modified character key for r.
func ShiftChar(r rune) Key { return Key{name: "Shift", special: r} }

// Special returns a key carrying an otherwise-unclassified rune, the
// catch-all variant for input the table below doesn't name.
func Special(r rune) Key { return Key{name: "Special", special: r} }

func (k Key) String() string {
	switch k.name {
	case "Char", "Ctrl", "Alt", "Shift", "Special":
		return fmt.Sprintf("%s(%c)", k.name, k.special)
	default:
		return k.name
	}
}

// IsAlphabet reports whether k is a plain a-z/A-Z character key.
func (k Key) IsAlphabet() bool {
	return k.name == "Char" && ((k.special >= 'a' && k.special <= 'z') || (k.special >= 'A' && k.special <= 'Z'))
}

// IsNumber reports whether k is a plain 0-9 character key.
func (k Key) IsNumber() bool {
	return k.name == "Char" && k.special >= '0' && k.special <= '9'
}

// IsAlphanumeric reports whether k is a plain letter or digit.
func (k Key) IsAlphanumeric() bool { return k.IsAlphabet() || k.IsNumber() }

// IsFunction reports whether k is one of F1-F24.
func (k Key) IsFunction() bool {
	return len(k.name) > 1 && k.name[0] == 'F' && k.name != "False"
}

// IsNavigation reports whether k is one of the cursor/paging keys.
func (k Key) IsNavigation() bool {
	switch k {
	case Up, Down, Left, Right, Home, End, PageUp, PageDown:
		return true
	default:
		return false
	}
}

// Rune returns the carried rune and true for Char/Ctrl/Alt/Shift/Special
// keys.
func (k Key) Rune() (rune, bool) {
	switch k.name {
	case "Char", "Ctrl", "Alt", "Shift", "Special":
		return k.special, true
	default:
		return 0, false
	}
}

var namedKeys = map[string]Key{
	"enter": Enter, "esc": Esc, "escape": Esc, "tab": Tab, "backtab": BackTab,
	"backspace": Backspace, "delete": Delete, "del": Delete, "insert": Insert,
	"home": Home, "end": End, "pageup": PageUp, "pagedown": PageDown,
	"up": Up, "down": Down, "left": Left, "right": Right,
}

// Parse decodes a human-written key description such as "j", "ctrl-c",
// "alt-f", "enter", or "f5" into a Key, for use in configuration-supplied
// key-binding overrides. Matching is case-insensitive for named keys.
func Parse(desc string) (Key, error) {
	lower := strings.ToLower(desc)

	if k, ok := namedKeys[lower]; ok {
		return k, nil
	}
	if rest, ok := strings.CutPrefix(lower, "f"); ok && rest != "" {
		if num, err := strconv.Atoi(rest); err == nil {
			return Function(num), nil
		}
	}

	if rest, ok := strings.CutPrefix(lower, "ctrl-"); ok && len([]rune(rest)) == 1 {
		return CtrlChar([]rune(rest)[0]), nil
	}
	if rest, ok := strings.CutPrefix(lower, "alt-"); ok && len([]rune(rest)) == 1 {
		return AltChar([]rune(rest)[0]), nil
	}
	if rest, ok := strings.CutPrefix(desc, "shift-"); ok && len([]rune(rest)) == 1 {
		return ShiftChar([]rune(rest)[0]), nil
	}

	if r := []rune(desc); len(r) == 1 {
		return Char(r[0]), nil
	}

	return Key{}, fmt.Errorf("key: unrecognized key description %q", desc)
}
