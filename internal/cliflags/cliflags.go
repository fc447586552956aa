// Package cliflags defines the command-line surface: flags, options, and
// the %s/%q/%% placeholder substitution used by --pipe-msg-in and
// --print-msg-in.
package cliflags

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Flags holds every parsed flag/option for one invocation.
type Flags struct {
	ReadStdin        bool
	ForceFocus       string
	PipeMsgIn        *FormatArgs
	PrintMsgIn       *FormatArgs
	PrintPwdAsResult bool
	ReadOnly         bool
	Read0            bool
	Write0           bool
	Null             bool
	PrintVersion     bool

	ConfigPath   string
	ExtraConfigs []string
	OnLoad       []string
	Vroot        string

	Path      string
	Selection []string
}

// FormatArgs is a FORMAT string plus its positional arguments, as
// supplied to -m/--pipe-msg-in or -M/--print-msg-in.
type FormatArgs struct {
	Format string
	Args   []string
}

// Render substitutes %s (verbatim) and %q (JSON-quoted) placeholders in
// f.Format with f.Args in order, and %% with a literal %. It errors on an
// arity mismatch (too few or too many arguments for the placeholders
// present) or an unrecognized %x placeholder.
func (f FormatArgs) Render() (string, error) {
	var b strings.Builder
	argIdx := 0
	runes := []rune(f.Format)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '%' {
			b.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			return "", fmt.Errorf("cliflags: trailing %% in format %q", f.Format)
		}
		i++
		switch runes[i] {
		case '%':
			b.WriteRune('%')
		case 's':
			arg, err := f.nextArg(&argIdx)
			if err != nil {
				return "", err
			}
			b.WriteString(arg)
		case 'q':
			arg, err := f.nextArg(&argIdx)
			if err != nil {
				return "", err
			}
			quoted, err := json.Marshal(arg)
			if err != nil {
				return "", err
			}
			b.Write(quoted)
		default:
			return "", fmt.Errorf("cliflags: unknown placeholder %%%c in format %q", runes[i], f.Format)
		}
	}

	if argIdx != len(f.Args) {
		return "", fmt.Errorf(
			"cliflags: format %q consumed %d argument(s) but %d were given",
			f.Format, argIdx, len(f.Args),
		)
	}

	return b.String(), nil
}

func (f FormatArgs) nextArg(idx *int) (string, error) {
	if *idx >= len(f.Args) {
		return "", fmt.Errorf("cliflags: format %q has more placeholders than arguments", f.Format)
	}
	arg := f.Args[*idx]
	*idx++
	return arg, nil
}

// Delimiter returns the record separator implied by the --read0/--write0/
// -0 flags: '\x00' if any are set, '\n' otherwise.
func (f Flags) Delimiter() byte {
	if f.Read0 || f.Write0 || f.Null {
		return 0
	}
	return '\n'
}
