package explorerconfig

import "strings"

// FilterKind names one of the 32 filter predicates: an operation
// (Is/IsNot/DoesStartWith/...) crossed with a scope (relative/absolute
// path) and a case sensitivity (sensitive/insensitive, the latter
// prefixed with "I" following the source's own naming convention).
type FilterKind string

const (
	RelativePathIs    FilterKind = "RelativePathIs"
	IRelativePathIs   FilterKind = "IRelativePathIs"
	AbsolutePathIs    FilterKind = "AbsolutePathIs"
	IAbsolutePathIs   FilterKind = "IAbsolutePathIs"
	RelativePathIsNot FilterKind = "RelativePathIsNot"
	IRelativePathIsNot FilterKind = "IRelativePathIsNot"
	AbsolutePathIsNot FilterKind = "AbsolutePathIsNot"
	IAbsolutePathIsNot FilterKind = "IAbsolutePathIsNot"

	RelativePathDoesStartWith    FilterKind = "RelativePathDoesStartWith"
	IRelativePathDoesStartWith   FilterKind = "IRelativePathDoesStartWith"
	AbsolutePathDoesStartWith    FilterKind = "AbsolutePathDoesStartWith"
	IAbsolutePathDoesStartWith   FilterKind = "IAbsolutePathDoesStartWith"
	RelativePathDoesNotStartWith  FilterKind = "RelativePathDoesNotStartWith"
	IRelativePathDoesNotStartWith FilterKind = "IRelativePathDoesNotStartWith"
	AbsolutePathDoesNotStartWith  FilterKind = "AbsolutePathDoesNotStartWith"
	IAbsolutePathDoesNotStartWith FilterKind = "IAbsolutePathDoesNotStartWith"

	RelativePathDoesContain    FilterKind = "RelativePathDoesContain"
	IRelativePathDoesContain   FilterKind = "IRelativePathDoesContain"
	AbsolutePathDoesContain    FilterKind = "AbsolutePathDoesContain"
	IAbsolutePathDoesContain   FilterKind = "IAbsolutePathDoesContain"
	RelativePathDoesNotContain  FilterKind = "RelativePathDoesNotContain"
	IRelativePathDoesNotContain FilterKind = "IRelativePathDoesNotContain"
	AbsolutePathDoesNotContain  FilterKind = "AbsolutePathDoesNotContain"
	IAbsolutePathDoesNotContain FilterKind = "IAbsolutePathDoesNotContain"

	RelativePathDoesEndWith    FilterKind = "RelativePathDoesEndWith"
	IRelativePathDoesEndWith   FilterKind = "IRelativePathDoesEndWith"
	AbsolutePathDoesEndWith    FilterKind = "AbsolutePathDoesEndWith"
	IAbsolutePathDoesEndWith   FilterKind = "IAbsolutePathDoesEndWith"
	RelativePathDoesNotEndWith  FilterKind = "RelativePathDoesNotEndWith"
	IRelativePathDoesNotEndWith FilterKind = "IRelativePathDoesNotEndWith"
	AbsolutePathDoesNotEndWith  FilterKind = "AbsolutePathDoesNotEndWith"
	IAbsolutePathDoesNotEndWith FilterKind = "IAbsolutePathDoesNotEndWith"
)

// NodeFilter pairs a FilterKind with its input string, e.g.
// {RelativePathDoesStartWith, "a"}.
type NodeFilter struct {
	Kind  FilterKind `yaml:"kind" json:"kind"`
	Input string     `yaml:"input" json:"input"`
}

// key identifies a NodeFilter for ordered-set membership: filters
// compare by full equality (kind AND input), unlike sorters.
func (f NodeFilter) key() string {
	return string(f.Kind) + "\x00" + f.Input
}

// Apply reports whether subject (a relative or absolute path string,
// selected internally per the filter's scope) passes this filter.
func (f NodeFilter) Apply(relativePath, absolutePath string) bool {
	kind := string(f.Kind)
	caseInsensitive := strings.HasPrefix(kind, "I")
	if caseInsensitive {
		kind = kind[1:]
	}

	subject := relativePath
	if strings.HasPrefix(kind, "AbsolutePath") {
		subject = absolutePath
	}
	input := f.Input
	if caseInsensitive {
		subject = strings.ToLower(subject)
		input = strings.ToLower(input)
	}

	op := kind
	op = strings.TrimPrefix(op, "RelativePath")
	op = strings.TrimPrefix(op, "AbsolutePath")

	switch op {
	case "Is":
		return subject == input
	case "IsNot":
		return subject != input
	case "DoesStartWith":
		return strings.HasPrefix(subject, input)
	case "DoesNotStartWith":
		return !strings.HasPrefix(subject, input)
	case "DoesContain":
		return strings.Contains(subject, input)
	case "DoesNotContain":
		return !strings.Contains(subject, input)
	case "DoesEndWith":
		return strings.HasSuffix(subject, input)
	case "DoesNotEndWith":
		return !strings.HasSuffix(subject, input)
	default:
		return true
	}
}
