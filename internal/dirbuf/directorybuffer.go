package dirbuf

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/sayanarijit/xplr-sub000/internal/node"
)

// DirectoryBuffer is the cached, already filtered-and-sorted snapshot of
// one directory's contents plus its viewport state. It is replaced, never
// edited, on every re-exploration.
type DirectoryBuffer struct {
	Parent      string
	Nodes       []node.Node
	Total       int
	Scroll      ScrollState
	ExploredAt  time.Time
	Fingerprint uint64
}

// New builds a DirectoryBuffer, focusing focusedRelPath if it is present
// among nodes, else focusing index 0.
func New(parent string, nodes []node.Node, focusedRelPath string) DirectoryBuffer {
	focus := 0
	if focusedRelPath != "" {
		for i, n := range nodes {
			if n.RelativePath == focusedRelPath {
				focus = i
				break
			}
		}
	}
	return DirectoryBuffer{
		Parent:      parent,
		Nodes:       nodes,
		Total:       len(nodes),
		Scroll:      ScrollState{CurrentFocus: focus},
		ExploredAt:  time.Now(),
		Fingerprint: fingerprint(nodes),
	}
}

// fingerprint hashes the ordered (name, size, mtime) tuples of nodes, so
// two enumerations of an unchanged directory produce the same value.
func fingerprint(nodes []node.Node) uint64 {
	h := xxhash.New()
	for _, n := range nodes {
		h.WriteString(n.RelativePath)
		h.WriteString("\x00")
		h.WriteString(strconv.FormatInt(n.Size, 10))
		h.WriteString("\x00")
		if n.ModifiedAt != nil {
			h.WriteString(strconv.FormatInt(n.ModifiedAt.UnixNano(), 10))
		}
		h.WriteString("\x01")
	}
	return h.Sum64()
}

// Focused returns the currently focused node, or false if the buffer is
// empty.
func (b DirectoryBuffer) Focused() (node.Node, bool) {
	if b.Total == 0 || b.Scroll.CurrentFocus < 0 || b.Scroll.CurrentFocus >= b.Total {
		return node.Node{}, false
	}
	return b.Nodes[b.Scroll.CurrentFocus], true
}

// FocusIndexOf returns the index of the node whose relative path matches
// relPath, or -1.
func (b DirectoryBuffer) FocusIndexOf(relPath string) int {
	for i, n := range b.Nodes {
		if n.RelativePath == relPath {
			return i
		}
	}
	return -1
}

// WithFocus returns a copy of b with CurrentFocus clamped into [0,
// Total-1] (or left at 0 when empty).
func (b DirectoryBuffer) WithFocus(focus int) DirectoryBuffer {
	if b.Total == 0 {
		b.Scroll.CurrentFocus = 0
		return b
	}
	if focus < 0 {
		focus = 0
	}
	if focus > b.Total-1 {
		focus = b.Total - 1
	}
	b.Scroll.CurrentFocus = focus
	return b
}
