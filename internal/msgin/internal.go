package msgin

import (
	"github.com/sayanarijit/xplr-sub000/internal/dirbuf"
	"github.com/sayanarijit/xplr-sub000/internal/keys"
)

// InternalKind names one InternalMsg variant. Internal messages never
// cross the pipe wire format; they are produced only by the explorer
// worker and the event reader.
type InternalKind string

const (
	SetDirectory    InternalKind = "SetDirectory"
	AddLastFocus    InternalKind = "AddLastFocus"
	HandleKey       InternalKind = "HandleKey"
	RefreshSelection InternalKind = "RefreshSelection"
)

// InternalMsg is one dispatcher-internal message.
type InternalMsg struct {
	Kind InternalKind

	Directory dirbuf.DirectoryBuffer

	Parent         string
	FocusedRelPath string

	Key keys.Key
}

// MsgIn is the sum type consumed by the transition function: either an
// InternalMsg or an ExternalMsg.
type MsgIn struct {
	Internal *InternalMsg
	External *ExternalMsg
}

// FromInternal wraps an InternalMsg as a MsgIn.
func FromInternal(m InternalMsg) MsgIn { return MsgIn{Internal: &m} }

// FromExternal wraps an ExternalMsg as a MsgIn.
func FromExternal(m ExternalMsg) MsgIn { return MsgIn{External: &m} }
