package terminal

import (
	"os"
	"os/signal"
	"time"

	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/producer"
)

// EventSource reads raw bytes off stdin and the SIGWINCH-equivalent
// resize channel, translating a narrow, common subset of input into
// producer.TerminalEvent. Full escape-sequence decoding belongs to an
// external terminal-driver adapter; this covers plain characters,
// Enter/Esc/Tab/Backspace and Ctrl-letter combinations, which is enough
// to drive the dispatcher end to end.
type EventSource struct {
	in     *os.File
	resize chan os.Signal
}

// NewEventSource returns an EventSource reading from stdin.
func NewEventSource() *EventSource {
	resize := make(chan os.Signal, 1)
	signal.Notify(resize, resizeSignal()...)
	return &EventSource{in: os.Stdin, resize: resize}
}

func (e *EventSource) Poll(timeout time.Duration) (producer.TerminalEvent, bool, error) {
	select {
	case <-e.resize:
		return producer.TerminalEvent{Resized: true}, true, nil
	default:
	}

	if err := e.in.SetReadDeadline(time.Now().Add(timeout)); err == nil {
		defer e.in.SetReadDeadline(time.Time{})
	}

	buf := make([]byte, 1)
	n, err := e.in.Read(buf)
	if err != nil {
		if os.IsTimeout(err) {
			return producer.TerminalEvent{}, false, nil
		}
		return producer.TerminalEvent{}, false, nil
	}
	if n == 0 {
		return producer.TerminalEvent{}, false, nil
	}

	k := decodeByte(buf[0])
	return producer.TerminalEvent{Key: &k}, true, nil
}

func decodeByte(b byte) keys.Key {
	switch b {
	case '\r', '\n':
		return keys.Enter
	case 0x1b:
		return keys.Esc
	case '\t':
		return keys.Tab
	case 0x7f, 0x08:
		return keys.Backspace
	}
	if b < 0x20 {
		return keys.CtrlChar(rune('a' + b - 1))
	}
	return keys.Char(rune(b))
}
