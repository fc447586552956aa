// Package producer runs the independent goroutines that feed tasks into
// the dispatcher's priority queue: a 1-second auto-refresher, a pipe-file
// poller, a terminal-event reader, and two complementary pwd-change
// watchers (stat-polling and fsnotify-driven). None of these goroutines
// touch App state directly — they only enqueue messages for the
// single-threaded dispatcher to apply.
package producer

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
	"github.com/sayanarijit/xplr-sub000/internal/task"
)

// Sink is the write side of the dispatcher's task queue. *task.Queue
// satisfies it.
type Sink interface {
	Push(priority int, msg msgin.MsgIn, key *keys.Key)
}

func logError(sink Sink, err error) {
	sink.Push(task.PriorityExternal, msgin.FromExternal(msgin.ExternalMsg{
		Kind:    msgin.LogError,
		Message: err.Error(),
	}), nil)
}

// StartAutoRefresher enqueues ExternalMsg.Refresh at the given interval
// until ctx is cancelled.
func StartAutoRefresher(ctx context.Context, sink Sink, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sink.Push(task.PriorityPeriodic, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.Refresh}), nil)
			}
		}
	}()
}

// StartPipeReader polls pipePath every pollInterval. Each non-empty read
// is split into lines, each line parsed as an ExternalMsg (YAML or JSON)
// and enqueued; the file is then truncated. Parse failures become
// LogError tasks and do not stop the loop.
func StartPipeReader(ctx context.Context, sink Sink, pipePath string, pollInterval time.Duration) {
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				drainPipe(sink, pipePath)
			}
		}
	}()
}

func drainPipe(sink Sink, pipePath string) {
	raw, err := os.ReadFile(pipePath)
	if err != nil || len(raw) == 0 {
		return
	}

	for _, line := range splitNonEmptyLines(raw) {
		msg, err := msgin.ParseExternalMsg(line)
		if err != nil {
			logError(sink, err)
			continue
		}
		sink.Push(task.PriorityExternal, msgin.FromExternal(msg), nil)
	}

	_ = os.WriteFile(pipePath, nil, 0o600)
}

func splitNonEmptyLines(raw []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range raw {
		if b == '\n' {
			if i > start {
				lines = append(lines, raw[start:i])
			}
			start = i + 1
		}
	}
	if start < len(raw) {
		lines = append(lines, raw[start:])
	}
	return lines
}

// TerminalEvent is one poll result from a terminal event source: either a
// decoded key press or a resize notification.
type TerminalEvent struct {
	Key     *keys.Key
	Resized bool
}

// EventSource abstracts the terminal driver. Decoding raw escape
// sequences into a Key is an external collaborator's job (the runner's
// terminal adapter); this package only consumes the abstract event.
type EventSource interface {
	// Poll blocks up to timeout waiting for the next event. ok is false
	// on a timeout with no event available.
	Poll(timeout time.Duration) (ev TerminalEvent, ok bool, err error)
}

// StartEventReader polls src every 200ms for key and resize events,
// enqueueing InternalMsg.HandleKey or ExternalMsg.Refresh respectively.
// Reading pauses whenever a value arrives on pause carrying true, and
// resumes on a value carrying false — used by the runner to hand the
// terminal to a spawned child process.
func StartEventReader(ctx context.Context, sink Sink, src EventSource, pause <-chan bool) {
	const pollTimeout = 200 * time.Millisecond

	go func() {
		paused := false
		for {
			select {
			case <-ctx.Done():
				return
			case p := <-pause:
				paused = p
				continue
			default:
			}

			if paused {
				time.Sleep(50 * time.Millisecond)
				continue
			}

			ev, ok, err := src.Poll(pollTimeout)
			if err != nil {
				logError(sink, err)
				continue
			}
			if !ok {
				continue
			}
			switch {
			case ev.Key != nil:
				k := *ev.Key
				sink.Push(task.PriorityKeyAndInternal, msgin.FromInternal(msgin.InternalMsg{
					Kind: msgin.HandleKey,
					Key:  k,
				}), &k)
			case ev.Resized:
				sink.Push(task.PriorityExternal, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.Refresh}), nil)
			}
		}
	}()
}

// StartPwdWatcher stats pwd once per second; a modification-time change
// enqueues ExternalMsg.ExplorePwdAsync. Sending a new path on retarget
// re-points the watch without restarting the goroutine.
func StartPwdWatcher(ctx context.Context, sink Sink, pwd string, retarget <-chan string) {
	go func() {
		current := pwd
		lastModified := modTimeOf(current)

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case next := <-retarget:
				current = next
				lastModified = modTimeOf(current)
			case <-ticker.C:
				info, err := os.Stat(current)
				if err != nil {
					logError(sink, err)
					continue
				}
				if info.ModTime() != lastModified {
					lastModified = info.ModTime()
					sink.Push(task.PriorityExternal, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.ExplorePwdAsync}), nil)
				}
			}
		}
	}()
}

func modTimeOf(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// StartFsnotifyWatcher watches pwd directly and enqueues
// ExternalMsg.ExplorePwdAsync the instant a write/create/remove/rename
// fires, without waiting for StartPwdWatcher's next poll tick. Sending a
// new path on retarget moves the fsnotify watch to that directory.
func StartFsnotifyWatcher(ctx context.Context, sink Sink, pwd string, retarget <-chan string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(pwd); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		current := pwd
		for {
			select {
			case <-ctx.Done():
				return
			case next := <-retarget:
				_ = watcher.Remove(current)
				if err := watcher.Add(next); err != nil {
					logError(sink, err)
					continue
				}
				current = next
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					sink.Push(task.PriorityExternal, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.ExplorePwdAsync}), nil)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logError(sink, err)
			}
		}
	}()

	return nil
}
