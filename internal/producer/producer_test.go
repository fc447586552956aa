package producer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
)

type recordingSink struct {
	mu  sync.Mutex
	got []msgin.MsgIn
}

func (s *recordingSink) Push(_ int, msg msgin.MsgIn, _ *keys.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, msg)
}

func (s *recordingSink) await(t *testing.T, pred func(msgin.MsgIn) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		for _, m := range s.got {
			if pred(m) {
				s.mu.Unlock()
				return
			}
		}
		s.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for predicate")
}

func TestAutoRefresher_EnqueuesRefresh(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{}
	StartAutoRefresher(ctx, sink, 10*time.Millisecond)

	sink.await(t, func(m msgin.MsgIn) bool {
		return m.External != nil && m.External.Kind == msgin.Refresh
	})
}

func TestPipeReader_ParsesAndTruncates(t *testing.T) {
	dir := t.TempDir()
	pipePath := filepath.Join(dir, "msg_in")
	if err := os.WriteFile(pipePath, []byte("FocusNext\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{}
	StartPipeReader(ctx, sink, pipePath, 10*time.Millisecond)

	sink.await(t, func(m msgin.MsgIn) bool {
		return m.External != nil && m.External.Kind == msgin.FocusNext
	})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		raw, err := os.ReadFile(pipePath)
		if err == nil && len(raw) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("pipe file was never truncated")
}

func TestPipeReader_ParseErrorLogsAndContinues(t *testing.T) {
	dir := t.TempDir()
	pipePath := filepath.Join(dir, "msg_in")
	if err := os.WriteFile(pipePath, []byte("not a valid message ::: {\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{}
	StartPipeReader(ctx, sink, pipePath, 10*time.Millisecond)

	sink.await(t, func(m msgin.MsgIn) bool {
		return m.External != nil && m.External.Kind == msgin.LogError
	})
}

type fakeSource struct {
	events chan TerminalEvent
}

func (f *fakeSource) Poll(timeout time.Duration) (TerminalEvent, bool, error) {
	select {
	case ev := <-f.events:
		return ev, true, nil
	case <-time.After(timeout):
		return TerminalEvent{}, false, nil
	}
}

func TestEventReader_EnqueuesHandleKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &fakeSource{events: make(chan TerminalEvent, 1)}
	k := keys.Char('j')
	src.events <- TerminalEvent{Key: &k}

	sink := &recordingSink{}
	StartEventReader(ctx, sink, src, make(chan bool))

	sink.await(t, func(m msgin.MsgIn) bool {
		return m.Internal != nil && m.Internal.Kind == msgin.HandleKey && m.Internal.Key == k
	})
}

func TestPwdWatcher_DetectsModification(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{}
	StartPwdWatcher(ctx, sink, dir, make(chan string))

	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(dir, future, future); err != nil {
		t.Fatal(err)
	}

	sink.await(t, func(m msgin.MsgIn) bool {
		return m.External != nil && m.External.Kind == msgin.ExplorePwdAsync
	})
}

func TestFsnotifyWatcher_DetectsCreate(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{}
	if err := StartFsnotifyWatcher(ctx, sink, dir, make(chan string)); err != nil {
		t.Fatalf("StartFsnotifyWatcher: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "created.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sink.await(t, func(m msgin.MsgIn) bool {
		return m.External != nil && m.External.Kind == msgin.ExplorePwdAsync
	})
}
