package explorer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sayanarijit/xplr-sub000/internal/explorerconfig"
	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
)

type recordingSink struct {
	ch chan msgin.MsgIn
}

func newRecordingSink() *recordingSink { return &recordingSink{ch: make(chan msgin.MsgIn, 64)} }

func (s *recordingSink) Push(_ int, msg msgin.MsgIn, _ *keys.Key) { s.ch <- msg }

func (s *recordingSink) awaitSetDirectory(t *testing.T, parent string) msgin.InternalMsg {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case m := <-s.ch:
			if m.Internal != nil && m.Internal.Kind == msgin.SetDirectory && m.Internal.Parent == parent {
				return *m.Internal
			}
		case <-deadline:
			t.Fatalf("timed out waiting for SetDirectory(%s)", parent)
		}
	}
}

func TestExplore_EnumeratesAndFocuses(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	sink := newRecordingSink()
	Explore(explorerconfig.New(), dir, "b.txt", sink)

	got := sink.awaitSetDirectory(t, dir)
	if got.Directory.Total != 3 {
		t.Fatalf("Total = %d, want 3", got.Directory.Total)
	}
	focused, ok := got.Directory.Focused()
	if !ok || focused.RelativePath != "b.txt" {
		t.Fatalf("Focused() = %+v, ok=%v, want b.txt", focused, ok)
	}
}

func TestExplore_AppliesFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"keep.txt", "drop.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := explorerconfig.New()
	cfg.AddFilter(explorerconfig.NodeFilter{Kind: explorerconfig.RelativePathDoesNotEndWith, Input: ".log"})

	sink := newRecordingSink()
	Explore(cfg, dir, "", sink)

	got := sink.awaitSetDirectory(t, dir)
	if got.Directory.Total != 1 || got.Directory.Nodes[0].RelativePath != "keep.txt" {
		t.Fatalf("Directory = %+v, want only keep.txt", got.Directory)
	}
}

func TestExplore_MissingDirectoryReportsLogError(t *testing.T) {
	sink := newRecordingSink()
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	Explore(explorerconfig.New(), missing, "", sink)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case m := <-sink.ch:
			if m.External != nil && m.External.Kind == msgin.LogError {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for LogError")
		}
	}
}

func TestExplore_RecursesIntoParent(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "child")
	if err := os.Mkdir(child, 0o755); err != nil {
		t.Fatal(err)
	}

	sink := newRecordingSink()
	Explore(explorerconfig.New(), child, "", sink)

	sink.awaitSetDirectory(t, child)
	parentMsg := sink.awaitSetDirectory(t, root)
	if parentMsg.FocusedRelPath != "child" {
		t.Fatalf("FocusedRelPath = %q, want %q", parentMsg.FocusedRelPath, "child")
	}
}
