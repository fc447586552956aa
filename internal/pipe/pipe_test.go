package pipe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromSessionPath_BuildsAllSevenFiles(t *testing.T) {
	p := FromSessionPath("/tmp/xplr/session/123")

	got := p.files()
	if len(got) != 7 {
		t.Fatalf("got %d pipe files, want 7", len(got))
	}
	for _, f := range got {
		if filepath.Dir(f) != "/tmp/xplr/session/123/pipe" {
			t.Errorf("file %q is not under the session's pipe/ directory", f)
		}
	}
}

func TestCreate_TouchesEveryFile(t *testing.T) {
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, "session")

	p, err := Create(sessionPath)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, f := range p.files() {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("expected %s to exist: %v", f, err)
		}
	}
}

func TestRemove_DeletesSessionDirectory(t *testing.T) {
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, "session")

	if _, err := Create(sessionPath); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := Remove(sessionPath); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(sessionPath); !os.IsNotExist(err) {
		t.Errorf("expected session directory to be gone, stat err = %v", err)
	}
}

func TestSessionDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	got := SessionDir(42)
	want := "/run/user/1000/xplr/session/42"
	if got != want {
		t.Fatalf("SessionDir(42) = %q, want %q", got, want)
	}
}

func TestSessionDir_FallsBackToTempDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	got := SessionDir(7)
	want := filepath.Join(os.TempDir(), "xplr", "session", "7")
	if got != want {
		t.Fatalf("SessionDir(7) = %q, want %q", got, want)
	}
}
