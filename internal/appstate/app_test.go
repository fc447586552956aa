package appstate

import (
	"testing"

	"github.com/sayanarijit/xplr-sub000/internal/dirbuf"
	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
	"github.com/sayanarijit/xplr-sub000/internal/msgout"
	"github.com/sayanarijit/xplr-sub000/internal/node"
)

func bufferWith(parent string, names ...string) dirbuf.DirectoryBuffer {
	var nodes []node.Node
	for _, n := range names {
		nodes = append(nodes, node.Node{
			ParentPath:   parent,
			RelativePath: n,
			AbsolutePath: parent + "/" + n,
		})
	}
	return dirbuf.New(parent, nodes, "")
}

func withBuffer(app App, parent string, buf dirbuf.DirectoryBuffer) App {
	app.ExploreCache = cloneCache(app.ExploreCache)
	app.ExploreCache[parent] = buf
	return app
}

func TestHandle_FocusNextClampsAtEnd(t *testing.T) {
	app := New("test", 1, "/tmp/sess", "/tmp/dir")
	app = withBuffer(app, "/tmp/dir", bufferWith("/tmp/dir", "a", "b"))

	for i := 0; i < 5; i++ {
		app, _ = Handle(app, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.FocusNext}))
	}
	buf, _ := app.Buffer()
	if buf.Scroll.CurrentFocus != 1 {
		t.Fatalf("CurrentFocus = %d, want 1 (clamped)", buf.Scroll.CurrentFocus)
	}
}

func TestHandle_FocusPreviousClampsAtZero(t *testing.T) {
	app := New("test", 1, "/tmp/sess", "/tmp/dir")
	app = withBuffer(app, "/tmp/dir", bufferWith("/tmp/dir", "a", "b"))

	app, _ = Handle(app, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.FocusPrevious}))
	buf, _ := app.Buffer()
	if buf.Scroll.CurrentFocus != 0 {
		t.Fatalf("CurrentFocus = %d, want 0 (clamped)", buf.Scroll.CurrentFocus)
	}
}

func TestHandle_ToggleSelectionRoundTrip(t *testing.T) {
	app := New("test", 1, "/tmp/sess", "/tmp/dir")
	app = withBuffer(app, "/tmp/dir", bufferWith("/tmp/dir", "a", "b"))

	app, _ = Handle(app, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.ToggleSelection}))
	if !app.IsSelected("/tmp/dir/a") {
		t.Fatalf("expected /tmp/dir/a selected after first toggle")
	}
	app, _ = Handle(app, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.ToggleSelection}))
	if app.IsSelected("/tmp/dir/a") {
		t.Fatalf("expected /tmp/dir/a unselected after second toggle")
	}
}

func TestHandle_ReadOnlyRejectsExec(t *testing.T) {
	app := New("test", 1, "/tmp/sess", "/tmp/dir")
	app.ReadOnly = true

	before := len(app.Logs)
	app, out := Handle(app, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.BashExec, Command: "rm -rf /"}))
	if out != nil {
		t.Fatalf("expected no effects for a rejected message, got %+v", out)
	}
	if len(app.Logs) != before+1 || app.Logs[len(app.Logs)-1].Level != LogErrorLevel {
		t.Fatalf("expected a LogError entry, got %+v", app.Logs)
	}
}

func TestHandle_ReadOnlyAllowsNavigation(t *testing.T) {
	app := New("test", 1, "/tmp/sess", "/tmp/dir")
	app.ReadOnly = true
	app = withBuffer(app, "/tmp/dir", bufferWith("/tmp/dir", "a", "b"))

	app, out := Handle(app, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.FocusNext}))
	if out != nil {
		t.Fatalf("FocusNext should not produce effects, got %+v", out)
	}
	buf, _ := app.Buffer()
	if buf.Scroll.CurrentFocus != 1 {
		t.Fatalf("CurrentFocus = %d, want 1", buf.Scroll.CurrentFocus)
	}
}

func TestHandle_SwitchModeThenPopModeRestoresPrior(t *testing.T) {
	app := New("test", 1, "/tmp/sess", "/tmp/dir")

	app, _ = Handle(app, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.SwitchMode, Mode: "select"}))
	if app.Mode.Name != "select" {
		t.Fatalf("Mode.Name = %q, want select", app.Mode.Name)
	}
	app, _ = Handle(app, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.PopMode}))
	if app.Mode.Name != "default" {
		t.Fatalf("Mode.Name after PopMode = %q, want default", app.Mode.Name)
	}
}

func TestHandle_SetDirectoryPreservesFocusByRelativePath(t *testing.T) {
	app := New("test", 1, "/tmp/sess", "/tmp/dir")
	app = withBuffer(app, "/tmp/dir", bufferWith("/tmp/dir", "a", "b", "c"))
	app, _ = Handle(app, msgin.FromExternal(msgin.ExternalMsg{Kind: msgin.FocusNext}))

	newBuf := dirbuf.New("/tmp/dir", []node.Node{
		{ParentPath: "/tmp/dir", RelativePath: "a", AbsolutePath: "/tmp/dir/a"},
		{ParentPath: "/tmp/dir", RelativePath: "b", AbsolutePath: "/tmp/dir/b"},
	}, "")

	app, _ = Handle(app, msgin.FromInternal(msgin.InternalMsg{
		Kind:           msgin.SetDirectory,
		Directory:      newBuf,
		Parent:         "/tmp/dir",
		FocusedRelPath: "b",
	}))

	buf, _ := app.Buffer()
	focused, ok := buf.Focused()
	if !ok || focused.RelativePath != "b" {
		t.Fatalf("Focused() = %+v, ok=%v, want b", focused, ok)
	}
}

func TestHandle_HandleKeyEnqueuesBoundMessage(t *testing.T) {
	app := New("test", 1, "/tmp/sess", "/tmp/dir")
	app = withBuffer(app, "/tmp/dir", bufferWith("/tmp/dir", "a", "b"))

	app, out := Handle(app, msgin.FromInternal(msgin.InternalMsg{Kind: msgin.HandleKey, Key: keys.Char('j')}))
	if len(out) != 1 || out[0].Kind != msgout.Enque {
		t.Fatalf("expected a single Enque effect, got %+v", out)
	}
}
