package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.General.VimlikeScroll {
		t.Error("vimlike_scroll should be enabled by default")
	}
	if cfg.General.Layout != "default" {
		t.Errorf("got layout %q, want 'default'", cfg.General.Layout)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yml", "0.1.0")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Error("should return default config")
	}
}

func TestLoadFrom_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := []byte(`
version: "0.1.0"
general:
  show_hidden: true
  layout: no-help
on_load:
  - FocusFirst
  - FocusPath: /tmp
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path, "0.1.0")
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if !cfg.General.ShowHidden {
		t.Error("show_hidden should be true")
	}
	if cfg.General.Layout != "no-help" {
		t.Errorf("got layout %q, want 'no-help'", cfg.General.Layout)
	}
	if len(cfg.OnLoad) != 2 {
		t.Fatalf("got %d on_load messages, want 2", len(cfg.OnLoad))
	}
	if cfg.OnLoad[1].Path != "/tmp" {
		t.Errorf("got FocusPath %q, want /tmp", cfg.OnLoad[1].Path)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	if err := os.WriteFile(path, []byte("general: [this is not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path, "0.1.0"); err == nil {
		t.Error("should error on invalid YAML")
	}
}

func TestLoadFrom_IncompatibleVersionRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	if err := os.WriteFile(path, []byte("version: \"1.0.0\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path, "0.1.0"); err == nil {
		t.Error("should reject a config version incompatible with the runtime")
	}
}

func TestLoadFrom_InvalidKeyBindingRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := []byte(`
key_bindings:
  default:
    "not-a-real-key": [Quit]
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path, "0.1.0")
	if err == nil {
		t.Fatalf("expected a validation error, got config %+v", cfg)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input  string
		expect string
	}{
		{"~/.config/xplr", filepath.Join(home, ".config/xplr")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tc := range tests {
		got := ExpandPath(tc.input)
		if got != tc.expect {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.expect)
		}
	}
}

func TestLoad_MergesExtraConfigsInOrder(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yml")
	overlay := filepath.Join(dir, "overlay.yml")

	if err := os.WriteFile(base, []byte("general:\n  layout: default\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(overlay, []byte("general:\n  layout: no-help\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(base, "0.1.0")
	if err != nil {
		t.Fatalf("LoadFrom(base) failed: %v", err)
	}
	overlayCfg, err := LoadFrom(overlay, "0.1.0")
	if err != nil {
		t.Fatalf("LoadFrom(overlay) failed: %v", err)
	}
	merge(cfg, overlayCfg)

	if cfg.General.Layout != "no-help" {
		t.Errorf("got layout %q, want the overlay's 'no-help'", cfg.General.Layout)
	}
}
