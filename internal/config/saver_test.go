package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSave_WritesReadableYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configDir, configFile)
	t.Setenv("HOME", dir)

	cfg := Default()
	cfg.General.ShowHidden = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected Save to write %s: %v", path, err)
	}

	var roundTripped Config
	if err := yaml.Unmarshal(data, &roundTripped); err != nil {
		t.Fatalf("saved config is not valid YAML: %v", err)
	}
	if !roundTripped.General.ShowHidden {
		t.Error("show_hidden should round-trip through Save")
	}
}

func TestSave_CreatesConfigDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	if err := Save(Default()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, configDir)); err != nil {
		t.Fatalf("expected config directory to exist: %v", err)
	}
}
