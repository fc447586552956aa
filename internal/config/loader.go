package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sayanarijit/xplr-sub000/internal/version"
)

const (
	configDir  = ".config/xplr"
	configFile = "config.yml"
)

// Load loads configuration from the default location, merging in any
// extra config files in order (later files override earlier ones, and
// all of them override the default) the way --config/--extra-config
// accumulate on the command line.
func Load(runtimeVersion string, extraPaths ...string) (*Config, error) {
	cfg, err := LoadFrom("", runtimeVersion)
	if err != nil {
		return nil, err
	}
	for _, p := range extraPaths {
		overlay, err := LoadFrom(p, runtimeVersion)
		if err != nil {
			return nil, err
		}
		merge(cfg, overlay)
	}
	return cfg, nil
}

// LoadFrom loads configuration from a specific path. If path is empty,
// it uses ~/.config/xplr/config.yml. A missing file is not an error —
// Default() is returned unchanged.
func LoadFrom(path string, runtimeVersion string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if raw.Version != "" {
		if ok, err := version.Compatible(raw.Version, runtimeVersion); !ok {
			return nil, err
		}
	}

	merge(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	return cfg, nil
}

// merge layers raw's non-zero fields onto cfg in place.
func merge(cfg *Config, raw *Config) {
	if raw.Version != "" {
		cfg.Version = raw.Version
	}

	cfg.General.ShowHidden = cfg.General.ShowHidden || raw.General.ShowHidden
	cfg.General.ReadOnly = cfg.General.ReadOnly || raw.General.ReadOnly
	if raw.General.Layout != "" {
		cfg.General.Layout = raw.General.Layout
	}
	cfg.General.VimlikeScroll = raw.General.VimlikeScroll || cfg.General.VimlikeScroll

	if len(raw.Filters) > 0 {
		cfg.Filters = append(cfg.Filters, raw.Filters...)
	}
	if len(raw.Sorters) > 0 {
		cfg.Sorters = append(cfg.Sorters, raw.Sorters...)
	}

	mergeKeyBindings(cfg, raw)

	if len(raw.OnLoad) > 0 {
		cfg.OnLoad = append(cfg.OnLoad, raw.OnLoad...)
	}
}

// mergeKeyBindings merges raw's key bindings into cfg's, mode by mode,
// key by key — a later source wins for a given (mode, key) pair.
func mergeKeyBindings(cfg *Config, raw *Config) {
	if len(raw.KeyBindings) == 0 {
		return
	}
	if cfg.KeyBindings == nil {
		cfg.KeyBindings = RawKeyBindings{}
	}
	for mode, bindings := range raw.KeyBindings {
		if cfg.KeyBindings[mode] == nil {
			cfg.KeyBindings[mode] = map[string][]RawExternalMsg{}
		}
		for desc, msgs := range bindings {
			cfg.KeyBindings[mode][desc] = msgs
		}
	}
}

// ExpandPath expands a leading ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
