// Package config loads and validates the YAML configuration read at
// startup: general settings, the default explorer filters/sorters, and
// key-binding overrides layered onto the built-in table.
package config

import (
	"fmt"

	"github.com/sayanarijit/xplr-sub000/internal/explorerconfig"
	"github.com/sayanarijit/xplr-sub000/internal/keymap"
	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
)

// Config is the root configuration structure, unmarshaled from YAML.
type Config struct {
	Version     string           `yaml:"version"`
	General     GeneralConfig    `yaml:"general"`
	Filters     []RawFilter      `yaml:"filters"`
	Sorters     []RawSorter      `yaml:"sorters"`
	KeyBindings RawKeyBindings   `yaml:"key_bindings"`
	OnLoad      []RawExternalMsg `yaml:"on_load"`
}

// GeneralConfig holds settings that are not part of the filter/sorter or
// key-binding subsystems.
type GeneralConfig struct {
	ShowHidden    bool   `yaml:"show_hidden"`
	VimlikeScroll bool   `yaml:"vimlike_scroll"`
	ReadOnly      bool   `yaml:"read_only"`
	Layout        string `yaml:"layout"`
}

// RawFilter/RawSorter mirror explorerconfig's NodeFilter/NodeSorter
// directly; they are named distinctly here only so the yaml tags read
// naturally in a user-facing config file.
type RawFilter = explorerconfig.NodeFilter
type RawSorter = explorerconfig.NodeSorter

// RawExternalMsg is an ExternalMsg as it appears in on_load, sharing the
// same one-key-map/bare-string wire encoding as the msg_in pipe.
type RawExternalMsg = msgin.ExternalMsg

// RawKeyBindings is mode name -> key description -> ExternalMsg batch,
// exactly mirroring keymap.Table's shape but with string key
// descriptions (parsed via keys.Parse) instead of keys.Key values, since
// Key is not a YAML-friendly map key.
type RawKeyBindings map[string]map[string][]msgin.ExternalMsg

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			VimlikeScroll: true,
			Layout:        "default",
		},
	}
}

// Validate checks the configuration for internal consistency —
// unparseable key descriptions in particular, since those are caught
// only here rather than by the YAML decoder.
func (c *Config) Validate() error {
	for mode, bindings := range c.KeyBindings {
		for desc := range bindings {
			if _, err := keys.Parse(desc); err != nil {
				return fmt.Errorf("key binding for mode %q: %w", mode, err)
			}
		}
	}
	return nil
}

// ExplorerConfig builds the explorerconfig.Config described by Filters
// and Sorters, in declaration order.
func (c *Config) ExplorerConfig() explorerconfig.Config {
	ec := explorerconfig.New()
	for _, f := range c.Filters {
		ec.AddFilter(f)
	}
	for _, s := range c.Sorters {
		ec.AddSorter(s)
	}
	return ec
}

// KeyTable builds the keymap.Table the dispatcher consults: the built-in
// default table with Config's overrides layered on top, mode by mode,
// key by key.
func (c *Config) KeyTable() (keymap.Table, error) {
	table := keymap.Default()
	for mode, bindings := range c.KeyBindings {
		if table[mode] == nil {
			table[mode] = map[keys.Key][]msgin.ExternalMsg{}
		}
		for desc, msgs := range bindings {
			k, err := keys.Parse(desc)
			if err != nil {
				return nil, fmt.Errorf("key binding for mode %q: %w", mode, err)
			}
			table[mode][k] = msgs
		}
	}
	return table, nil
}
