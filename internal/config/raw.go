package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawBindings keeps the YAML spelling of each binding so aliases such as
// "top_left" or "7" can be normalized after decoding.
type RawBindings map[string]string

func (b *RawBindings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("bindings must be a mapping of placement to key sequence")
	}
	out := make(RawBindings, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		val := value.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: binding %q must be a key sequence string", val.Line, key.Value)
		}
		if val.Tag == "!!null" {
			out[key.Value] = ""
			continue
		}
		out[key.Value] = strings.TrimSpace(val.Value)
	}
	*b = out
	return nil
}

type RawConfig struct {
	Bindings                RawBindings `yaml:"bindings"`
	UndoHotkey              *string     `yaml:"undo_hotkey"`
	CorrectMonitorMigration *bool       `yaml:"correct_monitor_migration"`
	LogLevel                *string     `yaml:"log_level"`
	PaletteBackend          *string     `yaml:"palette_backend"`
	Display                 *string     `yaml:"display"`
}

// merge overlays other onto r. Bindings merge per key.
func (r RawConfig) merge(other RawConfig) RawConfig {
	out := r
	if other.Bindings != nil {
		merged := make(RawBindings, len(r.Bindings)+len(other.Bindings))
		for k, v := range r.Bindings {
			merged[k] = v
		}
		for k, v := range other.Bindings {
			merged[k] = v
		}
		out.Bindings = merged
	}
	if other.UndoHotkey != nil {
		out.UndoHotkey = other.UndoHotkey
	}
	if other.CorrectMonitorMigration != nil {
		out.CorrectMonitorMigration = other.CorrectMonitorMigration
	}
	if other.LogLevel != nil {
		out.LogLevel = other.LogLevel
	}
	if other.PaletteBackend != nil {
		out.PaletteBackend = other.PaletteBackend
	}
	if other.Display != nil {
		out.Display = other.Display
	}
	return out
}
