package config

import (
	"fmt"
	"sort"

	"github.com/1broseidon/winplace/internal/placement"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw over DefaultConfig. Binding keys may use any
// spelling placement.Parse accepts; the effective config stores canonical
// names.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Bindings != nil {
		keys := make([]string, 0, len(raw.Bindings))
		for k := range raw.Bindings {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		written := make(map[placement.Placement]string, len(keys))
		for _, key := range keys {
			p, err := placement.Parse(key)
			if err != nil {
				return nil, &ValidationError{Path: "bindings." + key, Err: err}
			}
			if prev, ok := written[p]; ok {
				return nil, &ValidationError{Path: "bindings." + key, Err: fmt.Errorf("placement %s is also bound by %q", p, prev)}
			}
			written[p] = key
			cfg.Bindings[p.String()] = raw.Bindings[key]
		}
	}
	if raw.UndoHotkey != nil {
		cfg.UndoHotkey = *raw.UndoHotkey
	}
	if raw.CorrectMonitorMigration != nil {
		cfg.CorrectMonitorMigration = *raw.CorrectMonitorMigration
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.PaletteBackend != nil {
		cfg.PaletteBackend = *raw.PaletteBackend
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}

	return cfg, nil
}
