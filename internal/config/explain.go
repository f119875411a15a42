package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/winplace/internal/placement"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	bindings
//	bindings.<placement>
//	undo_hotkey
//	correct_monitor_migration
//	log_level
//	palette_backend
//	display
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	path, value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

// lookupValue resolves path and returns it in canonical form with its value.
func lookupValue(cfg *Config, path string) (string, any, error) {
	parts := strings.Split(path, ".")
	if parts[0] != "bindings" && len(parts) != 1 {
		return "", nil, fmt.Errorf("unknown path: %s", path)
	}
	switch parts[0] {
	case "bindings":
		if len(parts) == 1 {
			return path, cfg.Bindings, nil
		}
		if len(parts) != 2 {
			return "", nil, fmt.Errorf("unknown path: %s", path)
		}
		p, err := placement.Parse(parts[1])
		if err != nil {
			return "", nil, fmt.Errorf("unknown path: %s: %w", path, err)
		}
		return "bindings." + p.String(), cfg.Binding(p), nil
	case "undo_hotkey":
		return path, cfg.UndoHotkey, nil
	case "correct_monitor_migration":
		return path, cfg.CorrectMonitorMigration, nil
	case "log_level":
		return path, cfg.LogLevel, nil
	case "palette_backend":
		return path, cfg.PaletteBackend, nil
	case "display":
		return path, cfg.Display, nil
	default:
		return "", nil, fmt.Errorf("unknown path: %s", path)
	}
}
