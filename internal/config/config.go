package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/winplace/internal/placement"
	"gopkg.in/yaml.v3"
)

// Config is the effective daemon configuration.
type Config struct {
	// Bindings maps placement names to X11 key sequences. An empty sequence
	// leaves that placement unbound.
	Bindings                map[string]string `yaml:"bindings"`
	UndoHotkey              string            `yaml:"undo_hotkey"`
	CorrectMonitorMigration bool              `yaml:"correct_monitor_migration"`
	LogLevel                string            `yaml:"log_level"`
	PaletteBackend          string            `yaml:"palette_backend"`
	Display                 string            `yaml:"display"`
}

// DefaultConfig returns the built-in configuration: Super plus a keypad digit
// for each placement, laid out like the keypad itself.
func DefaultConfig() *Config {
	return &Config{
		Bindings:                defaultBindings(),
		UndoHotkey:              "Mod4-KP_0",
		CorrectMonitorMigration: true,
		LogLevel:                "info",
		PaletteBackend:          "auto",
	}
}

func defaultBindings() map[string]string {
	out := make(map[string]string, 9)
	for _, p := range placement.All() {
		out[p.String()] = fmt.Sprintf("Mod4-KP_%d", p.KeypadDigit())
	}
	return out
}

// Binding returns the key sequence bound to p, or "" when p is unbound.
func (c *Config) Binding(p placement.Placement) string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Bindings[p.String()])
}

// SlogLevel maps log_level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	if c == nil {
		return slog.LevelInfo
	}
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Save writes the configuration to the standard location. Comments in an
// existing file are not preserved.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Bindings == nil {
		return &ValidationError{Path: "bindings", Err: fmt.Errorf("bindings must not be null")}
	}

	seen := make(map[string]string)
	for _, p := range placement.All() {
		name := p.String()
		seq := c.Binding(p)
		if seq == "" {
			continue
		}
		if other, ok := seen[seq]; ok {
			return &ValidationError{Path: "bindings." + name, Err: fmt.Errorf("key sequence %q is already bound to %s", seq, other)}
		}
		seen[seq] = name
	}
	for name := range c.Bindings {
		if p, err := placement.Parse(name); err != nil || p.String() != name {
			return &ValidationError{Path: "bindings." + name, Err: fmt.Errorf("unknown placement %q (expected one of: %s)", name, strings.Join(placement.Names(), ", "))}
		}
	}

	if undo := strings.TrimSpace(c.UndoHotkey); undo != "" {
		if other, ok := seen[undo]; ok {
			return &ValidationError{Path: "undo_hotkey", Err: fmt.Errorf("key sequence %q is already bound to %s", undo, other)}
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	switch c.PaletteBackend {
	case "auto", "rofi", "fuzzel", "dmenu", "wofi":
	default:
		return &ValidationError{Path: "palette_backend", Err: fmt.Errorf("palette_backend must be one of: auto, rofi, fuzzel, dmenu, wofi")}
	}
	return nil
}
