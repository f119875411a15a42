package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/winplace/internal/config"
	"github.com/1broseidon/winplace/internal/ipc"
	"github.com/1broseidon/winplace/internal/placement"
)

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceDefault, Name: "defaults"}, "default:defaults"},
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceFile}, "file"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestFormatMove(t *testing.T) {
	d := &ipc.MoveData{Window: 0x2a, Placement: "top-left", Display: 1, X: 1920, Y: 30, Width: 800, Height: 600}
	got := formatMove(d)
	if got != "window 0x2a -> top-left on display 1 at 1920,30 (800x600)" {
		t.Fatalf("formatMove = %q", got)
	}

	d.Corrected = true
	if !strings.HasSuffix(formatMove(d), "[monitor migration corrected]") {
		t.Fatalf("expected correction marker in %q", formatMove(d))
	}
}

func TestWritePlacements_ListsEveryPlacement(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bindings[placement.Center.String()] = ""

	var buf bytes.Buffer
	writePlacements(&buf, cfg)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(placement.All()) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(placement.All()), buf.String())
	}
	if !strings.HasPrefix(lines[0], "5  center") || !strings.Contains(lines[0], "(unbound)") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "Mod4-KP_7") {
		t.Fatalf("expected top-left keypad binding in %q", lines[1])
	}
}

func TestWriteMonitors(t *testing.T) {
	var buf bytes.Buffer
	writeMonitors(&buf, []ipc.MonitorInfo{{
		ID: 0, Name: "DP-1",
		X: 0, Y: 0, Width: 1920, Height: 1080,
		UsableX: 0, UsableY: 30, UsableWidth: 1920, UsableHeight: 1050,
	}})
	if !strings.Contains(buf.String(), "1920x1080+0+0  usable 1920x1050+0+30") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRunConfig_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte("log_level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("log_level: loud\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no subcommand", nil, 2},
		{"unknown subcommand", []string{"frobnicate"}, 2},
		{"validate good", []string{"validate", "--path", good}, 0},
		{"validate bad", []string{"validate", "--path", bad}, 1},
		{"explain missing path arg", []string{"explain", "--path", good}, 2},
		{"explain unknown key", []string{"explain", "--path", good, "gap_size"}, 1},
		{"explain binding", []string{"explain", "--path", good, "bindings.7"}, 0},
		{"bad flag", []string{"print", "--nope"}, 2},
		{"print defaults", []string{"print", "--defaults"}, 0},
		{"print effective", []string{"print", "--path", good, "--effective"}, 0},
		{"print defaults and effective", []string{"print", "--defaults", "--effective"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runConfig(tt.args); got != tt.want {
				t.Fatalf("runConfig(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestRunConfigInit_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winplace", "config.yaml")

	if got := runConfig([]string{"init", "--path", path}); got != 0 {
		t.Fatalf("first init = %d, want 0", got)
	}
	if _, err := config.LoadFromPath(path); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if got := runConfig([]string{"init", "--path", path}); got != 1 {
		t.Fatalf("second init = %d, want 1", got)
	}
	if got := runConfig([]string{"init", "--path", path, "--force"}); got != 0 {
		t.Fatalf("forced init = %d, want 0", got)
	}
}

func TestRunMove_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"--help"}, 0},
		{"no placement", nil, 2},
		{"two placements", []string{"center", "top-left"}, 2},
		{"unknown placement", []string{"middle"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runMove(tt.args); got != tt.want {
				t.Fatalf("runMove(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
