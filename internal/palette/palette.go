package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single selectable entry in a palette menu.
type Item struct {
	Label     string // Display text
	Action    string // Action identifier returned on selection
	Icon      string // Icon name for rofi -show-icons
	Meta      string // Hidden search keywords (rofi meta field)
	IsDivider bool   // Non-selectable divider line
	IsActive  bool   // Highlighted as current
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	// Show displays items under prompt. message is an optional context line
	// for backends with a message bar.
	Show(prompt string, items []Item, message string) (Item, error)
}

var knownBackends = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// DetectBackend returns the first available palette backend found in PATH, in
// priority order: rofi, fuzzel, wofi, dmenu.
func DetectBackend() (string, error) {
	for _, name := range knownBackends {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(knownBackends, ", "))
}

// NewBackend creates a backend by name.
//
// Supported names: auto, rofi, fuzzel, wofi, dmenu.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	}

	var b *dmenuLikeBackend
	switch name {
	case "rofi":
		b = newRofiBackend()
	case "fuzzel":
		b = newFuzzelBackend()
	case "wofi":
		b = newWofiBackend()
	case "dmenu":
		b = newDmenuBackend()
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(knownBackends, ", "))
	}
	if _, err := exec.LookPath(b.command); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", b.command)
	}
	return b, nil
}
