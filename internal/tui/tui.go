// Package tui holds the interactive terminal front ends: a keypad-shaped
// grid and a one-shot placement picker.
package tui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/winplace/internal/placement"
)

// ErrCancelled is returned by Pick when the user aborts the prompt.
var ErrCancelled = errors.New("pick cancelled")

func requireTTY() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("an interactive terminal is required (stdin/stdout must be TTYs)")
	}
	return nil
}

// Run shows the placement grid until the user quits. Moves act on the
// focused window, which is normally the terminal running the grid.
func Run(ctrl Controller) error {
	if err := requireTTY(); err != nil {
		return err
	}
	if _, err := tea.NewProgram(newGridModel(ctrl), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Pick prompts for a single placement. last preselects the most recent one.
func Pick(last string) (placement.Placement, error) {
	if err := requireTTY(); err != nil {
		return 0, err
	}

	choice := placement.Center
	if p, err := placement.Parse(last); err == nil {
		choice = p
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[placement.Placement]().
				Title("Move window to").
				Options(pickOptions()...).
				Value(&choice),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return 0, ErrCancelled
	}
	if err != nil {
		return 0, err
	}
	return choice, nil
}

func pickOptions() []huh.Option[placement.Placement] {
	opts := make([]huh.Option[placement.Placement], 0, 9)
	for _, row := range gridDigits {
		for _, digit := range row {
			p, _ := placement.FromKeypadDigit(digit)
			opts = append(opts, huh.NewOption(fmt.Sprintf("%d  %s", digit, shortName(p)), p))
		}
	}
	return opts
}
