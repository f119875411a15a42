package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/1broseidon/winplace/internal/ipc"
	"github.com/1broseidon/winplace/internal/tui"
)

func runTUI(args []string) int {
	if len(args) > 0 && isHelpArg(args[0]) {
		fmt.Fprintln(os.Stderr, "Usage: winplace tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keypad-shaped grid that moves the focused window. Requires a running daemon.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  ←↓↑→, hjkl  Select a cell")
		fmt.Fprintln(os.Stderr, "  Enter/Space Move to the selected cell")
		fmt.Fprintln(os.Stderr, "  1-9         Move to the keypad position directly")
		fmt.Fprintln(os.Stderr, "  u           Undo the last move")
		fmt.Fprintln(os.Stderr, "  q, Esc      Quit")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "tui takes no arguments")
		return 2
	}

	if err := tui.Run(ipc.NewClient()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runPick(args []string) int {
	if len(args) > 0 && isHelpArg(args[0]) {
		fmt.Fprintln(os.Stderr, "Usage: winplace pick")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Prompt for one placement and move the focused window there.")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "pick takes no arguments")
		return 2
	}

	client := ipc.NewClient()
	last := ""
	if status, err := client.GetStatus(); err == nil {
		last = status.LastPlacement
	}

	p, err := tui.Pick(last)
	if err != nil {
		if errors.Is(err, tui.ErrCancelled) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	data, err := client.Move(p.String())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(formatMove(data))
	return 0
}
