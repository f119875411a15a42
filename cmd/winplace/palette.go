package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/winplace/internal/ipc"
	"github.com/1broseidon/winplace/internal/palette"
)

func runPalette(args []string) int {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/winplace/config.yaml)")
	backendName := fs.String("backend", "", "Override palette_backend (auto, rofi, fuzzel, wofi, dmenu)")

	if len(args) > 0 && isHelpArg(args[0]) {
		fmt.Fprintln(os.Stderr, "Usage: winplace palette [--path PATH] [--backend NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the nine placements in a launcher menu and move the active window.")
		fmt.Fprintln(os.Stderr, "Requires a running daemon.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Backends: rofi, dmenu, wofi, fuzzel (configured via palette_backend, default: auto).")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfigResult(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	name := res.Config.PaletteBackend
	if *backendName != "" {
		name = *backendName
	}

	backend, err := palette.NewBackend(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	client := ipc.NewClient()
	last := ""
	if status, err := client.GetStatus(); err == nil {
		last = status.LastPlacement
	}

	choice, err := palette.ChoosePlacement(backend, last)
	if err != nil {
		if errors.Is(err, palette.ErrCancelled) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if choice.Undo {
		if _, err := client.Undo(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	if _, err := client.Move(choice.Placement.String()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
