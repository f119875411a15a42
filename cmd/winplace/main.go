package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/1broseidon/winplace/internal/config"
	"github.com/1broseidon/winplace/internal/daemon"
	"github.com/1broseidon/winplace/internal/ipc"
	"github.com/1broseidon/winplace/internal/mover"
	"github.com/1broseidon/winplace/internal/placement"
	"github.com/1broseidon/winplace/internal/platform"
)

func main() {
	log.SetPrefix("winplace: ")

	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && isHelpArg(os.Args[2]) {
			fmt.Fprintln(os.Stdout, "Usage: winplace daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: winplace daemon")
			os.Exit(2)
		}
		runDaemon()
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "undo":
		os.Exit(runUndo(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "placements":
		os.Exit(runPlacements(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "palette":
		os.Exit(runPalette(os.Args[2:]))
	case "pick":
		os.Exit(runPick(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func isHelpArg(arg string) bool {
	return arg == "help" || arg == "-h" || arg == "--help"
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winplace <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the winplace daemon (foreground)")
	fmt.Fprintln(w, "  move <placement>    Move the active window (top-left, center, 7, ...)")
	fmt.Fprintln(w, "  undo                Undo the last move")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  monitors            List monitors and their usable areas")
	fmt.Fprintln(w, "  placements          List the nine placements")
	fmt.Fprintln(w, "  reload              Ask the daemon to reload its configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  palette             Pick a placement from rofi/fuzzel/wofi/dmenu")
	fmt.Fprintln(w, "  pick                Pick a placement from a terminal prompt")
	fmt.Fprintln(w, "  tui                 Open the interactive placement grid")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winplace <command> --help' for command-specific options.")
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (log level: %s, monitor migration correction: %v)",
		cfg.LogLevel, cfg.CorrectMonitorMigration)

	d, err := daemon.New(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := d.Run(); err != nil {
		log.Fatalf("Daemon failed: %v", err)
	}
}

func runMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	direct := fs.Bool("direct", false, "Move without the daemon (undo is not available afterwards)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winplace move [--direct] <placement>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move the active window within the usable area of its monitor.")
		fmt.Fprintln(os.Stderr, "Falls back to a direct X11 connection when no daemon is running.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintf(os.Stderr, "Placements: %s (or keypad digit 1-9)\n", strings.Join(placement.Names(), ", "))
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "move requires exactly one <placement>")
		fs.Usage()
		return 2
	}

	p, err := placement.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if !*direct {
		data, err := ipc.NewClient().Move(p.String())
		if err == nil {
			fmt.Println(formatMove(data))
			return 0
		}
		if !errors.Is(err, ipc.ErrDaemonUnavailable) {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	data, err := moveDirect(p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(formatMove(data))
	return 0
}

// moveDirect performs a one-shot move over a fresh X11 connection.
func moveDirect(p placement.Placement) (*ipc.MoveData, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to display: %w", err)
	}
	defer backend.Disconnect()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	res, err := mover.New(backend, mover.Options{
		CorrectMigration: cfg.CorrectMonitorMigration,
		Logger:           logger,
	}).Move(p)
	if err != nil {
		return nil, err
	}
	return &ipc.MoveData{
		Window:    uint32(res.Window),
		Placement: res.Placement.String(),
		Display:   res.Display,
		X:         res.After.X,
		Y:         res.After.Y,
		Width:     res.After.Width,
		Height:    res.After.Height,
		Corrected: res.Corrected,
	}, nil
}

func formatMove(d *ipc.MoveData) string {
	out := fmt.Sprintf("window 0x%x -> %s on display %d at %d,%d (%dx%d)",
		d.Window, d.Placement, d.Display, d.X, d.Y, d.Width, d.Height)
	if d.Corrected {
		out += " [monitor migration corrected]"
	}
	return out
}

func runUndo(args []string) int {
	fs := flag.NewFlagSet("undo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winplace undo")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Restore the window moved last to its previous frame.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "undo takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().Undo()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("restored %d,%d (%dx%d)\n", data.X, data.Y, data.Width, data.Height)
	return 0
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winplace status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	last := status.LastPlacement
	if last == "" {
		last = "-"
	}
	fmt.Printf("daemon_running:            %v\n", status.DaemonRunning)
	fmt.Printf("uptime_seconds:            %d\n", status.UptimeSeconds)
	fmt.Printf("move_count:                %d\n", status.MoveCount)
	fmt.Printf("last_placement:            %s\n", last)
	fmt.Printf("correct_monitor_migration: %v\n", status.CorrectMonitorMigration)
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winplace monitors")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List monitors known to the daemon with their usable areas.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	writeMonitors(os.Stdout, data.Monitors)
	return 0
}

func writeMonitors(w io.Writer, monitors []ipc.MonitorInfo) {
	for _, m := range monitors {
		fmt.Fprintf(w, "%d  %-10s %dx%d+%d+%d  usable %dx%d+%d+%d\n",
			m.ID, m.Name,
			m.Width, m.Height, m.X, m.Y,
			m.UsableWidth, m.UsableHeight, m.UsableX, m.UsableY)
	}
}

func runPlacements(args []string) int {
	fs := flag.NewFlagSet("placements", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winplace placements")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List placement names, keypad digits and configured hotkeys.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "placements takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	writePlacements(os.Stdout, cfg)
	return 0
}

func writePlacements(w io.Writer, cfg *config.Config) {
	for _, p := range placement.All() {
		keys := cfg.Binding(p)
		if keys == "" {
			keys = "(unbound)"
		}
		fmt.Fprintf(w, "%d  %-14s %-16s %s\n", p.KeypadDigit(), p.String(), keys, p.Title())
	}
}

func runReload(args []string) int {
	if len(args) > 0 && isHelpArg(args[0]) {
		fmt.Fprintln(os.Stdout, "Usage: winplace reload")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Reload the daemon configuration. Hotkey changes need a daemon restart.")
		return 0
	}
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		return 2
	}

	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config: reloaded")
	return 0
}
