// Package daemon wires the window mover, global hotkeys and the IPC socket
// into the long-running winplace process.
package daemon

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/1broseidon/winplace/internal/config"
	"github.com/1broseidon/winplace/internal/hotkeys"
	"github.com/1broseidon/winplace/internal/ipc"
	"github.com/1broseidon/winplace/internal/mover"
	"github.com/1broseidon/winplace/internal/platform"
)

// WatchInterval is how often the display layout is polled.
const WatchInterval = 10 * time.Second

type migrationSetter interface {
	SetCorrectMigration(enabled bool)
}

// Daemon owns the X11 connection and every component driven from it.
type Daemon struct {
	backend *platform.LinuxBackend
	level   *slog.LevelVar
	logger  *slog.Logger
	mover   *mover.Mover
	hotkeys *hotkeys.Handler
	server  *ipc.Server
	watcher *DisplayWatcher

	reloadChan chan struct{}

	mu        sync.Mutex
	cfg       *config.Config
	migration migrationSetter
}

// New connects to the X server named by cfg.Display and builds the daemon.
// Nothing is grabbed or listened on until Run.
func New(cfg *config.Config) (*Daemon, error) {
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to display: %w", err)
	}

	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	mv := mover.New(backend, mover.Options{
		CorrectMigration: cfg.CorrectMonitorMigration,
		Logger:           logger,
	})

	reloadChan := make(chan struct{}, 1)
	server, err := ipc.NewServer(cfg, mv, backend, reloadChan)
	if err != nil {
		backend.Disconnect()
		return nil, fmt.Errorf("failed to create IPC server: %w", err)
	}

	d := &Daemon{
		backend:    backend,
		level:      level,
		logger:     logger,
		mover:      mv,
		hotkeys:    hotkeys.NewHandler(backend, mv),
		server:     server,
		reloadChan: reloadChan,
		cfg:        cfg,
		migration:  mv,
	}
	d.watcher = NewDisplayWatcher(WatcherConfig{
		Interval: WatchInterval,
		Logger:   logger,
	}, backend)
	return d, nil
}

// Run grabs the configured hotkeys, starts the IPC server and dispatches X
// events until SIGINT or SIGTERM.
func (d *Daemon) Run() error {
	defer d.backend.Disconnect()

	cfg := d.config()
	if err := d.hotkeys.RegisterAll(cfg); err != nil {
		log.Printf("Warning: some hotkeys could not be registered:\n%v", err)
	}

	if err := d.server.Start(); err != nil {
		return err
	}
	defer d.server.Stop()

	d.watcher.CheckNow()
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	go d.watcher.Run(watchCtx)

	if path, err := config.DefaultConfigPath(); err == nil {
		cw := NewConfigWatcher(path, d.logger, func() {
			log.Println("Config file changed, reloading config...")
			d.reloadFromDisk()
		})
		if err := cw.Start(); err != nil {
			log.Printf("Config file watching disabled: %v", err)
		} else {
			go cw.Run(watchCtx)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	log.Println("winplace daemon started successfully")
	log.Println("Entering event loop...")
	d.serve(sigCh, startEventLoop(d.backend.EventLoop))
	return nil
}

// startEventLoop runs loop in its own goroutine. The returned channel is
// closed when loop returns.
//
// xevent.Quit is only noticed after the next X event arrives, and an idle
// daemon receives none, so shutdown does not wait for the loop. Run's
// deferred Disconnect tears the connection down under it.
func startEventLoop(loop func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		loop()
	}()
	return done
}

// serve handles signals and IPC reloads. It returns on SIGINT or SIGTERM, or
// when the X event loop ends.
func (d *Daemon) serve(sigCh <-chan os.Signal, loopDone <-chan struct{}) {
	for {
		select {
		case <-loopDone:
			log.Println("X event loop exited")
			return

		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading config...")
				d.reloadFromDisk()

			case os.Interrupt, syscall.SIGTERM:
				log.Println("Shutting down winplace daemon...")
				return
			}

		case <-d.reloadChan:
			// Reloaded via IPC; the server already holds the new config.
			d.applyConfig(d.server.GetConfig())
		}
	}
}

// reloadFromDisk loads the config file and applies it. A broken file keeps
// the running config.
func (d *Daemon) reloadFromDisk() {
	newCfg, err := config.Load()
	if err != nil {
		log.Printf("Config reload failed: %v", err)
		return
	}
	d.server.UpdateConfig(newCfg)
	d.applyConfig(newCfg)
	log.Println("Config reloaded successfully")
}

func (d *Daemon) config() *config.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// applyConfig pushes the settings that can change at runtime into the running
// components. Hotkey grabs are left alone.
func (d *Daemon) applyConfig(cfg *config.Config) {
	d.mu.Lock()
	old := d.cfg
	d.cfg = cfg
	d.mu.Unlock()

	d.migration.SetCorrectMigration(cfg.CorrectMonitorMigration)
	d.level.Set(cfg.SlogLevel())

	if old != nil && old.Display != cfg.Display {
		log.Printf("Warning: display changed to %q; restart the daemon to connect to it", cfg.Display)
	}
	if old != nil && bindingsChanged(old, cfg) {
		log.Println("Warning: hotkey bindings changed; restart the daemon to apply them")
	}
}

func bindingsChanged(a, b *config.Config) bool {
	return a.UndoHotkey != b.UndoHotkey || !maps.Equal(a.Bindings, b.Bindings)
}
