package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigWatcher_CoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	changed := make(chan struct{}, 10)
	w := NewConfigWatcher(path, quietLogger(), func() { changed <- struct{}{} })
	w.delay = 100 * time.Millisecond
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for _, data := range []string{"log_level: debug\n", "log_level: info\n"} {
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a change notification")
	}
	select {
	case <-changed:
		t.Fatalf("expected writes to be coalesced into one notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestConfigWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	changed := make(chan struct{}, 1)
	w := NewConfigWatcher(filepath.Join(dir, "config.yaml"), quietLogger(), func() { changed <- struct{}{} })
	w.delay = 20 * time.Millisecond
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-changed:
		t.Fatalf("unexpected notification for unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestConfigWatcher_MissingDirectory(t *testing.T) {
	w := NewConfigWatcher(filepath.Join(t.TempDir(), "nope", "config.yaml"), quietLogger(), func() {})
	if err := w.Start(); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
