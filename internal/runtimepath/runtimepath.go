package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

const socketName = "winplace.sock"

// Dir returns the directory holding the daemon socket. In order of
// preference: $XDG_RUNTIME_DIR, /run/user/<uid>, then a private
// /tmp/winplace-runtime-<uid> that is created on demand.
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	if runUserDir := fmt.Sprintf("/run/user/%d", uid); isDir(runUserDir) {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/winplace-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// SocketPath returns the daemon IPC socket path.
func SocketPath() (string, error) {
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, socketName), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
