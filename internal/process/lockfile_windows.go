//go:build windows
// +build windows

package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LockFile represents an exclusive lock held via an O_EXCL-created PID file.
// Windows has no flock, so staleness is judged by the file's age: a lock
// older than staleAfter is assumed to belong to a dead cycle.
type LockFile struct {
	path string
}

const staleAfter = 10 * time.Minute

var getPIDFilePath = func() string {
	dir := os.Getenv("LOCALAPPDATA")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "cryopush", "cryopush.pid")
}

// Acquire creates the PID file exclusively, breaking stale locks
func Acquire() (*LockFile, error) {
	pidFile := getPIDFilePath()
	if err := os.MkdirAll(filepath.Dir(pidFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create PID directory: %w", err)
	}

	f, err := os.OpenFile(pidFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if info, statErr := os.Stat(pidFile); statErr == nil && time.Since(info.ModTime()) > staleAfter {
			os.Remove(pidFile)
			return Acquire()
		}
		return nil, fmt.Errorf("another cryopush cycle is already running")
	}
	fmt.Fprintf(f, "%d\n", os.Getpid())
	f.Close()

	return &LockFile{path: pidFile}, nil
}

// Release removes the PID file
func (lf *LockFile) Release() error {
	if lf.path == "" {
		return nil
	}
	os.Remove(lf.path)
	lf.path = ""
	return nil
}

// Check reports whether a fresh PID file exists and the PID it holds
func Check() (bool, int, error) {
	pidFile := getPIDFilePath()
	data, err := os.ReadFile(pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	if info, err := os.Stat(pidFile); err == nil && time.Since(info.ModTime()) > staleAfter {
		return false, 0, nil
	}
	pid, _ := strconv.Atoi(strings.TrimSpace(string(data)))
	return true, pid, nil
}

// IsCryopushProcess reports whether the PID could belong to a cryopush
// process. Without procfs there is nothing to inspect, so a positive PID
// is taken at its word.
func IsCryopushProcess(pid int) bool {
	return pid > 0
}

// CleanupStale removes an aged-out PID file
func CleanupStale() error {
	running, pid, err := Check()
	if err != nil {
		return err
	}
	if running {
		return fmt.Errorf("a cryopush cycle is running (PID %d)", pid)
	}
	os.Remove(getPIDFilePath())
	return nil
}
