//go:build !windows
// +build !windows

// Package process guards against overlapping collection cycles. The
// exporter is fired by an external scheduler; if one cycle overruns its
// interval, the next tick must skip instead of racing it.
package process

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"cryopush/internal/logger"
)

// LockFile represents an exclusive lock on a PID file
type LockFile struct {
	path string
	fd   int
}

// getPIDFilePath returns the appropriate PID file path for the OS
// Variable (not function) to allow override in tests
var getPIDFilePath = func() string {
	if runtime.GOOS == "linux" {
		// Prefer XDG Runtime Dir (cleaned on logout, per-user)
		runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
		if runtimeDir != "" {
			return filepath.Join(runtimeDir, "cryopush.pid")
		}

		home, err := os.UserHomeDir()
		if err == nil {
			runDir := filepath.Join(home, ".local", "run")
			os.MkdirAll(runDir, 0755)
			return filepath.Join(runDir, "cryopush.pid")
		}

		return fmt.Sprintf("/tmp/cryopush-%d.pid", os.Getuid())
	}

	// macOS: use Application Support
	home, err := os.UserHomeDir()
	if err == nil {
		appSupport := filepath.Join(home, "Library", "Application Support", "cryopush")
		os.MkdirAll(appSupport, 0755)
		return filepath.Join(appSupport, "cryopush.pid")
	}

	return "/tmp/cryopush.pid"
}

// Acquire creates and locks the PID file atomically. Returns an error if
// another collection cycle is still running.
func Acquire() (*LockFile, error) {
	pidFile := getPIDFilePath()

	dir := filepath.Dir(pidFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create PID directory: %w", err)
	}

	fd, err := syscall.Open(
		pidFile,
		syscall.O_RDWR|syscall.O_CREAT,
		0644,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open PID file: %w", err)
	}

	// Non-blocking exclusive lock; fails immediately when the previous
	// cycle still holds it
	err = syscall.Flock(fd, syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		syscall.Close(fd)

		if isStale, stalePID := checkStaleLock(pidFile); isStale {
			logger.Info("Cleaning up stale PID file (process %d no longer exists)", stalePID)
			os.Remove(pidFile)
			return Acquire()
		}

		return nil, fmt.Errorf("another cryopush cycle is already running")
	}

	if err := syscall.Ftruncate(fd, 0); err != nil {
		syscall.Flock(fd, syscall.LOCK_UN)
		syscall.Close(fd)
		return nil, fmt.Errorf("failed to truncate PID file: %w", err)
	}

	pid := fmt.Sprintf("%d\n", os.Getpid())
	if _, err := syscall.Write(fd, []byte(pid)); err != nil {
		syscall.Flock(fd, syscall.LOCK_UN)
		syscall.Close(fd)
		return nil, fmt.Errorf("failed to write PID: %w", err)
	}

	// Keep fd open to maintain the lock
	return &LockFile{
		path: pidFile,
		fd:   fd,
	}, nil
}

// Release releases the lock and removes the PID file
func (lf *LockFile) Release() error {
	if lf.fd <= 0 {
		return nil
	}

	syscall.Flock(lf.fd, syscall.LOCK_UN)
	syscall.Close(lf.fd)
	os.Remove(lf.path)

	lf.fd = 0
	return nil
}

// Check reports whether another cycle is running and its PID
func Check() (bool, int, error) {
	pidFile := getPIDFilePath()

	fd, err := syscall.Open(pidFile, syscall.O_RDONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("failed to open PID file: %w", err)
	}
	defer syscall.Close(fd)

	err = syscall.Flock(fd, syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		// Failed to lock = another instance holds it
		pid := readPIDFromFd(fd)
		return true, pid, nil
	}

	syscall.Flock(fd, syscall.LOCK_UN)
	return false, 0, nil
}

// checkStaleLock reports whether the PID file is stale (nobody holds the lock)
func checkStaleLock(pidFile string) (bool, int) {
	fd, err := syscall.Open(pidFile, syscall.O_RDONLY, 0)
	if err != nil {
		return false, 0
	}
	defer syscall.Close(fd)

	err = syscall.Flock(fd, syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		return false, 0
	}
	syscall.Flock(fd, syscall.LOCK_UN)

	pid := readPIDFromFd(fd)
	return true, pid
}

// readPIDFromFd reads the PID recorded in the lock file
func readPIDFromFd(fd int) int {
	buf := make([]byte, 32)
	n, err := syscall.Read(fd, buf)
	if err != nil || n == 0 {
		return 0
	}

	var pid int
	fmt.Sscanf(string(buf[:n]), "%d", &pid)
	return pid
}

// IsCryopushProcess verifies that the given PID belongs to a cryopush
// process, protecting against PID reuse on Linux.
func IsCryopushProcess(pid int) bool {
	if pid <= 0 {
		return false
	}
	if runtime.GOOS != "linux" {
		// Without /proc we cannot verify; assume the PID is honest
		return true
	}

	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err != nil {
		return false
	}
	cmdline := strings.ToLower(strings.ReplaceAll(string(data), "\x00", " "))
	return strings.Contains(cmdline, "cryopush")
}

// CleanupStale removes the PID file when its owner is gone
func CleanupStale() error {
	pidFile := getPIDFilePath()

	running, pid, err := Check()
	if err != nil {
		return err
	}

	if !running {
		os.Remove(pidFile)
		return nil
	}

	if !IsCryopushProcess(pid) {
		logger.Info("PID file contains PID of a different process (%d), cleaning up", pid)
		os.Remove(pidFile)
		return nil
	}

	return fmt.Errorf("a cryopush cycle is running (PID %d)", pid)
}
