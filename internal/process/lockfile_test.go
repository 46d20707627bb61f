//go:build !windows
// +build !windows

package process

import (
	"fmt"
	"os"
	"runtime"
	"testing"
)

func withTestPIDFile(t *testing.T) string {
	t.Helper()
	testPIDFile := t.TempDir() + "/test_cryopush.pid"
	original := getPIDFilePath
	getPIDFilePath = func() string { return testPIDFile }
	t.Cleanup(func() { getPIDFilePath = original })
	return testPIDFile
}

func TestLockfile_SingleInstance(t *testing.T) {
	withTestPIDFile(t)

	lock1, err := Acquire()
	if err != nil {
		t.Fatalf("First cycle failed to acquire lock: %v", err)
	}
	defer lock1.Release()

	lock2, err := Acquire()
	if err == nil {
		lock2.Release()
		t.Fatal("Second cycle should not have acquired the lock")
	}
}

func TestLockfile_ReleaseAndReacquire(t *testing.T) {
	testPIDFile := withTestPIDFile(t)

	lock1, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	lock1.Release()

	lock2, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to reacquire lock after release: %v", err)
	}
	defer lock2.Release()

	if _, err := os.Stat(testPIDFile); os.IsNotExist(err) {
		t.Error("PID file should exist after reacquisition")
	}
}

func TestLockfile_Check(t *testing.T) {
	withTestPIDFile(t)

	running, pid, err := Check()
	if err != nil {
		t.Errorf("Check should not error when no lock exists: %v", err)
	}
	if running || pid != 0 {
		t.Errorf("expected no running cycle, got running=%v pid=%d", running, pid)
	}

	lock, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	defer lock.Release()

	running, pid, err = Check()
	if err != nil {
		t.Errorf("Check failed: %v", err)
	}
	if !running {
		t.Error("Check should report a running cycle while the lock is held")
	}
	if pid != os.Getpid() {
		t.Errorf("Check should return current PID %d, got %d", os.Getpid(), pid)
	}
}

func TestLockfile_CleanupStale(t *testing.T) {
	testPIDFile := withTestPIDFile(t)

	// A PID file without a held flock is stale by definition
	if err := os.WriteFile(testPIDFile, []byte("99999\n"), 0644); err != nil {
		t.Fatalf("Failed to create stale PID file: %v", err)
	}

	if err := CleanupStale(); err != nil {
		t.Errorf("CleanupStale should not error on a stale file: %v", err)
	}
	if _, err := os.Stat(testPIDFile); !os.IsNotExist(err) {
		t.Error("Stale PID file should have been removed")
	}
}

func TestLockfile_PIDFileContent(t *testing.T) {
	testPIDFile := withTestPIDFile(t)

	lock, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	defer lock.Release()

	content, err := os.ReadFile(testPIDFile)
	if err != nil {
		t.Fatalf("Failed to read PID file: %v", err)
	}

	var filePID int
	if _, err := fmt.Sscanf(string(content), "%d", &filePID); err != nil {
		t.Fatalf("Failed to parse PID from file: %v", err)
	}
	if filePID != os.Getpid() {
		t.Errorf("PID file should contain %d, got %d", os.Getpid(), filePID)
	}
}

func TestLockfile_MultipleReleases(t *testing.T) {
	withTestPIDFile(t)

	lock, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	lock.Release()
	lock.Release() // safe to call again

	lock2, err := Acquire()
	if err != nil {
		t.Fatalf("Failed to acquire lock after multiple releases: %v", err)
	}
	defer lock2.Release()
}

func TestLockfile_IsCryopushProcess(t *testing.T) {
	if IsCryopushProcess(0) {
		t.Error("PID 0 should never be accepted")
	}
	if IsCryopushProcess(-5) {
		t.Error("negative PID should never be accepted")
	}
	if runtime.GOOS == "linux" {
		// The test binary's cmdline does not mention cryopush
		if IsCryopushProcess(os.Getpid()) {
			t.Error("test process misidentified as a cryopush process")
		}
	}
}
