package logfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLastNonEmptyLine(t *testing.T) {
	path := writeFile(t, "ch1.log", "24-03-18,09:00:00,290.1\n24-03-18,10:00:00,291.5\n")
	line, err := LastNonEmptyLine(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "24-03-18,10:00:00,291.5" {
		t.Errorf("got %q", line)
	}
}

func TestLastNonEmptyLine_TrailingBlanksKeepValue(t *testing.T) {
	// A trailing blank line must not discard the last real record
	path := writeFile(t, "ch1.log", "24-03-18,10:00:00,291.5\n\n   \n\n")
	line, err := LastNonEmptyLine(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "24-03-18,10:00:00,291.5" {
		t.Errorf("got %q", line)
	}
}

func TestLastNonEmptyLine_NoTrailingNewline(t *testing.T) {
	path := writeFile(t, "ch1.log", "24-03-18,10:00:00,291.5")
	line, err := LastNonEmptyLine(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "24-03-18,10:00:00,291.5" {
		t.Errorf("got %q", line)
	}
}

func TestLastNonEmptyLine_EmptyFile(t *testing.T) {
	for _, content := range []string{"", "\n\n", "   \n\t\n"} {
		path := writeFile(t, "empty.log", content)
		_, err := LastNonEmptyLine(path)
		if !errors.Is(err, ErrEmptyFile) {
			t.Errorf("content %q: expected ErrEmptyFile, got %v", content, err)
		}
	}
}

func TestLastNonEmptyLine_NotFound(t *testing.T) {
	_, err := LastNonEmptyLine(filepath.Join(t.TempDir(), "missing.log"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLastNonEmptyLine_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.log")
	if err := os.WriteFile(path, []byte("24-03-18,10:00:00,\xff\xfe291.5\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	line, err := LastNonEmptyLine(path)
	if err != nil {
		t.Fatalf("invalid bytes should be substituted, not fatal: %v", err)
	}
	if line == "" {
		t.Error("expected a non-empty line")
	}
}

func TestFirstAndLastLine(t *testing.T) {
	path := writeFile(t, "status.log", "\nfirst record\nmiddle\nlast record\n\n")
	first, last, err := FirstAndLastLine(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "first record" || last != "last record" {
		t.Errorf("got first=%q last=%q", first, last)
	}
}

func TestFirstAndLastLine_SingleLine(t *testing.T) {
	path := writeFile(t, "one.log", "only record\n")
	first, last, err := FirstAndLastLine(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "only record" || last != "only record" {
		t.Errorf("got first=%q last=%q", first, last)
	}
}
