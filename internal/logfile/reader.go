// Package logfile reads and parses the instrument log files written by the
// cryostat control software. Everything here is strictly read-only: files
// are opened with shared read access and are never locked, truncated, or
// seeked while the control software is still appending to them.
package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Distinct read failures. The collector reports each kind separately per
// file, so they must stay programmatically distinguishable via errors.Is.
var (
	ErrNotFound   = errors.New("log file not found")
	ErrEmptyFile  = errors.New("log file has no non-empty lines")
	ErrPermission = errors.New("log file permission denied")
)

// LastNonEmptyLine returns the last line of the file whose trimmed content
// is non-empty. The file is scanned sequentially from the start; seeking in
// from the end risks reading a torn write on a file that is being appended
// to, so we never do it. Invalid UTF-8 bytes are substituted, not fatal.
func LastNonEmptyLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", classifyOpenError(path, err)
	}
	defer f.Close()

	var last string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ToValidUTF8(scanner.Text(), "�"))
		if line != "" {
			last = line
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if last == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return last, nil
}

// FirstAndLastLine returns the first and last non-empty lines of the file.
// Used by the report command to survey an entire dated folder.
func FirstAndLastLine(path string) (first, last string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", classifyOpenError(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ToValidUTF8(scanner.Text(), "�"))
		if line == "" {
			continue
		}
		if first == "" {
			first = line
		}
		last = line
	}
	if err := scanner.Err(); err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if first == "" {
		return "", "", fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return first, last, nil
}

func classifyOpenError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermission, path)
	default:
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
}
