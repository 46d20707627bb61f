// Package report builds a plain-text survey of every file in a dated log
// folder: size plus first and last non-empty line per file. Strictly
// read-only against the logs tree; the rendered report is saved elsewhere.
package report

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	constants "cryopush/config"
	"cryopush/internal/logfile"
	"cryopush/pkg/utils"
)

// Build renders a survey of dateDir. Unreadable, oversized, empty and
// binary files are noted and skipped; nothing aborts the whole report.
func Build(dateDir string) (string, error) {
	dirEntries, err := os.ReadDir(dateDir)
	if err != nil {
		return "", fmt.Errorf("cannot list directory %s: %w", dateDir, err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var b strings.Builder
	rule := strings.Repeat("=", 72)

	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "  CRYOSTAT LOG FOLDER REPORT\n")
	fmt.Fprintf(&b, "  Date folder: %s\n", dateDir)
	fmt.Fprintf(&b, "  Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "  Total files found: %d\n", len(names))
	fmt.Fprintf(&b, "%s\n\n", rule)

	for i, name := range names {
		path := filepath.Join(dateDir, name)
		fmt.Fprintf(&b, "[%03d] File: %s\n", i+1, name)

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(&b, "      ERROR: cannot stat file: %v\n\n", err)
			continue
		}
		if info.IsDir() {
			fmt.Fprintf(&b, "      SKIPPED: not a file\n\n")
			continue
		}
		fmt.Fprintf(&b, "      Size: %s\n", utils.FormatBytes(info.Size()))

		switch {
		case info.Size() > constants.REPORT_MAX_FILE_SIZE:
			fmt.Fprintf(&b, "      SKIPPED: exceeds %d byte limit\n\n", constants.REPORT_MAX_FILE_SIZE)
			continue
		case info.Size() == 0:
			fmt.Fprintf(&b, "      SKIPPED: empty file\n\n")
			continue
		case isLikelyBinary(path):
			fmt.Fprintf(&b, "      SKIPPED: appears to be a binary file\n\n")
			continue
		}

		first, last, err := logfile.FirstAndLastLine(path)
		if err != nil {
			fmt.Fprintf(&b, "      ERROR: %v\n\n", err)
			continue
		}
		first = utils.TruncateString(first, constants.REPORT_MAX_LINE_LEN)
		last = utils.TruncateString(last, constants.REPORT_MAX_LINE_LEN)
		fmt.Fprintf(&b, "      FIRST LINE: %s\n", first)
		if last == first {
			fmt.Fprintf(&b, "      LAST  LINE: (same as first, single line file)\n")
		} else {
			fmt.Fprintf(&b, "      LAST  LINE: %s\n", last)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\n  END OF REPORT\n%s\n", rule, rule)
	return b.String(), nil
}

// isLikelyBinary sniffs the first 512 bytes for NUL. An unreadable file
// is treated as binary so the report just skips it.
func isLikelyBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	chunk := make([]byte, 512)
	n, err := f.Read(chunk)
	if err != nil && err != io.EOF {
		return true
	}
	return bytes.IndexByte(chunk[:n], 0) >= 0
}

// Upload posts the report to the paste service and returns the share URL
func Upload(client *http.Client, content string) (string, error) {
	form := url.Values{
		"content":     {content},
		"syntax":      {"text"},
		"expiry_days": {"7"},
	}

	resp, err := client.PostForm(constants.REPORT_UPLOAD_URL, form)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload rejected: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	return strings.Trim(strings.TrimSpace(string(body)), `"`), nil
}
