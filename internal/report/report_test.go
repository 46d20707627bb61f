package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"Status_24-03-18.log": []byte("first status line\nlast status line\n"),
		"empty.log":           {},
		"binary.dat":          {0x00, 0x01, 0x02, 0x03},
		"single.log":          []byte("only line\n"),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	out, err := Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, want := range []string{
		"Total files found: 5",
		"Size: 35 B",
		"FIRST LINE: first status line",
		"LAST  LINE: last status line",
		"SKIPPED: empty file",
		"SKIPPED: appears to be a binary file",
		"SKIPPED: not a file",
		"(same as first, single line file)",
		"END OF REPORT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestBuild_TruncatesLongLines(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x", 1000)
	if err := os.WriteFile(filepath.Join(dir, "long.log"), []byte(long+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(out, long) {
		t.Error("report should not carry the full untruncated line")
	}
	if !strings.Contains(out, "...") {
		t.Error("truncated line should end with an ellipsis")
	}
}

func TestBuild_MissingDir(t *testing.T) {
	if _, err := Build(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestIsLikelyBinary(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "text.log")
	os.WriteFile(text, []byte("plain text\n"), 0644)
	if isLikelyBinary(text) {
		t.Error("text file misdetected as binary")
	}

	bin := filepath.Join(dir, "bin.dat")
	os.WriteFile(bin, []byte{'a', 0x00, 'b'}, 0644)
	if !isLikelyBinary(bin) {
		t.Error("NUL-containing file should be detected as binary")
	}

	if !isLikelyBinary(filepath.Join(dir, "missing")) {
		t.Error("unreadable file should be treated as binary")
	}
}
