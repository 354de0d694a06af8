package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTakeIndent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"No indent", "hello", ""},
		{"Space indent", "  hello", "  "},
		{"Tab indent", "\t\thello", "\t\t"},
		{"Mixed indent", " \t hello", " \t "},
		{"Only indent", "    ", "    "},
		{"Empty string", "", ""},
		{"Newline in indent (should stop at newline)", "  \nhello", "  "},
		{"Non-whitespace immediately", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TakeIndent(tt.input)
			if result != tt.expected {
				t.Errorf("TakeIndent(%q) = %q; want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSHA1HexIsStableAndContentSensitive(t *testing.T) {
	a := SHA1Hex([]byte("hello"))
	b := SHA1Hex([]byte("hello"))
	if a != b {
		t.Fatalf("SHA1Hex should be stable across calls, got %q and %q", a, b)
	}
	if a == SHA1Hex([]byte("hellp")) {
		t.Fatal("SHA1Hex should differ for different content")
	}
	if len(a) != 40 {
		t.Fatalf("SHA1Hex() length = %d, want 40 hex digits", len(a))
	}
}

func TestRaceDetectedOnUnmodifiedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.rb")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if RaceDetected(before, after) {
		t.Fatal("RaceDetected should be false when nothing touched the file in between")
	}
}

func TestRaceDetectedOnSizeChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.rb")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(path, []byte("a longer body"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	if !RaceDetected(before, after) {
		t.Fatal("RaceDetected should be true when the file was rewritten in between")
	}
}

func TestRaceDetectedNilInfoIsFalse(t *testing.T) {
	if RaceDetected(nil, nil) {
		t.Fatal("RaceDetected with nil FileInfo should not claim a race")
	}
}

func TestExpandGlobsLiteralPathPassesThrough(t *testing.T) {
	out := ExpandGlobs([]string{"lib/foo.rb"})
	if len(out) != 1 || out[0] != "lib/foo.rb" {
		t.Fatalf("ExpandGlobs literal = %v, want [lib/foo.rb]", out)
	}
}

func TestExpandGlobsStdinMarkerPassesThrough(t *testing.T) {
	out := ExpandGlobs([]string{"-"})
	if len(out) != 1 || out[0] != "-" {
		t.Fatalf("ExpandGlobs(\"-\") = %v, want [-]", out)
	}
}

func TestExpandGlobsExpandsPattern(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.rb", "b.rb"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	out := ExpandGlobs([]string{filepath.Join(dir, "*.rb")})
	if len(out) != 2 {
		t.Fatalf("ExpandGlobs glob match count = %d, want 2 (%v)", len(out), out)
	}
}
