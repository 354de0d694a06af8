package layout

import (
	"strings"
	"testing"

	"github.com/oxhq/rubocheck/internal/checker"
	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/registry"
)

func trailingEmptyLinesDiags(t *testing.T, source string) []string {
	t.Helper()
	reg := registry.New()
	if err := reg.RegisterFile(config.RuleTrailingEmptyLines, checkTrailingEmptyLines); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	diags, err := checker.New(reg).Check("example.rb", []byte(source))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func TestTrailingEmptyLinesFinalNewlineOK(t *testing.T) {
	if msgs := trailingEmptyLinesDiags(t, "class Foo\nend\n"); len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", msgs)
	}
}

func TestTrailingEmptyLinesMissingFinalNewline(t *testing.T) {
	msgs := trailingEmptyLinesDiags(t, "class Foo\nend")
	if len(msgs) != 1 || !strings.Contains(msgs[0], "Final newline missing") {
		t.Fatalf("expected final-newline-missing diagnostic, got %v", msgs)
	}
}

func TestTrailingEmptyLinesOneBlankLine(t *testing.T) {
	msgs := trailingEmptyLinesDiags(t, "class Foo\nend\n\n")
	if len(msgs) != 1 || !strings.Contains(msgs[0], "1 trailing blank line") {
		t.Fatalf("expected one-trailing-blank-line diagnostic, got %v", msgs)
	}
}

func TestTrailingEmptyLinesMultipleBlankLines(t *testing.T) {
	msgs := trailingEmptyLinesDiags(t, "class Foo\nend\n\n\n")
	if len(msgs) != 1 || !strings.Contains(msgs[0], "2 trailing blank lines") {
		t.Fatalf("expected two-trailing-blank-lines diagnostic, got %v", msgs)
	}
}

func TestTrailingEmptyLinesEmptyFile(t *testing.T) {
	if msgs := trailingEmptyLinesDiags(t, ""); len(msgs) != 0 {
		t.Fatalf("expected no diagnostics on empty source, got %v", msgs)
	}
}
