package layout

import (
	"testing"

	"github.com/oxhq/rubocheck/internal/checker"
	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/registry"
)

func emptyLinesDiags(t *testing.T, source string) []diagResult {
	t.Helper()
	reg := registry.New()
	if err := reg.RegisterLine(config.RuleEmptyLines, checkEmptyLines); err != nil {
		t.Fatalf("RegisterLine: %v", err)
	}
	diags, err := checker.New(reg).Check("example.rb", []byte(source))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	out := make([]diagResult, len(diags))
	for i, d := range diags {
		out[i] = diagResult{msg: d.Message, fix: d.Fix}
	}
	return out
}

type diagResult struct {
	msg string
	fix *diag.Fix
}

func TestEmptyLinesSingleBlankIsFine(t *testing.T) {
	msgs := emptyLinesDiags(t, "def foo\nend\n\ndef bar\nend\n")
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics for a single blank line, got %v", msgs)
	}
}

func TestEmptyLinesTwoConsecutiveFlagged(t *testing.T) {
	msgs := emptyLinesDiags(t, "def foo\nend\n\n\ndef bar\nend\n")
	if len(msgs) != 1 {
		t.Fatalf("expected one diagnostic, got %d: %v", len(msgs), msgs)
	}
}

func TestEmptyLinesRunAtEndOfFileNotFlagged(t *testing.T) {
	msgs := emptyLinesDiags(t, "def foo\nend\n\n\n")
	if len(msgs) != 0 {
		t.Fatalf("a run still open at EOF should be left to TrailingEmptyLines, got %v", msgs)
	}
}

func TestEmptyLinesFixDeletesAllButFirstBlank(t *testing.T) {
	source := "def foo\nend\n\n\n\ndef bar\nend\n"
	msgs := emptyLinesDiags(t, source)
	if len(msgs) != 1 {
		t.Fatalf("expected one diagnostic, got %d: %v", len(msgs), msgs)
	}
	fix := msgs[0].fix
	if fix == nil || len(fix.Edits) != 1 {
		t.Fatalf("expected a single-edit fix, got %v", fix)
	}
	edit := fix.Edits[0]
	deleted := source[edit.Start:edit.End]
	if deleted != "\n\n" {
		t.Fatalf("fix range = %q, want the two extra blank lines", deleted)
	}
}
