package layout

import (
	"strings"
	"testing"

	"github.com/oxhq/rubocheck/internal/checker"
	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/registry"
)

func leadingEmptyLinesDiags(t *testing.T, source string) []string {
	t.Helper()
	reg := registry.New()
	if err := reg.RegisterFile(config.RuleLeadingEmptyLines, checkLeadingEmptyLines); err != nil {
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

func TestLeadingEmptyLinesNone(t *testing.T) {
	if msgs := leadingEmptyLinesDiags(t, "class Foo\nend\n"); len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", msgs)
	}
}

func TestLeadingEmptyLinesOne(t *testing.T) {
	msgs := leadingEmptyLinesDiags(t, "\nclass Foo\nend\n")
	if len(msgs) != 1 || !strings.Contains(msgs[0], "Unnecessary blank line") {
		t.Fatalf("expected one leading-blank-line diagnostic, got %v", msgs)
	}
}

func TestLeadingEmptyLinesMultiple(t *testing.T) {
	msgs := leadingEmptyLinesDiags(t, "\n\n\nclass Foo\nend\n")
	if len(msgs) != 1 || !strings.Contains(msgs[0], "3 lines") {
		t.Fatalf("expected three-lines diagnostic, got %v", msgs)
	}
}

func TestLeadingSpacesOnlyNotFlagged(t *testing.T) {
	if msgs := leadingEmptyLinesDiags(t, "  class Foo\nend\n"); len(msgs) != 0 {
		t.Fatalf("leading spaces without a newline should not be flagged, got %v", msgs)
	}
}

func TestLeadingEmptyLinesEmptyFile(t *testing.T) {
	if msgs := leadingEmptyLinesDiags(t, ""); len(msgs) != 0 {
		t.Fatalf("expected no diagnostics on empty source, got %v", msgs)
	}
}

func TestLeadingCommentAtStartNotFlagged(t *testing.T) {
	if msgs := leadingEmptyLinesDiags(t, "# frozen_string_literal: true\nclass Foo\nend\n"); len(msgs) != 0 {
		t.Fatalf("a leading comment with no blank line should not be flagged, got %v", msgs)
	}
}
