package layout

import (
	"testing"

	"github.com/oxhq/rubocheck/internal/checker"
	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/registry"
)

func checkSource(t *testing.T, rule func(*registry.Registry) error, source string) []string {
	t.Helper()
	reg := registry.New()
	if err := rule(reg); err != nil {
		t.Fatalf("registering rule: %v", err)
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

func TestTrailingWhitespaceNone(t *testing.T) {
	msgs := checkSource(t, func(r *registry.Registry) error {
		return r.RegisterLine(config.RuleTrailingWhitespace, checkTrailingWhitespace)
	}, "def foo\n  bar\nend\n")
	if len(msgs) != 0 {
		t.Fatalf("expected no trailing whitespace diagnostics, got %v", msgs)
	}
}

func TestTrailingWhitespaceDetected(t *testing.T) {
	msgs := checkSource(t, func(r *registry.Registry) error {
		return r.RegisterLine(config.RuleTrailingWhitespace, checkTrailingWhitespace)
	}, "def foo  \n  bar\nend\n")
	if len(msgs) != 1 {
		t.Fatalf("expected one trailing whitespace diagnostic, got %d: %v", len(msgs), msgs)
	}
}

func TestTrailingWhitespaceFixDeletesOnlyTheWhitespace(t *testing.T) {
	reg := registry.New()
	if err := reg.RegisterLine(config.RuleTrailingWhitespace, checkTrailingWhitespace); err != nil {
		t.Fatalf("RegisterLine: %v", err)
	}
	source := "def foo   \nend\n"
	diags, err := checker.New(reg).Check("example.rb", []byte(source))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	fix := diags[0].Fix
	if fix == nil || len(fix.Edits) != 1 {
		t.Fatalf("expected a single-edit fix, got %v", fix)
	}
	edit := fix.Edits[0]
	if source[edit.Start:edit.End] != "   " {
		t.Fatalf("fix range = %q, want the trailing spaces only", source[edit.Start:edit.End])
	}
}
