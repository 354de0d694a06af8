package checker

import (
	"testing"
	"time"

	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/registry"
)

func TestCheckDispatchesRegisteredNodeCallback(t *testing.T) {
	reg := registry.New()
	rule := diag.NewRuleID(diag.CategoryLint, "findMethods")

	var seen []string
	err := reg.RegisterNode(rule, KindMethod, func(ctx *registry.Context) []diag.Diagnostic {
		seen = append(seen, ctx.NodeText)
		return nil
	})
	if err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}

	c := New(reg)
	_, err = c.Check("example.rb", []byte("def foo\nend\n"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("expected exactly one method node visited, got %d: %v", len(seen), seen)
	}
}

func TestCheckRunsLineCallbackPerLine(t *testing.T) {
	reg := registry.New()
	rule := diag.NewRuleID(diag.CategoryLayout, "countLines")

	count := 0
	if err := reg.RegisterLine(rule, func(ctx *registry.LineContext) []diag.Diagnostic {
		count++
		return nil
	}); err != nil {
		t.Fatalf("RegisterLine: %v", err)
	}

	c := New(reg)
	if _, err := c.Check("example.rb", []byte("a\nb\nc\n")); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if count != 4 { // 3 content lines + trailing empty line after final \n
		t.Fatalf("line callback ran %d times, want 4", count)
	}
}

func TestCheckResolvesLineColumn(t *testing.T) {
	reg := registry.New()
	rule := diag.NewRuleID(diag.CategoryLint, "flagProgram")

	if err := reg.RegisterNode(rule, KindProgram, func(ctx *registry.Context) []diag.Diagnostic {
		return []diag.Diagnostic{diag.New(rule, "whole program", diag.SeverityWarning, ctx.Start, ctx.End, nil)}
	}); err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}

	c := New(reg)
	diags, err := c.Check("example.rb", []byte("puts 1\n"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	if diags[0].LineStart != 1 || diags[0].ColumnStart != 1 {
		t.Fatalf("diagnostic location = line %d col %d, want line 1 col 1", diags[0].LineStart, diags[0].ColumnStart)
	}
}

func TestCheckProgramRootExceptionDoesNotDoublePushStatements(t *testing.T) {
	reg := registry.New()
	rule := diag.NewRuleID(diag.CategoryLint, "recordDepth")

	var depths []int
	if err := reg.RegisterNode(rule, KindCall, func(ctx *registry.Context) []diag.Diagnostic {
		depths = append(depths, ctx.Ancestors.Depth())
		return nil
	}); err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}

	c := New(reg)
	if _, err := c.Check("example.rb", []byte("puts 1\n")); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(depths) != 1 {
		t.Fatalf("expected one call node, got %d", len(depths))
	}
	// With the program-root exception, a top-level call has no ancestor
	// frame at all: neither Program nor its Statements wrapper is pushed.
	if depths[0] != 0 {
		t.Fatalf("ancestor depth for top-level call = %d, want 0", depths[0])
	}
}

type fakeProfiler struct {
	records map[string]int
}

func (f *fakeProfiler) Record(ruleID diag.RuleID, _ time.Duration) {
	if f.records == nil {
		f.records = make(map[string]int)
	}
	f.records[ruleID.String()]++
}

func TestCheckWithProfilerRecordsOneInvocationPerCallback(t *testing.T) {
	reg := registry.New()
	rule := diag.NewRuleID(diag.CategoryLint, "profiledRule")
	if err := reg.RegisterNode(rule, KindMethod, func(ctx *registry.Context) []diag.Diagnostic {
		return nil
	}); err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}

	profiler := &fakeProfiler{}
	c := New(reg).WithProfiler(profiler)
	if _, err := c.Check("example.rb", []byte("def foo\nend\n\ndef bar\nend\n")); err != nil {
		t.Fatalf("Check: %v", err)
	}

	if got := profiler.records[rule.String()]; got != 2 {
		t.Fatalf("expected 2 recorded invocations (one per method), got %d", got)
	}
}

func TestCheckWithNilProfilerIsNoop(t *testing.T) {
	reg := registry.New()
	rule := diag.NewRuleID(diag.CategoryLint, "unprofiledRule")
	if err := reg.RegisterNode(rule, KindMethod, func(ctx *registry.Context) []diag.Diagnostic {
		return nil
	}); err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}

	c := New(reg)
	if _, err := c.Check("example.rb", []byte("def foo\nend\n")); err != nil {
		t.Fatalf("Check with no profiler bound should not panic or error: %v", err)
	}
}

func TestFatalDiagnosticOnUnparseableSource(t *testing.T) {
	c := New(registry.New())
	diags, err := c.Check("broken.rb", []byte("def foo("))
	if err != nil {
		t.Fatalf("Check should not itself error on bad syntax: %v", err)
	}
	foundFatal := false
	for _, d := range diags {
		if d.Severity == diag.SeverityFatal {
			foundFatal = true
		}
	}
	if !foundFatal {
		t.Fatal("expected at least one Fatal diagnostic for unparseable source")
	}
}
