package registry

import (
	"testing"

	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/semantic"
)

const (
	kindCall semantic.NodeKind = iota + 1000
	kindMethod
)

func TestRegisterAndDispatchNode(t *testing.T) {
	r := New()
	rule := diag.NewRuleID(diag.CategoryLint, "testRule")

	called := false
	err := r.RegisterNode(rule, kindCall, func(ctx *Context) []diag.Diagnostic {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("RegisterNode: %v", err)
	}

	cbs := r.NodeCallbacksFor(kindCall)
	if len(cbs) != 1 || cbs[0].Rule != rule {
		t.Fatalf("NodeCallbacksFor = %+v, want one entry for rule", cbs)
	}
	cbs[0].Cb(&Context{})
	if !called {
		t.Fatal("expected the registered callback to run")
	}

	if cbs := r.NodeCallbacksFor(kindMethod); len(cbs) != 0 {
		t.Fatalf("expected no callbacks for an unregistered kind, got %+v", cbs)
	}
}

func TestRegisterNodeDuplicateIsError(t *testing.T) {
	r := New()
	rule := diag.NewRuleID(diag.CategoryLint, "dup")
	noop := func(ctx *Context) []diag.Diagnostic { return nil }

	if err := r.RegisterNode(rule, kindCall, noop); err != nil {
		t.Fatalf("first RegisterNode: %v", err)
	}
	if err := r.RegisterNode(rule, kindCall, noop); err == nil {
		t.Fatal("expected an error registering the same (rule, kind) pair twice")
	}
}

func TestRegisterLineAndFile(t *testing.T) {
	r := New()
	lineRule := diag.NewRuleID(diag.CategoryLayout, "lineRule")
	fileRule := diag.NewRuleID(diag.CategoryLayout, "fileRule")

	if err := r.RegisterLine(lineRule, func(ctx *LineContext) []diag.Diagnostic { return nil }); err != nil {
		t.Fatalf("RegisterLine: %v", err)
	}
	if err := r.RegisterFile(fileRule, func(ctx *FileContext) []diag.Diagnostic { return nil }); err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}

	if _, ok := r.LineCallbacks()[lineRule]; !ok {
		t.Fatal("expected line callback to be registered")
	}
	if _, ok := r.FileCallbacks()[fileRule]; !ok {
		t.Fatal("expected file callback to be registered")
	}

	rules := r.Rules()
	if len(rules) != 2 {
		t.Fatalf("Rules() = %v, want 2 entries", rules)
	}
}

func TestRegisterNilCallbackIsError(t *testing.T) {
	r := New()
	rule := diag.NewRuleID(diag.CategoryLint, "nilcb")
	if err := r.RegisterNode(rule, kindCall, nil); err == nil {
		t.Fatal("expected an error registering a nil node callback")
	}
	if err := r.RegisterLine(rule, nil); err == nil {
		t.Fatal("expected an error registering a nil line callback")
	}
	if err := r.RegisterFile(rule, nil); err == nil {
		t.Fatal("expected an error registering a nil file callback")
	}
}
