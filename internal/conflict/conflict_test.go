package conflict

import (
	"testing"

	"github.com/oxhq/rubocheck/internal/diag"
)

func TestMarkAndWasApplied(t *testing.T) {
	r := New()
	id := diag.NewRuleID(diag.CategoryLayout, "TrailingWhitespace")

	if r.WasApplied(id) {
		t.Fatal("expected not-applied before MarkApplied")
	}
	r.MarkApplied(id)
	if !r.WasApplied(id) {
		t.Fatal("expected applied after MarkApplied")
	}
	if r.AppliedCount() != 1 {
		t.Fatalf("AppliedCount() = %d, want 1", r.AppliedCount())
	}
}

func TestConflictsWithAppliedDirectDeclaration(t *testing.T) {
	a := diag.NewRuleID(diag.CategoryLayout, "conflictA")
	b := diag.NewRuleID(diag.CategoryLayout, "conflictB")
	diag.DeclareConflict(a, b)

	r := New()
	r.MarkApplied(b)
	if !r.ConflictsWithApplied(a) {
		t.Fatal("expected a to conflict with applied b")
	}
}

func TestConflictsWithAppliedReverseDeclaration(t *testing.T) {
	a := diag.NewRuleID(diag.CategoryLayout, "conflictC")
	b := diag.NewRuleID(diag.CategoryLayout, "conflictD")
	diag.DeclareConflict(b, a)

	r := New()
	r.MarkApplied(b)
	if !r.ConflictsWithApplied(a) {
		t.Fatal("expected a to conflict with applied b even though only b->a was declared")
	}
}

func TestConflictsAreNotTransitive(t *testing.T) {
	a := diag.NewRuleID(diag.CategoryLayout, "transA")
	b := diag.NewRuleID(diag.CategoryLayout, "transB")
	c := diag.NewRuleID(diag.CategoryLayout, "transC")
	diag.DeclareConflict(a, b)
	diag.DeclareConflict(b, c)

	r := New()
	r.MarkApplied(c)
	if r.ConflictsWithApplied(a) {
		t.Fatal("a-b and b-c conflicts must not imply an a-c conflict")
	}
}

func TestClear(t *testing.T) {
	r := New()
	id := diag.NewRuleID(diag.CategoryLint, "Debugger")
	r.MarkApplied(id)
	r.Clear()
	if r.WasApplied(id) {
		t.Fatal("expected Clear to reset applied state")
	}
	if r.AppliedCount() != 0 {
		t.Fatalf("AppliedCount() after Clear = %d, want 0", r.AppliedCount())
	}
}

func TestNoConflictWithoutDeclaration(t *testing.T) {
	a := diag.NewRuleID(diag.CategoryLayout, "isolatedA")
	b := diag.NewRuleID(diag.CategoryLayout, "isolatedB")

	r := New()
	r.MarkApplied(b)
	if r.ConflictsWithApplied(a) {
		t.Fatal("expected no conflict when none was declared")
	}
}
