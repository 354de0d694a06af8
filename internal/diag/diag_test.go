package diag

import "testing"

func TestRuleIDString(t *testing.T) {
	id := NewRuleID(CategoryLayout, "TrailingWhitespace")
	if got := id.String(); got != "Layout/TrailingWhitespace" {
		t.Fatalf("String() = %q, want Layout/TrailingWhitespace", got)
	}
}

func TestConflictsAreDirectional(t *testing.T) {
	a := NewRuleID(CategoryLayout, "testA")
	b := NewRuleID(CategoryLayout, "testB")

	if a.HasConflictWith(b) {
		t.Fatal("expected no conflict before declaration")
	}

	DeclareConflict(a, b)
	if !a.HasConflictWith(b) {
		t.Fatal("expected a to conflict with b after declaration")
	}
	if b.HasConflictWith(a) {
		t.Fatal("conflict declaration should not be implicitly symmetric at the RuleID level")
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityRefactor < SeverityConvention &&
		SeverityConvention < SeverityWarning &&
		SeverityWarning < SeverityError &&
		SeverityError < SeverityFatal) {
		t.Fatal("severity ordering invariant violated")
	}
}

func TestParseSeverityAliases(t *testing.T) {
	cases := map[string]Severity{
		"warning": SeverityWarning,
		"W":       SeverityWarning,
		"w":       SeverityWarning,
		"fatal":   SeverityFatal,
		"F":       SeverityFatal,
	}
	for in, want := range cases {
		got, ok := ParseSeverity(in)
		if !ok || got != want {
			t.Errorf("ParseSeverity(%q) = %v,%v want %v,true", in, got, ok, want)
		}
	}
	if _, ok := ParseSeverity("bogus"); ok {
		t.Error("expected ParseSeverity to reject unknown severity names")
	}
}

func TestShouldApplyFix(t *testing.T) {
	safe := SafeFix()
	unsafeFix := UnsafeFix()
	display := DisplayOnlyFix()

	if !ShouldApply(safe, false) || !ShouldApply(safe, true) {
		t.Error("safe fixes should always apply")
	}
	if ShouldApply(unsafeFix, false) || !ShouldApply(unsafeFix, true) {
		t.Error("unsafe fixes should apply only when opted in")
	}
	if ShouldApply(display, false) || ShouldApply(display, true) {
		t.Error("display-only fixes should never apply")
	}
}

func TestDiagnosticCorrectableAndLength(t *testing.T) {
	d := New(NewRuleID(CategoryLint, "Debugger"), "msg", SeverityWarning, 3, 10, nil)
	if d.Correctable() {
		t.Error("diagnostic without a fix should not be correctable")
	}
	if d.Length() != 7 {
		t.Errorf("Length() = %d, want 7", d.Length())
	}

	fix := SafeFix(Deletion(3, 10))
	d2 := New(NewRuleID(CategoryLayout, "TrailingWhitespace"), "msg", SeverityConvention, 3, 10, &fix)
	if !d2.Correctable() {
		t.Error("diagnostic with a fix should be correctable")
	}
}
