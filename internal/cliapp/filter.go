package cliapp

import (
	"strings"

	"github.com/oxhq/rubocheck/internal/checker"
	"github.com/oxhq/rubocheck/internal/diag"
)

// onlyExceptFilter decorates a checker.RuleFilter with --only/--except
// rule-name restrictions on top of whatever the loaded Config already
// enables, matching RuboCop's own layering (a Config can enable a rule that
// --only/--except then narrows further for this one invocation).
type onlyExceptFilter struct {
	inner  checker.RuleFilter
	only   map[string]bool
	except map[string]bool
}

func newOnlyExceptFilter(inner checker.RuleFilter, only, except []string) checker.RuleFilter {
	if len(only) == 0 && len(except) == 0 {
		return inner
	}
	f := &onlyExceptFilter{inner: inner}
	if len(only) > 0 {
		f.only = toSet(only)
	}
	if len(except) > 0 {
		f.except = toSet(except)
	}
	return f
}

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[strings.ToLower(n)] = true
	}
	return m
}

// matches reports whether set names ruleID, either by its full "Category/Name"
// form or by its bare Name.
func matches(set map[string]bool, ruleID diag.RuleID) bool {
	if set == nil {
		return false
	}
	return set[strings.ToLower(ruleID.String())] || set[strings.ToLower(ruleID.Name)]
}

func (f *onlyExceptFilter) Enabled(ruleID diag.RuleID, path string) bool {
	if f.only != nil && !matches(f.only, ruleID) {
		return false
	}
	if f.except != nil && matches(f.except, ruleID) {
		return false
	}
	if f.inner == nil {
		return true
	}
	return f.inner.Enabled(ruleID, path)
}

func (f *onlyExceptFilter) Severity(ruleID diag.RuleID, def diag.Severity) diag.Severity {
	if f.inner == nil {
		return def
	}
	return f.inner.Severity(ruleID, def)
}

func (f *onlyExceptFilter) Setting(ruleID diag.RuleID, key string) (any, bool) {
	if f.inner == nil {
		return nil, false
	}
	return f.inner.Setting(ruleID, key)
}

// layoutOnlyFix strips the Fix from any diagnostic whose rule is outside the
// Layout category, so the rewrite loop (which only ever looks at a
// diagnostic's own Fix field) never applies a non-Layout correction — the
// -x/--layout-only policy named in SPEC_FULL.md §6.
func layoutOnlyFix(diags []diag.Diagnostic) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(diags))
	for i, d := range diags {
		if d.Fix != nil && d.RuleID.Category != diag.CategoryLayout {
			d.Fix = nil
		}
		out[i] = d
	}
	return out
}
