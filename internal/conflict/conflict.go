// Package conflict tracks, within a single rewrite iteration, which rules'
// fixes have already been applied, so that a rule declaring an
// autocorrect-incompatibility with an already-applied rule has its fix
// deferred to a later iteration instead of risking a clobbered edit.
//
// Grounded on original_source/crates/reukocyte_checker/src/conflict.rs,
// ported method-for-method. Incompatibility is directional-but-checked-both-
// ways, not transitive: only directly-declared pairs block each other, per
// diag.RuleID.ConflictsWith/HasConflictWith.
package conflict

import "github.com/oxhq/rubocheck/internal/diag"

// Registry records which rules have had a fix applied during the current
// rewrite iteration.
type Registry struct {
	applied map[diag.RuleID]struct{}
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{applied: make(map[diag.RuleID]struct{})}
}

// MarkApplied records that ruleID's fix was applied this iteration.
func (r *Registry) MarkApplied(ruleID diag.RuleID) {
	r.applied[ruleID] = struct{}{}
}

// WasApplied reports whether ruleID's fix was applied this iteration.
func (r *Registry) WasApplied(ruleID diag.RuleID) bool {
	_, ok := r.applied[ruleID]
	return ok
}

// ConflictsWithApplied reports whether ruleID's fix may not be applied this
// iteration because it conflicts with a rule whose fix already was applied.
// The check is bidirectional: ruleID's own declared conflicts are checked
// against the applied set, and each applied rule's declared conflicts are
// checked against ruleID, since either side may have declared the pair.
func (r *Registry) ConflictsWithApplied(ruleID diag.RuleID) bool {
	for _, other := range ruleID.ConflictsWith() {
		if r.WasApplied(other) {
			return true
		}
	}
	for applied := range r.applied {
		if applied.HasConflictWith(ruleID) {
			return true
		}
	}
	return false
}

// Clear resets the registry, as happens at the start of each new rewrite
// iteration.
func (r *Registry) Clear() {
	r.applied = make(map[diag.RuleID]struct{})
}

// AppliedCount returns how many rules have had a fix applied this iteration.
func (r *Registry) AppliedCount() int {
	return len(r.applied)
}
