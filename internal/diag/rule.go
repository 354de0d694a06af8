// Package diag holds the checking engine's data model: rule identity,
// severities, diagnostics, and the edits a rule's fix is made of.
//
// Grounded on original_source/crates/reukocyte_checker/src/{rule,diagnostic}.rs,
// ported to Go idiom (a comparable Category+Name struct in place of Rust's enum).
package diag

import "fmt"

// Category groups rules by concern, mirroring RuboCop's cop departments.
type Category int

const (
	CategoryLayout Category = iota
	CategoryLint
)

func (c Category) String() string {
	switch c {
	case CategoryLayout:
		return "Layout"
	case CategoryLint:
		return "Lint"
	default:
		return "Unknown"
	}
}

// RuleID identifies a single rule. It is comparable and usable as a map key,
// matching the original's requirement that RuleId support ordering and hashing.
type RuleID struct {
	Category Category
	Name     string
}

// NewRuleID builds a RuleID for the given category and name.
func NewRuleID(category Category, name string) RuleID {
	return RuleID{Category: category, Name: name}
}

// String renders "Category/Name", e.g. "Layout/TrailingWhitespace".
func (r RuleID) String() string {
	return fmt.Sprintf("%s/%s", r.Category, r.Name)
}

// conflicts holds the static, build-time-declared autocorrect-incompatibility
// table: rule -> rules its fixes may not be applied alongside within one
// rewrite iteration. Populated through DeclareConflict, mirroring the
// original's const conflicts_with() match; none of the rule packages declares
// a conflict, so the table is empty unless a caller adds entries.
var conflicts = map[RuleID][]RuleID{}

// DeclareConflict registers a (bidirectionally enforced, but here recorded
// one-directionally — conflict.Registry checks both directions; ConflictsWith
// returns only a's side) autocorrect incompatibility between two rules.
func DeclareConflict(a, b RuleID) {
	conflicts[a] = append(conflicts[a], b)
}

// ConflictsWith reports the rules that `id`'s autocorrection is declared
// incompatible with.
func (r RuleID) ConflictsWith() []RuleID {
	return conflicts[r]
}

// HasConflictWith reports whether r declares other as conflicting.
func (r RuleID) HasConflictWith(other RuleID) bool {
	for _, c := range conflicts[r] {
		if c == other {
			return true
		}
	}
	return false
}
