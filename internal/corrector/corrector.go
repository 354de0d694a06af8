// Package corrector merges a set of candidate edits within one rewrite
// iteration, rejecting edits that clobber each other, and applies the
// accepted edits to produce rewritten source.
//
// Grounded on original_source/crates/reukocyte_checker/src/corrector.rs,
// ported method-for-method. One deliberate deviation: byte-identical
// duplicate edits are recorded once in the accepted list (not twice), so a
// single forward sweep in Apply never emits the replacement content twice,
// while Merge still reports success both times it is offered the same edit —
// preserving "both calls accepted, idempotent" as observed by callers.
package corrector

import (
	"fmt"
	"sort"

	"github.com/oxhq/rubocheck/internal/diag"
)

// ConflictKind classifies why two edits could not be merged.
type ConflictKind int

const (
	// DifferentReplacements: two edits cover the identical range but
	// disagree on replacement content.
	DifferentReplacements ConflictKind = iota
	// SwallowedInsertion: a pure insertion point falls strictly inside an
	// already-accepted edit's range.
	SwallowedInsertion
	// Overlapping: the edits' ranges partially overlap without being
	// identical or nested insertions.
	Overlapping
)

func (k ConflictKind) String() string {
	switch k {
	case DifferentReplacements:
		return "different replacements for the same range"
	case SwallowedInsertion:
		return "insertion point swallowed by an overlapping edit"
	case Overlapping:
		return "overlapping edit ranges"
	default:
		return "unknown conflict"
	}
}

// ClobberError reports that an edit could not be merged because it
// conflicts with one already accepted this iteration.
type ClobberError struct {
	Kind       ConflictKind
	Incoming   diag.Edit
	Accepted   diag.Edit
}

func (e *ClobberError) Error() string {
	return fmt.Sprintf("%s: incoming %+v conflicts with accepted %+v", e.Kind, e.Incoming, e.Accepted)
}

// Corrector accumulates non-conflicting edits for a single rewrite iteration.
type Corrector struct {
	accepted []diag.Edit
}

// New returns an empty Corrector.
func New() *Corrector {
	return &Corrector{}
}

func rangesOverlap(a, b diag.Edit) bool {
	return a.Start < b.End && b.Start < a.End
}

func sameEdit(a, b diag.Edit) bool {
	return a.Start == b.Start && a.End == b.End && a.Content == b.Content
}

// Merge offers an edit for acceptance. It returns nil if the edit was
// accepted (including as a no-op duplicate of an already-accepted edit), or
// a *ClobberError describing why it was rejected.
func (c *Corrector) Merge(e diag.Edit) error {
	if err := c.checkConflict(e); err != nil {
		if err == errIdempotent {
			return nil
		}
		return err
	}
	c.accepted = append(c.accepted, e)
	return nil
}

var errIdempotent = fmt.Errorf("idempotent")

// checkConflict reports whether e conflicts with an already-accepted edit,
// matching original_source's corrector.rs check_conflict: the identical-
// range test always runs first, for every edit (insertion or not), before
// the insertion-specific swallowing check gets a chance to continue past it.
// Getting this order backwards lets two same-point insertions with
// different content both slip in as accepted, and Apply then emits both.
func (c *Corrector) checkConflict(e diag.Edit) error {
	for _, a := range c.accepted {
		if sameEdit(a, e) {
			return errIdempotent
		}

		if a.Start == e.Start && a.End == e.End {
			return &ClobberError{Kind: DifferentReplacements, Incoming: e, Accepted: a}
		}

		if e.Start == e.End {
			// Incoming is a pure insertion distinct from a's range: reject
			// only if it falls strictly inside an already-accepted
			// non-empty range.
			if a.Start < e.Start && e.Start < a.End {
				return &ClobberError{Kind: SwallowedInsertion, Incoming: e, Accepted: a}
			}
			continue
		}

		if rangesOverlap(a, e) {
			return &ClobberError{Kind: Overlapping, Incoming: e, Accepted: a}
		}
	}
	return nil
}

// MergeFix validates every edit of fix against the currently accepted set
// before committing any of them, so a multi-edit fix is all-or-nothing: one
// clobbering edit can no longer leak its earlier siblings into the accepted
// set. Mirrors original_source's Corrector::merge(fix), which walks
// fix.edits through check_conflict twice (validate, then extend) rather than
// the per-edit Merge loop callers used to run directly.
func (c *Corrector) MergeFix(fix diag.Fix) error {
	for _, e := range fix.Edits {
		if err := c.checkConflict(e); err != nil && err != errIdempotent {
			return err
		}
	}
	for _, e := range fix.Edits {
		if err := c.checkConflict(e); err == nil {
			c.accepted = append(c.accepted, e)
		}
	}
	return nil
}

// Len reports how many distinct edits have been accepted.
func (c *Corrector) Len() int {
	return len(c.accepted)
}

// Empty reports whether no edits have been accepted.
func (c *Corrector) Empty() bool {
	return len(c.accepted) == 0
}

// Apply produces the rewritten source by sweeping the accepted edits, sorted
// by start offset, over the original source exactly once.
func (c *Corrector) Apply(source []byte) []byte {
	if len(c.accepted) == 0 {
		return source
	}

	edits := make([]diag.Edit, len(c.accepted))
	copy(edits, c.accepted)
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End < edits[j].End
	})

	out := make([]byte, 0, len(source))
	cursor := 0
	for _, e := range edits {
		if e.Start > cursor {
			out = append(out, source[cursor:e.Start]...)
		}
		out = append(out, e.Content...)
		cursor = e.End
	}
	if cursor < len(source) {
		out = append(out, source[cursor:]...)
	}
	return out
}
