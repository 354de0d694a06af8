package diag

// Applicability classifies how safe a Fix is to apply automatically.
type Applicability int

const (
	// Safe fixes are always applied when a rewrite is requested.
	Safe Applicability = iota
	// Unsafe fixes are applied only when the caller opts in.
	Unsafe
	// DisplayOnly fixes are never applied; they exist purely to show intent.
	DisplayOnly
)

// Edit is a single text edit: replace [Start, End) with Content.
// Start == End denotes a pure insertion; empty Content denotes a deletion.
type Edit struct {
	Start   int
	End     int
	Content string
}

// Replacement builds an edit that replaces [start, end) with content.
func Replacement(start, end int, content string) Edit {
	return Edit{Start: start, End: end, Content: content}
}

// Deletion builds an edit that deletes [start, end).
func Deletion(start, end int) Edit {
	return Edit{Start: start, End: end, Content: ""}
}

// Insertion builds an edit that inserts content at position.
func Insertion(position int, content string) Edit {
	return Edit{Start: position, End: position, Content: content}
}

// Fix is a set of edits plus the applicability classification governing
// whether the rewrite loop is allowed to apply them.
type Fix struct {
	Applicability Applicability
	Edits         []Edit
}

// SafeFix builds a Fix whose edits are always eligible for application.
func SafeFix(edits ...Edit) Fix {
	return Fix{Applicability: Safe, Edits: edits}
}

// UnsafeFix builds a Fix whose edits require the caller to opt in.
func UnsafeFix(edits ...Edit) Fix {
	return Fix{Applicability: Unsafe, Edits: edits}
}

// DisplayOnlyFix builds a Fix that is never applied automatically.
func DisplayOnlyFix(edits ...Edit) Fix {
	return Fix{Applicability: DisplayOnly, Edits: edits}
}

// ShouldApply reports whether a fix of this applicability should be applied
// given the caller's unsafe-fixes policy.
func ShouldApply(f Fix, unsafeFixes bool) bool {
	switch f.Applicability {
	case Safe:
		return true
	case Unsafe:
		return unsafeFixes
	case DisplayOnly:
		return false
	default:
		return false
	}
}

// Diagnostic is one finding: a rule, a message, a severity, a byte range, and
// an optional fix. Rules only ever populate byte offsets; line/column are
// resolved lazily, once, in a single batch pass (see lineindex.BatchResolve).
type Diagnostic struct {
	RuleID   RuleID
	Message  string
	Severity Severity
	Start    int
	End      int

	// LineStart, LineEnd, ColumnStart, ColumnEnd are populated by batch
	// resolution; zero until then.
	LineStart   int
	LineEnd     int
	ColumnStart int
	ColumnEnd   int

	Fix *Fix
}

// New builds a Diagnostic with byte offsets only; line/column fields are
// resolved later via batch resolution.
func New(ruleID RuleID, message string, severity Severity, start, end int, fix *Fix) Diagnostic {
	return Diagnostic{
		RuleID:   ruleID,
		Message:  message,
		Severity: severity,
		Start:    start,
		End:      end,
		Fix:      fix,
	}
}

// Correctable reports whether the diagnostic carries a fix at all (policy
// about whether that fix's applicability is *allowed* is a caller concern,
// see ShouldApply).
func (d Diagnostic) Correctable() bool {
	return d.Fix != nil
}

// Length returns the byte length of the diagnostic's range.
func (d Diagnostic) Length() int {
	if d.End < d.Start {
		return 0
	}
	return d.End - d.Start
}
