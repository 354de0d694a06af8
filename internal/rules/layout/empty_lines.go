package layout

import (
	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/registry"
)

func init() {
	if err := registry.RegisterLine(config.RuleEmptyLines, checkEmptyLines); err != nil {
		panic(err)
	}
}

// checkEmptyLines flags a run of two or more consecutive blank lines,
// keeping the first and deleting the rest. Grounded on original_source's
// rules/layout/empty_lines.rs collect_edit_ranges, which accumulates a
// run over a whole-source line split and flushes it on the next non-blank
// line; here the run is tracked in this rule's per-check State instead,
// since the engine dispatches one line at a time rather than handing a rule
// the whole source at once. A run still open at end of file is never
// flushed, matching the original's note that it defers to
// Layout/TrailingEmptyLines rather than double-reporting trailing blanks.
func checkEmptyLines(ctx *registry.LineContext) []diag.Diagnostic {
	isEmpty := isBlankLine(ctx.LineText)
	count, _ := ctx.State["emptyRun"].(int)

	if isEmpty {
		count++
		if count == 2 {
			ctx.State["runStart"] = ctx.LineStart
		}
		ctx.State["emptyRun"] = count
		return nil
	}

	ctx.State["emptyRun"] = 0
	if count < 2 {
		return nil
	}

	runStart, _ := ctx.State["runStart"].(int)
	end := ctx.LineStart
	if ctx.Ignored.IsPartOfIgnored(runStart, end) {
		return nil
	}

	fix := diag.SafeFix(diag.Deletion(runStart, end))
	return []diag.Diagnostic{diag.New(
		config.RuleEmptyLines,
		"Extra blank line detected.",
		diag.SeverityConvention,
		runStart, end,
		&fix,
	)}
}

func isBlankLine(line []byte) bool {
	for _, b := range line {
		switch b {
		case ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}
