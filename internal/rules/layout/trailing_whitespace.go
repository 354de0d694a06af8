// Package layout implements the Layout/* rules: whitespace and blank-line
// hygiene checks that operate on raw source text or flat AST node ranges
// rather than deep syntax, mirroring the shape of precop_layout and
// reukocyte_checker's rules/layout package.
package layout

import (
	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/registry"
)

func init() {
	if err := registry.RegisterLine(config.RuleTrailingWhitespace, checkTrailingWhitespace); err != nil {
		panic(err)
	}
}

// checkTrailingWhitespace flags spaces, tabs, or stray carriage returns at
// the end of a line. Grounded on original_source's precop_layout
// trailing_whitespace.rs (Cop::check/autocorrect: trim_end per line),
// adapted from a whole-source scan to this engine's per-line callback.
func checkTrailingWhitespace(ctx *registry.LineContext) []diag.Diagnostic {
	line := ctx.LineText
	trimmed := trimTrailingWhitespace(line)
	if len(trimmed) == len(line) {
		return nil
	}

	start := ctx.LineStart + len(trimmed)
	end := ctx.LineStart + len(line)
	if ctx.Ignored.IsPartOfIgnored(start, end) {
		return nil
	}

	fix := diag.SafeFix(diag.Deletion(start, end))
	return []diag.Diagnostic{diag.New(
		config.RuleTrailingWhitespace,
		"Trailing whitespace detected.",
		diag.SeverityConvention,
		start, end,
		&fix,
	)}
}

func trimTrailingWhitespace(line []byte) []byte {
	end := len(line)
	for end > 0 {
		switch line[end-1] {
		case ' ', '\t', '\r':
			end--
			continue
		}
		break
	}
	return line[:end]
}
