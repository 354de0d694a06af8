package layout

import (
	"fmt"

	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/registry"
)

func init() {
	if err := registry.RegisterFile(config.RuleLeadingEmptyLines, checkLeadingEmptyLines); err != nil {
		panic(err)
	}
}

// checkLeadingEmptyLines flags blank lines at the very start of a file.
// Grounded on original_source's rules/layout/leading_empty_lines.rs analyze,
// ported near line-for-line.
func checkLeadingEmptyLines(ctx *registry.FileContext) []diag.Diagnostic {
	source := ctx.Source
	if len(source) == 0 {
		return nil
	}

	firstContent := -1
	for i, b := range source {
		if !isLeadingWhitespace(b) {
			firstContent = i
			break
		}
	}
	if firstContent <= 0 {
		return nil
	}

	leadingNewlines := 0
	lastNewline := -1
	for i := 0; i < firstContent; i++ {
		if source[i] == '\n' {
			leadingNewlines++
			lastNewline = i
		}
	}
	if leadingNewlines == 0 {
		return nil
	}

	end := lastNewline + 1
	if ctx.Ignored.IsPartOfIgnored(0, end) {
		return nil
	}

	message := "Unnecessary blank line at the beginning of the source."
	if leadingNewlines > 1 {
		message = fmt.Sprintf("Unnecessary blank lines at the beginning of the source (%d lines).", leadingNewlines)
	}

	fix := diag.SafeFix(diag.Deletion(0, end))
	return []diag.Diagnostic{diag.New(
		config.RuleLeadingEmptyLines,
		message,
		diag.SeverityConvention,
		0, end,
		&fix,
	)}
}

func isLeadingWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
