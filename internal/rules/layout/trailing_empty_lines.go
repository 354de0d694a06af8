package layout

import (
	"fmt"
	"strings"

	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/registry"
)

func init() {
	if err := registry.RegisterFile(config.RuleTrailingEmptyLines, checkTrailingEmptyLines); err != nil {
		panic(err)
	}
}

// checkTrailingEmptyLines enforces a single final newline, or under the
// final_blank_line style one trailing blank line followed by the final
// newline. Grounded on original_source's reukocyte_checker
// rules/layout/trailing_empty_lines.rs analyze/find_trailing_whitespace_start,
// ported near line-for-line.
func checkTrailingEmptyLines(ctx *registry.FileContext) []diag.Diagnostic {
	source := ctx.Source
	if len(source) == 0 {
		return nil
	}

	style := registry.SettingString(ctx.Setting, "EnforcedStyle", string(config.StyleFinalNewline))
	wantedNewlines := 1
	if style == string(config.StyleFinalBlankLine) {
		wantedNewlines = 2
	}

	trailingNewlines := 0
	for i := len(source) - 1; i >= 0 && source[i] == '\n'; i-- {
		trailingNewlines++
	}

	if trailingNewlines == 0 {
		fix := diag.SafeFix(diag.Insertion(len(source), strings.Repeat("\n", wantedNewlines)))
		return []diag.Diagnostic{diag.New(
			config.RuleTrailingEmptyLines,
			"Final newline missing.",
			diag.SeverityConvention,
			len(source), len(source),
			&fix,
		)}
	}

	blankLines := trailingNewlines - 1
	wantedBlankLines := wantedNewlines - 1
	if blankLines == wantedBlankLines {
		return nil
	}

	trailingStart := findTrailingWhitespaceStart(source)
	if ctx.Ignored.IsPartOfIgnored(trailingStart, len(source)) {
		return nil
	}

	message := trailingEmptyLinesMessage(blankLines, wantedBlankLines)
	// When trailingStart sits just past the last content line's own newline,
	// that newline stays and only the blank lines after it are rewritten.
	replacement := strings.Repeat("\n", wantedNewlines)
	if trailingStart > 0 && source[trailingStart-1] == '\n' {
		replacement = strings.Repeat("\n", wantedBlankLines)
	}
	fix := diag.SafeFix(diag.Replacement(trailingStart, len(source), replacement))
	return []diag.Diagnostic{diag.New(
		config.RuleTrailingEmptyLines,
		message,
		diag.SeverityConvention,
		trailingStart, len(source),
		&fix,
	)}
}

func trailingEmptyLinesMessage(blankLines, wanted int) string {
	switch {
	case wanted == 0 && blankLines == 1:
		return "1 trailing blank line detected."
	case wanted == 0:
		return fmt.Sprintf("%d trailing blank lines detected.", blankLines)
	case blankLines == 0:
		return "Trailing blank line missing."
	default:
		return fmt.Sprintf("%d trailing blank lines instead of %d detected.", blankLines, wanted)
	}
}

// findTrailingWhitespaceStart walks back from the end of source over
// newlines, spaces, tabs, and carriage returns, then steps one position
// forward past the final content line's own newline so the returned offset
// marks the start of the trailing blank-line run, not the middle of it.
func findTrailingWhitespaceStart(source []byte) int {
	pos := len(source)
	for pos > 0 {
		switch source[pos-1] {
		case '\n', ' ', '\t', '\r':
			pos--
			continue
		}
		break
	}
	if pos < len(source) && source[pos] == '\n' {
		pos++
	}
	return pos
}
