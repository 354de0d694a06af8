package layout

import (
	"fmt"
	"strings"

	"github.com/oxhq/rubocheck/internal/checker"
	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/registry"
	"github.com/oxhq/rubocheck/internal/semantic"
	"github.com/oxhq/rubocheck/internal/util"
)

// defaultIndentationWidth mirrors config's own default Width of 2, used
// only when a rule runs with no Config bound (nil RuleFilter).
const defaultIndentationWidth = 2

func init() {
	kinds := []semantic.NodeKind{
		checker.KindMethod,
		checker.KindSingletonMethod,
		checker.KindClass,
		checker.KindSingletonClass,
		checker.KindModule,
		checker.KindBlock,
		checker.KindDoBlock,
	}
	for _, kind := range kinds {
		if err := registry.RegisterNode(config.RuleIndentationWidth, kind, checkIndentationWidth); err != nil {
			panic(err)
		}
	}
}

// checkIndentationWidth flags a body whose first non-blank line is not
// indented exactly Width spaces deeper than its enclosing def/class/module/
// block line. Grounded on original_source's precop_layout
// indentation_width.rs check_body_indentation, which walks a Prism AST and
// compares a body node's own line indentation against its parent's. This
// engine's node Context carries only a flat byte range and text, no child
// nodes, so the body line is instead located by scanning forward from the
// declaration line for the first non-blank line that still falls before the
// node's own closing line — equivalent for every shape check_body_indentation
// covers (def/class/module bodies, multi-line blocks) since in each of those
// a real body, if present, always starts strictly between those two lines.
func checkIndentationWidth(ctx *registry.Context) []diag.Diagnostic {
	width := registry.SettingInt(ctx.Setting, "Width", defaultIndentationWidth)
	source := ctx.Source

	declLineStart := lineStartAt(source, ctx.Start)
	declIndent := indentOf(source, declLineStart)
	declLineEnd := lineEnd(source, declLineStart)

	closingLineStart := lineStartAt(source, lastByteOf(source, ctx.End))

	bodyLineStart, ok := firstNonBlankLineAfter(source, declLineEnd, closingLineStart)
	if !ok {
		return nil
	}

	bodyIndent := indentOf(source, bodyLineStart)
	expected := declIndent + width
	if bodyIndent == expected {
		return nil
	}

	start, end := bodyLineStart, bodyLineStart+bodyIndent
	if ctx.Ignored.IsPartOfIgnored(start, end) {
		return nil
	}

	// Unsafe, not Safe: re-indenting a line can shift a heredoc's content or
	// a line continuation in ways this node-local check can't see, so the
	// rewrite loop only applies it when the caller opts into Unsafe fixes.
	fix := diag.UnsafeFix(diag.Replacement(start, end, strings.Repeat(" ", expected)))
	message := fmt.Sprintf("Use %d spaces for indentation (found %d).", width, bodyIndent-declIndent)
	return []diag.Diagnostic{diag.New(
		config.RuleIndentationWidth,
		message,
		diag.SeverityConvention,
		start, end,
		&fix,
	)}
}

func lineStartAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	for offset > 0 && source[offset-1] != '\n' {
		offset--
	}
	return offset
}

func lineEnd(source []byte, lineStartOffset int) int {
	for i := lineStartOffset; i < len(source); i++ {
		if source[i] == '\n' {
			return i + 1
		}
	}
	return len(source)
}

// indentOf counts a line's leading whitespace (spaces and tabs alike, via
// util.TakeIndent), matching lineindex.Index.Indentation's definition of
// indentation rather than counting spaces only.
func indentOf(source []byte, lineStartOffset int) int {
	return len(util.TakeIndent(string(source[lineStartOffset:lineEnd(source, lineStartOffset)])))
}

func lastByteOf(source []byte, end int) int {
	if end <= 0 {
		return 0
	}
	if end > len(source) {
		return len(source) - 1
	}
	return end - 1
}

func isBlankLineBytes(source []byte, start, end int) bool {
	for i := start; i < end; i++ {
		switch source[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// firstNonBlankLineAfter scans lines starting at from (which must itself be
// a line start) for the first whose content isn't all whitespace, stopping
// once it would reach or pass limit. Returns ok=false when no such line
// exists before limit, meaning the node has no real body to check.
func firstNonBlankLineAfter(source []byte, from, limit int) (int, bool) {
	cur := from
	for cur < limit && cur < len(source) {
		end := lineEnd(source, cur)
		contentEnd := end
		if contentEnd > cur && source[contentEnd-1] == '\n' {
			contentEnd--
		}
		if !isBlankLineBytes(source, cur, contentEnd) {
			return cur, true
		}
		cur = end
	}
	return 0, false
}
