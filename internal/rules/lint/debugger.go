// Package lint implements the Lint/* rules: checks concerned with runtime
// correctness and debugging hygiene rather than layout.
package lint

import (
	"fmt"

	"github.com/oxhq/rubocheck/internal/checker"
	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/registry"
	"github.com/oxhq/rubocheck/internal/semantic"
)

// standaloneDebuggers are bare, receiver-less debugger entry points.
var standaloneDebuggers = map[string]bool{
	"debugger":      true,
	"byebug":        true,
	"remote_byebug": true,
}

// debuggerHeads are receiver.method debugger entry points, keyed by their
// exact "receiver.method" text.
var debuggerHeads = map[string]bool{
	"binding.pry":        true,
	"binding.remote_pry": true,
	"binding.pry_remote": true,
	"binding.irb":        true,
	"binding.console":    true,
	"Pry.rescue":         true,
}

func init() {
	kinds := []semantic.NodeKind{checker.KindCall, checker.KindIdentifier}
	for _, kind := range kinds {
		if err := registry.RegisterNode(config.RuleDebugger, kind, checkDebugger); err != nil {
			panic(err)
		}
	}
}

// checkDebugger flags debugger entry points left in source: bare
// debugger/byebug/remote_byebug calls and receiver.method combinations such
// as binding.pry or Pry.rescue. No fix is offered — removing a debugger
// statement automatically can change program behavior.
//
// Grounded on original_source's reukocyte_checker rules/lint/debugger.rs
// (STANDALONE_DEBUGGERS, DEBUGGER_RECEIVERS, checked against CallNode's
// receiver()/name()). This engine's node Context exposes only the node's own
// flat text, not a parsed receiver/method pair, so the match instead reads
// the call's leading "head" — everything before the first '(', '{', or
// whitespace — which for every shape the original matches is exactly the
// receiver.method (or bare method) string. A debugger call with parens or a
// block is parsed as a Call node; one with neither is ambiguous in the
// grammar and classified as a bare Identifier instead, so both kinds are
// registered. To avoid reporting the same statement twice — a Call node's
// method-name child is itself an Identifier node — an Identifier whose
// immediate parent is a Call is skipped; the enclosing Call already covers
// it with the wider range.
func checkDebugger(ctx *registry.Context) []diag.Diagnostic {
	if ctx.NodeKind == checker.KindIdentifier {
		if parent, ok := ctx.Ancestors.Parent(); ok && parent == checker.KindCall {
			return nil
		}
	}

	head := callHead(ctx.NodeText)
	if !standaloneDebuggers[head] && !debuggerHeads[head] {
		return nil
	}

	if ctx.Ignored.IsPartOfIgnored(ctx.Start, ctx.End) {
		return nil
	}

	return []diag.Diagnostic{diag.New(
		config.RuleDebugger,
		fmt.Sprintf("Debugger statement `%s` detected.", head),
		diag.SeverityWarning,
		ctx.Start, ctx.End,
		nil,
	)}
}

// callHead returns the callee text of a call/identifier node: everything up
// to the first '(', '{', or whitespace, which is the whole node text when
// there is no argument list or block.
func callHead(text string) string {
	for i, r := range text {
		switch r {
		case '(', '{', ' ', '\t', '\n', '\r':
			return text[:i]
		}
	}
	return text
}
