// Package checker runs one file through the full check lifecycle: parse,
// build a line index, walk the AST dispatching registered rule callbacks by
// node kind, run line- and file-scoped callbacks, then batch-resolve every
// diagnostic's byte range to line/column.
//
// Grounded on the teacher's tree-sitter parsing idiom (internal/matcher/
// tree.go's parser.SetLanguage/ParseCtx, and internal/lang/python/provider.go's
// node.Type()/node.ChildByFieldName traversal), repointed from its DSL-query
// matching to direct node-kind dispatch, and on original_source's ancestor-
// stack/program-root-exception traversal design (see internal/semantic).
package checker

import (
	"context"
	"fmt"
	"sort"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	rubysitter "github.com/smacker/go-tree-sitter/ruby"

	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/lineindex"
	"github.com/oxhq/rubocheck/internal/registry"
	"github.com/oxhq/rubocheck/internal/semantic"
)

// ParseErrorSeverity is the severity used for the single synthetic
// diagnostic a checker emits when a file fails to parse or its syntax tree
// contains an error: Fatal, the highest of the rule severities.
const ParseErrorSeverity = diag.SeverityFatal

// RuleFilter lets a Config-backed type gate and adjust rule execution without
// the checker package importing internal/config (config instead implements
// this interface structurally, following the teacher's accept-interfaces
// idiom). A nil RuleFilter means "every registered rule runs, unmodified".
type RuleFilter interface {
	// Enabled reports whether ruleID should run at all against path
	// (folds together the rule's Enabled flag and its Include/Exclude
	// globs, per §4.5's should_run).
	Enabled(ruleID diag.RuleID, path string) bool
	// Severity returns the severity to assign a diagnostic ruleID emits,
	// given the rule's own default severity def.
	Severity(ruleID diag.RuleID, def diag.Severity) diag.Severity
	// Setting looks up a rule-specific config value (e.g. IndentationWidth's
	// "Width") by PascalCase key.
	Setting(ruleID diag.RuleID, key string) (any, bool)
}

// Profiler receives one invocation's elapsed time for a rule, keyed by its
// RuleID. A nil Profiler means no profiling (the default, zero-overhead
// path); the CLI wrapper binds one when RUBOCHECK_PROFILE=1 or --display-time
// is given (see SPEC_FULL.md §9, internal/profile).
type Profiler interface {
	Record(ruleID diag.RuleID, elapsed time.Duration)
}

// Checker runs registered rules against one file's source.
type Checker struct {
	reg      *registry.Registry
	filter   RuleFilter
	profiler Profiler
}

// New builds a Checker bound to reg. Passing nil uses registry.Default.
func New(reg *registry.Registry) *Checker {
	if reg == nil {
		reg = registry.Default
	}
	return &Checker{reg: reg}
}

// WithFilter returns a copy of c that gates and adjusts rule execution
// through filter. Passing nil restores the "everything enabled" default.
func (c *Checker) WithFilter(filter RuleFilter) *Checker {
	return &Checker{reg: c.reg, filter: filter, profiler: c.profiler}
}

// WithProfiler returns a copy of c that reports each rule invocation's
// elapsed time to profiler. Passing nil disables profiling.
func (c *Checker) WithProfiler(profiler Profiler) *Checker {
	return &Checker{reg: c.reg, filter: c.filter, profiler: profiler}
}

// Check parses source and returns every diagnostic found, with line/column
// fields fully resolved. path is not read from disk: it appears in
// syntax-error messages and is passed to the RuleFilter and to file rules.
func (c *Checker) Check(path string, source []byte) ([]diag.Diagnostic, error) {
	idx := lineindex.FromSource(source)

	parser := sitter.NewParser()
	parser.SetLanguage(rubysitter.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return []diag.Diagnostic{c.parseFatal(path, err)}, nil
	}
	root := tree.RootNode()

	var diags []diag.Diagnostic
	stack := semantic.New()
	ignored := semantic.NewRangeSet()

	appendFiltered := func(ruleID diag.RuleID, produced []diag.Diagnostic) {
		for _, d := range produced {
			if c.filter != nil {
				d.Severity = c.filter.Severity(ruleID, d.Severity)
			}
			diags = append(diags, d)
		}
	}
	// timed wraps a single rule callback invocation, reporting its elapsed
	// time to c.profiler when one is bound. It is a no-op wrapper (one
	// extra time.Since call) when profiling is off.
	timed := func(ruleID diag.RuleID, call func() []diag.Diagnostic) []diag.Diagnostic {
		if c.profiler == nil {
			return call()
		}
		start := time.Now()
		produced := call()
		c.profiler.Record(ruleID, time.Since(start))
		return produced
	}
	settingFor := func(ruleID diag.RuleID) func(string) (any, bool) {
		if c.filter == nil {
			return nil
		}
		return func(key string) (any, bool) { return c.filter.Setting(ruleID, key) }
	}
	enabled := func(ruleID diag.RuleID) bool {
		return c.filter == nil || c.filter.Enabled(ruleID, path)
	}

	var visit func(node *sitter.Node, isRootChild bool)
	visit = func(node *sitter.Node, isRootChild bool) {
		kind := classifyNode(node.Type())

		if kind == KindError {
			diags = append(diags, diag.New(
				fatalRuleID(),
				fmt.Sprintf("%s: syntax error", path),
				diag.SeverityFatal,
				int(node.StartByte()), int(node.EndByte()),
				nil,
			))
		}

		pushed := false
		// Program-root exception: neither the root Program node itself nor
		// its immediate Statements child contributes a frame to the
		// ancestor stack (original_source never pushes ProgramNode), so a
		// top-level rule sees no parent at all, and a rule asking "am I a
		// direct child of the program" sees whatever real node encloses it
		// with no intermediate Program or Statements wrapper in between.
		skipPush := kind == KindProgram || (isRootChild && kind == KindBodyStatement)
		if nodeIgnoresContents(kind) {
			ignored.Add(int(node.StartByte()), int(node.EndByte()))
		}

		for _, rc := range c.reg.NodeCallbacksFor(kind) {
			if !enabled(rc.Rule) {
				continue
			}
			ctxNode := &registry.Context{
				Source:    source,
				NodeKind:  kind,
				NodeText:  node.Content(source),
				Start:     int(node.StartByte()),
				End:       int(node.EndByte()),
				Ancestors: stack,
				Ignored:   ignored,
				Setting:   settingFor(rc.Rule),
			}
			appendFiltered(rc.Rule, timed(rc.Rule, func() []diag.Diagnostic { return rc.Cb(ctxNode) }))
		}

		// Pushed only after this node's own callbacks have run, so the top of
		// the stack is the parent of the node whose rules are running.
		if !skipPush {
			stack.Push(kind)
			pushed = true
		}

		childIsRootChild := kind == KindProgram
		for i := 0; i < int(node.ChildCount()); i++ {
			visit(node.Child(i), childIsRootChild)
		}

		if pushed {
			stack.Pop()
		}
	}
	if root.HasError() {
		// A syntax error skips the AST pass; line and file rules still run.
		diags = append(diags, diag.New(
			fatalRuleID(),
			fmt.Sprintf("%s: syntax error", path),
			ParseErrorSeverity,
			0, 0,
			nil,
		))
	} else {
		visit(root, false)
	}

	for ruleID, rc := range c.reg.LineCallbacks() {
		if !enabled(ruleID) {
			continue
		}
		state := make(map[string]any)
		for i := 0; i < idx.LineCount(); i++ {
			lineStart, _ := idx.LineStart(i)
			line, _ := idx.Line(i)
			lineCtx := &registry.LineContext{
				Source:     source,
				LineIndex:  i,
				LineText:   line,
				LineStart:  lineStart,
				IsLastLine: i == idx.LineCount()-1,
				Ignored:    ignored,
				State:      state,
				Setting:    settingFor(ruleID),
			}
			appendFiltered(ruleID, timed(ruleID, func() []diag.Diagnostic { return rc(lineCtx) }))
		}
	}

	for ruleID, rc := range c.reg.FileCallbacks() {
		if !enabled(ruleID) {
			continue
		}
		fileCtx := &registry.FileContext{
			Source:  source,
			Path:    path,
			Ignored: ignored,
			Setting: settingFor(ruleID),
		}
		appendFiltered(ruleID, timed(ruleID, func() []diag.Diagnostic { return rc(fileCtx) }))
	}

	resolve(idx, diags)

	// Final output is sorted by (start, end) regardless of rule invocation
	// or map-iteration order, so the same (source, config, policy) always
	// produces a byte-identical diagnostic sequence (§5 Determinism).
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Start != diags[j].Start {
			return diags[i].Start < diags[j].Start
		}
		return diags[i].End < diags[j].End
	})

	return diags, nil
}

func (c *Checker) parseFatal(path string, err error) diag.Diagnostic {
	return diag.New(
		fatalRuleID(),
		fmt.Sprintf("%s: failed to parse: %v", path, err),
		ParseErrorSeverity,
		0, 0,
		nil,
	)
}

// fatalRuleID identifies the synthetic tool-level rule used for parse
// failures; it is never registered in the dispatch table.
func fatalRuleID() diag.RuleID {
	return diag.NewRuleID(diag.CategoryLint, "Syntax")
}

// resolve fills in each diagnostic's line/column fields in place via a single
// batch pass over the line index. BatchResolve assumes ranges arrive sorted
// by start offset, but the AST walk collects diagnostics in traversal order
// (a child can start before a later sibling's callback runs), so diagnostics
// are resolved in a start-sorted view and written back to their original
// slots; Check sorts the diagnostics by (start, end) after this call, so
// this does not fix the final ordering, only the resolution pass.
func resolve(idx *lineindex.Index, diags []diag.Diagnostic) {
	order := make([]int, len(diags))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return diags[order[i]].Start < diags[order[j]].Start })

	ranges := make([][2]int, len(diags))
	for sortedPos, origIdx := range order {
		ranges[sortedPos] = [2]int{diags[origIdx].Start, diags[origIdx].End}
	}
	resolved := idx.BatchResolve(ranges)
	for sortedPos, origIdx := range order {
		diags[origIdx].LineStart = resolved[sortedPos].LineStart
		diags[origIdx].LineEnd = resolved[sortedPos].LineEnd
		diags[origIdx].ColumnStart = resolved[sortedPos].ColumnStart
		diags[origIdx].ColumnEnd = resolved[sortedPos].ColumnEnd
	}
}
