// Package registry is the dispatch table the checker walks the AST against:
// for each node kind it visits, which rule callbacks run. It replaces the
// teacher's language-keyed LanguageProvider registry with a node-kind-keyed
// one, since this tool supports one language and many rules rather than one
// DSL and many languages — the registration idiom (mutex-guarded map,
// error-returning rather than panicking on a duplicate) carries over
// unchanged from the original RegisterProvider.
//
// Rule packages register their callbacks from an init() function, which is
// Go's nearest equivalent to the original's #[check(NodeKind)] attribute
// macro: there is no attribute-macro equivalent in Go, so the (RuleID,
// NodeKind) -> callback table is assembled explicitly at program start
// instead of derived at compile time from annotations.
package registry

import (
	"fmt"
	"sync"

	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/semantic"
)

// NodeCallback inspects one AST node (and its ancestor stack) and appends any
// diagnostics it finds to the returned slice.
type NodeCallback func(ctx *Context) []diag.Diagnostic

// LineCallback inspects a single source line.
type LineCallback func(ctx *LineContext) []diag.Diagnostic

// FileCallback inspects the whole file once, after the AST pass completes.
type FileCallback func(ctx *FileContext) []diag.Diagnostic

// Context is passed to a NodeCallback for the node currently being visited.
type Context struct {
	Source     []byte
	NodeKind   semantic.NodeKind
	NodeText   string
	Start, End int
	Ancestors  *semantic.Stack
	Ignored    *semantic.RangeSet

	// Setting looks up a rule-specific config value by PascalCase key (e.g.
	// "Width"); ok is false when no config was bound to this check (nil
	// filter) or the rule declared no such key. Rules that need none of
	// this may ignore the field entirely.
	Setting func(key string) (any, bool)
}

// LineContext is passed to a LineCallback for a single line.
type LineContext struct {
	Source     []byte
	LineIndex  int // 0-indexed
	LineText   []byte
	LineStart  int // byte offset of line start
	IsLastLine bool
	Ignored    *semantic.RangeSet

	// State is a map private to this rule for the duration of one
	// Checker.Check call, persisted across successive line invocations so a
	// line-based rule can track state that spans lines (e.g. a run of
	// consecutive blank lines) without package-level mutable state, which
	// would be unsafe across concurrently-checked files.
	State map[string]any

	Setting func(key string) (any, bool)
}

// FileContext is passed to a FileCallback once per file.
type FileContext struct {
	Source  []byte
	Path    string
	Ignored *semantic.RangeSet
	Setting func(key string) (any, bool)
}

// SettingInt returns the integer setting for key, or def if absent.
func SettingInt(get func(key string) (any, bool), key string, def int) int {
	if get == nil {
		return def
	}
	v, ok := get(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// SettingString returns the string setting for key, or def if absent.
func SettingString(get func(key string) (any, bool), key string, def string) string {
	if get == nil {
		return def
	}
	v, ok := get(key)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

type nodeKey struct {
	rule diag.RuleID
	kind semantic.NodeKind
}

// Registry is the dispatch table. The zero value is not usable; use New.
type Registry struct {
	mu            sync.RWMutex
	nodeCallbacks map[nodeKey]NodeCallback
	byKind        map[semantic.NodeKind][]diag.RuleID
	lineCallbacks map[diag.RuleID]LineCallback
	fileCallbacks map[diag.RuleID]FileCallback
	allRules      map[diag.RuleID]struct{}
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		nodeCallbacks: make(map[nodeKey]NodeCallback),
		byKind:        make(map[semantic.NodeKind][]diag.RuleID),
		lineCallbacks: make(map[diag.RuleID]LineCallback),
		fileCallbacks: make(map[diag.RuleID]FileCallback),
		allRules:      make(map[diag.RuleID]struct{}),
	}
}

// RegisterNode binds a rule's callback to a node kind. It is an error to
// register the same (rule, kind) pair twice.
func (r *Registry) RegisterNode(rule diag.RuleID, kind semantic.NodeKind, cb NodeCallback) error {
	if cb == nil {
		return fmt.Errorf("registry: nil callback for rule %s", rule)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := nodeKey{rule: rule, kind: kind}
	if _, exists := r.nodeCallbacks[key]; exists {
		return fmt.Errorf("registry: rule %s already registered for node kind %d", rule, kind)
	}

	r.nodeCallbacks[key] = cb
	r.byKind[kind] = append(r.byKind[kind], rule)
	r.allRules[rule] = struct{}{}
	return nil
}

// RegisterLine binds a rule's callback to run once per source line.
func (r *Registry) RegisterLine(rule diag.RuleID, cb LineCallback) error {
	if cb == nil {
		return fmt.Errorf("registry: nil line callback for rule %s", rule)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.lineCallbacks[rule]; exists {
		return fmt.Errorf("registry: rule %s already has a line callback registered", rule)
	}
	r.lineCallbacks[rule] = cb
	r.allRules[rule] = struct{}{}
	return nil
}

// RegisterFile binds a rule's callback to run once per file.
func (r *Registry) RegisterFile(rule diag.RuleID, cb FileCallback) error {
	if cb == nil {
		return fmt.Errorf("registry: nil file callback for rule %s", rule)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fileCallbacks[rule]; exists {
		return fmt.Errorf("registry: rule %s already has a file callback registered", rule)
	}
	r.fileCallbacks[rule] = cb
	r.allRules[rule] = struct{}{}
	return nil
}

// RuleCallback pairs a rule with its callback for a node kind.
type RuleCallback struct {
	Rule diag.RuleID
	Cb   NodeCallback
}

// NodeCallbacksFor returns the callbacks registered for a node kind, paired
// with the owning rule.
func (r *Registry) NodeCallbacksFor(kind semantic.NodeKind) []RuleCallback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := r.byKind[kind]
	out := make([]RuleCallback, 0, len(rules))
	for _, rule := range rules {
		out = append(out, RuleCallback{Rule: rule, Cb: r.nodeCallbacks[nodeKey{rule: rule, kind: kind}]})
	}
	return out
}

// LineCallbacks returns all registered line callbacks, paired with rule.
func (r *Registry) LineCallbacks() map[diag.RuleID]LineCallback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[diag.RuleID]LineCallback, len(r.lineCallbacks))
	for k, v := range r.lineCallbacks {
		out[k] = v
	}
	return out
}

// FileCallbacks returns all registered file callbacks, paired with rule.
func (r *Registry) FileCallbacks() map[diag.RuleID]FileCallback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[diag.RuleID]FileCallback, len(r.fileCallbacks))
	for k, v := range r.fileCallbacks {
		out[k] = v
	}
	return out
}

// Rules lists every rule that has registered at least one callback.
func (r *Registry) Rules() []diag.RuleID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]diag.RuleID, 0, len(r.allRules))
	for rule := range r.allRules {
		out = append(out, rule)
	}
	return out
}

// Default is the process-wide registry rule packages register into from
// their init() functions, mirroring the teacher's DefaultRegistry/
// package-level convenience-function pattern. Unlike the teacher's init-time
// panic-on-duplicate provider registration, these return an error rather
// than panicking themselves; the rule packages' init() functions panic on
// that error, so a duplicate registration still stops the process at start.
var Default = New()

// RegisterNode registers a node callback on the default registry.
func RegisterNode(rule diag.RuleID, kind semantic.NodeKind, cb NodeCallback) error {
	return Default.RegisterNode(rule, kind, cb)
}

// RegisterLine registers a line callback on the default registry.
func RegisterLine(rule diag.RuleID, cb LineCallback) error {
	return Default.RegisterLine(rule, cb)
}

// RegisterFile registers a file callback on the default registry.
func RegisterFile(rule diag.RuleID, cb FileCallback) error {
	return Default.RegisterFile(rule, cb)
}
