package checker

import "github.com/oxhq/rubocheck/internal/semantic"

// Kind enumerates the AST node shapes rule callbacks can dispatch on. It is a
// closed classification over tree-sitter-ruby's raw grammar node-type
// strings, translated by classifyNode — rule packages never see a raw
// grammar string, only this enum, so a grammar upgrade that renames a node
// type only touches classifyNode.
const (
	KindUnknown semantic.NodeKind = iota
	KindProgram
	KindMethod
	KindSingletonMethod
	KindClass
	KindSingletonClass
	KindModule
	KindBlock
	KindDoBlock
	KindCall
	KindIdentifier
	KindComment
	KindString
	KindHeredocBody
	KindAssignment
	KindIf
	KindUnless
	KindWhile
	KindUntil
	KindBodyStatement
	KindError
)

// classifyNode maps a tree-sitter-ruby grammar node-type string to a Kind.
// Node types with no dedicated rule interest fall through to KindUnknown;
// rule packages that need finer-grained matching read ctx.NodeText/raw type
// via the checker's node-text helpers instead of growing this table forever.
func classifyNode(rawType string) semantic.NodeKind {
	switch rawType {
	case "program":
		return KindProgram
	case "method":
		return KindMethod
	case "singleton_method":
		return KindSingletonMethod
	case "class":
		return KindClass
	case "singleton_class":
		return KindSingletonClass
	case "module":
		return KindModule
	case "block":
		return KindBlock
	case "do_block":
		return KindDoBlock
	case "call":
		return KindCall
	case "identifier", "constant", "scope_resolution":
		return KindIdentifier
	case "comment":
		return KindComment
	case "string", "string_content", "bare_string":
		return KindString
	case "heredoc_body", "heredoc_beginning", "heredoc_end":
		return KindHeredocBody
	case "assignment", "operator_assignment":
		return KindAssignment
	case "if", "elsif", "if_modifier":
		return KindIf
	case "unless", "unless_modifier":
		return KindUnless
	case "while", "while_modifier":
		return KindWhile
	case "until", "until_modifier":
		return KindUntil
	case "body_statement":
		return KindBodyStatement
	case "ERROR":
		return KindError
	default:
		return KindUnknown
	}
}

// nodeIgnoresContents reports the node kinds that are pushed onto the ancestor
// stack as usual but whose byte range is also added to the check pass's
// ignored semantic.RangeSet, so
// layout rules (trailing whitespace, blank lines) skip heredoc bodies, whose
// contents are arbitrary embedded text, not Ruby source layout.
func nodeIgnoresContents(kind semantic.NodeKind) bool {
	return kind == KindHeredocBody
}
