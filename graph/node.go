package graph

// NodeKind identifies the role a Node plays in a stack graph walk.
type NodeKind uint8

const (
	// NodeKindRoot is the process-wide singleton from which every
	// cross-file resolution starts. There is exactly one per StackGraph.
	NodeKindRoot NodeKind = iota
	// NodeKindJumpToScope is the singleton target of "jump to the scope
	// carried on the symbol stack" edges.
	NodeKindJumpToScope
	// NodeKindScope marks a lexical scope that can be pushed onto the
	// scope stack and later jumped to.
	NodeKindScope
	// NodeKindPushSymbol pushes Symbol onto the symbol stack.
	NodeKindPushSymbol
	// NodeKindPushScopedSymbol pushes Symbol onto the symbol stack with
	// ScopeNode attached, carrying a lexical environment through a member
	// access.
	NodeKindPushScopedSymbol
	// NodeKindPopSymbol pops Symbol off the top of the symbol stack.
	NodeKindPopSymbol
	// NodeKindPopScopedSymbol pops a scoped symbol off the top of the
	// symbol stack; its attached scope stack becomes the scope stack
	// (stack.FromEdge replaces the prior scope stack rather than
	// prepending to it).
	NodeKindPopScopedSymbol
	// NodeKindReference is a push of the referent symbol; it is the
	// start node of a complete path.
	NodeKindReference
	// NodeKindDefinition is a pop of the defined symbol; it is the end
	// node of a complete path.
	NodeKindDefinition
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindRoot:
		return "root"
	case NodeKindJumpToScope:
		return "jump-to-scope"
	case NodeKindScope:
		return "scope"
	case NodeKindPushSymbol:
		return "push-symbol"
	case NodeKindPushScopedSymbol:
		return "push-scoped-symbol"
	case NodeKindPopSymbol:
		return "pop-symbol"
	case NodeKindPopScopedSymbol:
		return "pop-scoped-symbol"
	case NodeKindReference:
		return "reference"
	case NodeKindDefinition:
		return "definition"
	default:
		return "unknown"
	}
}

// IsPush reports whether the node kind pushes a symbol onto the symbol
// stack (push-symbol, push-scoped-symbol, and reference nodes all do).
func (k NodeKind) IsPush() bool {
	switch k {
	case NodeKindPushSymbol, NodeKindPushScopedSymbol, NodeKindReference:
		return true
	default:
		return false
	}
}

// IsPop reports whether the node kind pops a symbol off the symbol stack
// (pop-symbol, pop-scoped-symbol, and definition nodes all do).
func (k NodeKind) IsPop() bool {
	switch k {
	case NodeKindPopSymbol, NodeKindPopScopedSymbol, NodeKindDefinition:
		return true
	default:
		return false
	}
}

// Span is a source range supplied by the builder, used only for
// presentation; the stitcher never inspects it.
type Span struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
}

// Node is one vertex of a StackGraph. Nodes are immutable once added.
type Node struct {
	// File is the owning file, or the zero FileHandle for the two
	// process-wide singletons (root and jump-to-scope).
	File FileHandle
	// LocalID distinguishes nodes within the same file; it has no
	// meaning across files and is assigned by the builder.
	LocalID uint32
	Kind    NodeKind
	// Symbol is meaningful for push/pop/reference/definition kinds.
	Symbol SymbolHandle
	// ScopeNode is the attached scope for push-scoped-symbol nodes.
	ScopeNode NodeHandle
	// IsExported marks definitions reachable from outside their file,
	// supplied by the builder; informational only.
	IsExported bool
	Span       *Span
	SyntaxType string
}
