package graph

// StackGraph is the interned node/edge graph produced by a builder for one
// or more files. It is append-only: once a node or edge is added it is
// never removed, and handles remain valid for the graph's lifetime.
type StackGraph struct {
	symbols InternArena[SymbolHandle]
	files   fileArena
	nodes   Arena[NodeHandle, Node]
	edges   Arena[EdgeHandle, Edge]
	outbound map[NodeHandle][]EdgeHandle

	root        NodeHandle
	jumpToScope NodeHandle
}

// New creates an empty StackGraph with its two process-wide singleton
// nodes (root and jump-to-scope) already materialized. Singletons are
// per-instance, not global state, so concurrently held graphs stay
// isolated from one another.
func New() *StackGraph {
	g := &StackGraph{outbound: make(map[NodeHandle][]EdgeHandle)}
	g.root = g.nodes.Add(Node{Kind: NodeKindRoot})
	g.jumpToScope = g.nodes.Add(Node{Kind: NodeKindJumpToScope})
	return g
}

// Root returns the handle of this graph's singleton root node.
func (g *StackGraph) Root() NodeHandle { return g.root }

// JumpToScope returns the handle of this graph's singleton jump-to-scope
// node.
func (g *StackGraph) JumpToScope() NodeHandle { return g.jumpToScope }

// AddSymbol interns sym, returning the same handle for repeated calls with
// an equal string.
func (g *StackGraph) AddSymbol(sym string) SymbolHandle { return g.symbols.Intern(sym) }

// Symbol returns the interned text for h.
func (g *StackGraph) Symbol(h SymbolHandle) (string, bool) { return g.symbols.Value(h) }

// SymbolHandles returns every interned symbol handle.
func (g *StackGraph) SymbolHandles() []SymbolHandle { return g.symbols.Handles() }

// AddFile registers path, returning a *DuplicateFileError if it is already
// registered.
func (g *StackGraph) AddFile(path string) (FileHandle, error) { return g.files.add(path) }

// File returns the path addressed by h.
func (g *StackGraph) File(h FileHandle) (string, bool) { return g.files.value(h) }

// FileHandleOf looks up the handle already assigned to path.
func (g *StackGraph) FileHandleOf(path string) (FileHandle, bool) { return g.files.lookup(path) }

// FileHandles returns every registered file handle.
func (g *StackGraph) FileHandles() []FileHandle { return g.files.handles() }

// AddNode appends n, after checking that any symbol, file, or scope node it
// references already exists in this graph.
func (g *StackGraph) AddNode(n Node) (NodeHandle, error) {
	if n.File != 0 {
		if _, ok := g.files.value(n.File); !ok {
			return 0, &MalformedNodeError{Reason: "references unknown file handle"}
		}
	}
	if n.Kind.IsPush() || n.Kind.IsPop() {
		if n.Symbol == 0 {
			return 0, &MalformedNodeError{Reason: "push/pop/reference/definition node requires a symbol"}
		}
		if _, ok := g.symbols.Value(n.Symbol); !ok {
			return 0, &MalformedNodeError{Reason: "references unknown symbol handle"}
		}
	}
	if n.Kind == NodeKindPushScopedSymbol {
		scope, ok := g.nodes.Get(n.ScopeNode)
		if !ok {
			return 0, &MalformedNodeError{Reason: "push-scoped-symbol references unknown scope node"}
		}
		if scope.Kind != NodeKindScope {
			return 0, &MalformedNodeError{Reason: "push-scoped-symbol's attached node is not a scope"}
		}
	}
	return g.nodes.Add(n), nil
}

// Node returns the node addressed by h.
func (g *StackGraph) Node(h NodeHandle) (*Node, bool) { return g.nodes.Get(h) }

// NodeHandles returns every node handle, in insertion order.
func (g *StackGraph) NodeHandles() []NodeHandle { return g.nodes.Handles() }

// AddEdge appends a directed edge from source to sink with the given
// precedence.
func (g *StackGraph) AddEdge(source, sink NodeHandle, precedence int32) (EdgeHandle, error) {
	if _, ok := g.nodes.Get(source); !ok {
		return 0, &MalformedNodeError{Reason: "edge source does not exist"}
	}
	if _, ok := g.nodes.Get(sink); !ok {
		return 0, &MalformedNodeError{Reason: "edge sink does not exist"}
	}
	h := g.edges.Add(Edge{Source: source, Sink: sink, Precedence: precedence})
	g.outbound[source] = append(g.outbound[source], h)
	return h, nil
}

// Edge returns the edge addressed by h.
func (g *StackGraph) Edge(h EdgeHandle) (*Edge, bool) { return g.edges.Get(h) }

// OutgoingEdges returns every edge handle whose source is node, in
// insertion order and without any shadowing applied. Use
// PreferredOutgoingEdges to apply §4.2 shadowing.
func (g *StackGraph) OutgoingEdges(node NodeHandle) []EdgeHandle {
	out := g.outbound[node]
	cp := make([]EdgeHandle, len(out))
	copy(cp, out)
	return cp
}

// PreferredOutgoingEdges returns the edges out of node that survive
// shadowing: when two edges share the same sink node, only the one with
// the lower (preferred) precedence is kept.
func (g *StackGraph) PreferredOutgoingEdges(node NodeHandle) []EdgeHandle {
	handles := g.outbound[node]
	best := make(map[NodeHandle]EdgeHandle, len(handles))
	for _, h := range handles {
		e, _ := g.edges.Get(h)
		cur, ok := best[e.Sink]
		if !ok {
			best[e.Sink] = h
			continue
		}
		curEdge, _ := g.edges.Get(cur)
		if e.Precedence < curEdge.Precedence {
			best[e.Sink] = h
		}
	}
	out := make([]EdgeHandle, 0, len(best))
	for _, h := range handles {
		e, _ := g.edges.Get(h)
		if best[e.Sink] == h {
			out = append(out, h)
		}
	}
	return out
}

// AddFromGraph splices other's nodes, edges, symbols, and files into g,
// remapping every handle. It returns the first *DuplicateFileError it
// encounters rather than silently overwriting an existing file.
func (g *StackGraph) AddFromGraph(other *StackGraph) error {
	symbolRemap := make(map[SymbolHandle]SymbolHandle, other.symbols.Len())
	for _, h := range other.symbols.Handles() {
		v, _ := other.symbols.Value(h)
		symbolRemap[h] = g.AddSymbol(v)
	}

	fileRemap := make(map[FileHandle]FileHandle, other.files.len())
	for _, h := range other.files.handles() {
		path, _ := other.files.value(h)
		nh, err := g.AddFile(path)
		if err != nil {
			return err
		}
		fileRemap[h] = nh
	}

	nodeRemap := make(map[NodeHandle]NodeHandle, other.nodes.Len())
	nodeRemap[other.root] = g.root
	nodeRemap[other.jumpToScope] = g.jumpToScope

	// First pass: create every non-singleton node without resolving
	// ScopeNode, since a push-scoped-symbol node may reference a scope
	// node that has not been remapped yet.
	other.nodes.Each(func(h NodeHandle, n *Node) {
		if h == other.root || h == other.jumpToScope {
			return
		}
		remapped := *n
		if n.File != 0 {
			remapped.File = fileRemap[n.File]
		}
		if n.Symbol != 0 {
			remapped.Symbol = symbolRemap[n.Symbol]
		}
		remapped.ScopeNode = 0
		nh := g.nodes.Add(remapped)
		nodeRemap[h] = nh
	})

	// Second pass: fix up ScopeNode references now that every node has a
	// target handle.
	other.nodes.Each(func(h NodeHandle, n *Node) {
		if n.Kind != NodeKindPushScopedSymbol || n.ScopeNode == 0 {
			return
		}
		target, _ := g.nodes.Get(nodeRemap[h])
		target.ScopeNode = nodeRemap[n.ScopeNode]
	})

	other.edges.Each(func(_ EdgeHandle, e *Edge) {
		_, _ = g.AddEdge(nodeRemap[e.Source], nodeRemap[e.Sink], e.Precedence)
	})

	return nil
}
