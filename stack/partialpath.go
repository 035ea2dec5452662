package stack

import (
	"fmt"

	"github.com/viant/stackgraph/graph"
)

// PartialPath is a file-local (or, once stitched, cross-file) path
// fragment: a walk from Start to End through Edges, annotated with the
// symbol- and scope-stack pre/postconditions that must hold for the
// fragment to be traversable and what it leaves behind. Pre/post
// conditions may mention Variables standing in for whatever the caller's
// stack looks like; Concat resolves them via unification.
type PartialPath struct {
	Start, End graph.NodeHandle

	SymbolPre, SymbolPost SymbolStack
	ScopePre, ScopePost   ScopeStack

	Edges []graph.Edge

	NextVar Variable
}

func (p *PartialPath) newVar() Variable {
	p.NextVar++
	return p.NextVar
}

// IsComplete reports whether p is a complete path: Start is a reference,
// End is a definition, the symbol-stack precondition is empty (nothing
// required of the caller), and the scope-stack postcondition is empty
// (nothing left on the scope stack). The symbol-stack postcondition and
// scope-stack precondition are not constrained; a balanced path may
// legitimately still carry a scope-stack precondition variable.
func (p *PartialPath) IsComplete(g *graph.StackGraph) bool {
	start, ok := g.Node(p.Start)
	if !ok || start.Kind != graph.NodeKindReference {
		return false
	}
	end, ok := g.Node(p.End)
	if !ok || end.Kind != graph.NodeKindDefinition {
		return false
	}
	return p.SymbolPre.Empty() && p.ScopePost.Empty()
}

// Clone returns a deep copy of p; Concat and unification never mutate
// their inputs, but callers that build up result sets benefit from an
// explicit, cheap way to snapshot a path before mutating it further (e.g.
// ResolveJumps below).
func (p *PartialPath) Clone() *PartialPath {
	cp := &PartialPath{
		Start: p.Start, End: p.End,
		SymbolPre: p.SymbolPre.clone(), SymbolPost: p.SymbolPost.clone(),
		ScopePre: p.ScopePre.clone(), ScopePost: p.ScopePost.clone(),
		NextVar: p.NextVar,
	}
	cp.Edges = append([]graph.Edge(nil), p.Edges...)
	return cp
}

// Trivial builds the identity partial path at node: Start == End == node,
// and both stacks pass through unchanged. It is the seed minimal-path
// extraction starts from at every node before any edge is traversed.
func Trivial(node graph.NodeHandle) *PartialPath {
	p := &PartialPath{Start: node, End: node}
	sv := p.newVar()
	p.SymbolPre = SymbolStack{Variable: sv}
	p.SymbolPost = SymbolStack{Variable: sv}
	scv := p.newVar()
	p.ScopePre = ScopeStack{Variable: scv}
	p.ScopePost = ScopeStack{Variable: scv}
	return p
}

// SeedAtReference builds the single-node seed path complete-path
// resolution starts from: Start == End == the reference node. Both
// preconditions are the empty stack — a complete path requires nothing
// of the caller — and the symbol-stack postcondition carries only the
// referent symbol, with no trailing variable, so that the definition's
// matching pop consumes it down to empty rather than down to a bare
// variable tail (which could never unify with the empty stack a complete
// path demands). Seeding the scope-stack precondition empty the same way
// means a path that never pushes a scoped symbol threads a genuinely
// empty scope stack through every identity step, rather than an
// unresolvable free variable that could never satisfy IsComplete's
// scope-stack postcondition check.
func SeedAtReference(g *graph.StackGraph, ref graph.NodeHandle) (*PartialPath, error) {
	n, ok := g.Node(ref)
	if !ok {
		return nil, fmt.Errorf("stack: unknown reference node")
	}
	if n.Kind != graph.NodeKindReference {
		return nil, fmt.Errorf("stack: node is not a reference")
	}
	p := &PartialPath{Start: ref, End: ref}
	p.SymbolPre = SymbolStack{}
	p.SymbolPost = SymbolStack{Symbols: []ScopedSymbol{{Symbol: n.Symbol}}}
	p.ScopePre = ScopeStack{}
	p.ScopePost = ScopeStack{}
	return p, nil
}

// FromEdge builds the single-edge partial path for traversing e, derived
// entirely from e.Sink's node kind:
//
//   - push-like sinks (push-symbol, push-scoped-symbol, reference) prepend
//     the sink's symbol to an otherwise-untouched postcondition;
//   - pop-like sinks (pop-symbol, pop-scoped-symbol, definition) require
//     the sink's symbol at the top of the precondition and consume it;
//   - everything else (root, jump-to-scope, scope) is identity.
//
// A pop-scoped-symbol sink additionally replaces the scope-stack
// postcondition with the popped symbol's attached scope stack, rather than
// prepending it to whatever scope stack was already active — this
// implementation does not thread a prior scope stack through a
// pop-scoped-symbol transition (see DESIGN.md).
func FromEdge(g *graph.StackGraph, e graph.Edge) (*PartialPath, error) {
	sink, ok := g.Node(e.Sink)
	if !ok {
		return nil, fmt.Errorf("stack: edge references unknown sink node")
	}
	p := &PartialPath{Start: e.Source, End: e.Sink, Edges: []graph.Edge{e}}

	switch {
	case sink.Kind.IsPush():
		sv := p.newVar()
		p.SymbolPre = SymbolStack{Variable: sv}
		scoped := ScopedSymbol{Symbol: sink.Symbol}
		if sink.Kind == graph.NodeKindPushScopedSymbol {
			scoped.Scopes = &ScopeStack{Scopes: []graph.NodeHandle{sink.ScopeNode}}
		}
		p.SymbolPost = SymbolStack{Symbols: []ScopedSymbol{scoped}, Variable: sv}
		scv := p.newVar()
		p.ScopePre = ScopeStack{Variable: scv}
		p.ScopePost = ScopeStack{Variable: scv}

	case sink.Kind.IsPop():
		sv := p.newVar()
		scoped := ScopedSymbol{Symbol: sink.Symbol}
		if sink.Kind == graph.NodeKindPopScopedSymbol {
			scoped.Scopes = &ScopeStack{Variable: p.newVar()}
		}
		p.SymbolPre = SymbolStack{Symbols: []ScopedSymbol{scoped}, Variable: sv}
		p.SymbolPost = SymbolStack{Variable: sv}
		if sink.Kind == graph.NodeKindPopScopedSymbol {
			p.ScopePre = ScopeStack{Variable: p.newVar()}
			p.ScopePost = ScopeStack{Variable: scoped.Scopes.Variable}
		} else {
			scv := p.newVar()
			p.ScopePre = ScopeStack{Variable: scv}
			p.ScopePost = ScopeStack{Variable: scv}
		}

	default:
		sv := p.newVar()
		p.SymbolPre = SymbolStack{Variable: sv}
		p.SymbolPost = SymbolStack{Variable: sv}
		scv := p.newVar()
		p.ScopePre = ScopeStack{Variable: scv}
		p.ScopePost = ScopeStack{Variable: scv}
	}

	return p, nil
}
