package stack

import "github.com/viant/stackgraph/graph"

func freshenPath(p *PartialPath, offset Variable) *PartialPath {
	return &PartialPath{
		Start: p.Start, End: p.End,
		SymbolPre:  freshenSymbolStack(p.SymbolPre, offset),
		SymbolPost: freshenSymbolStack(p.SymbolPost, offset),
		ScopePre:   freshenScopeStack(p.ScopePre, offset),
		ScopePost:  freshenScopeStack(p.ScopePost, offset),
		Edges:      append([]graph.Edge(nil), p.Edges...),
		NextVar:    p.NextVar,
	}
}

// Concat implements the partial-path concatenation operator (∘): it
// appends b to a, producing a new path from a.Start to b.End whose
// pre/postconditions are a's and b's own conditions after unifying a's
// postcondition against b's precondition and propagating the resulting
// bindings. a.End must equal b.Start.
//
// Both the symbol-stack and scope-stack postcondition/precondition pairs
// are unified directly, not only the attached scope stacks on matching
// scoped symbols (§4.3 step 5): without also unifying the scope stacks
// themselves, two paths whose scope-stack pre/post chain through a shared
// jump-to-scope node would concatenate into a path with a dangling,
// unconstrained scope stack rather than one that reflects what the walk
// actually requires and leaves behind.
func Concat(a, b *PartialPath) (*PartialPath, error) {
	if a.End != b.Start {
		return nil, &EndpointMismatch{Left: "a.End", Right: "b.Start"}
	}

	fb := freshenPath(b, a.NextVar)

	sub := newSubstitution()
	if err := unifySymbolStacks(a.SymbolPost, fb.SymbolPre, sub); err != nil {
		return nil, err
	}
	if err := unifyScopeStacks(a.ScopePost, fb.ScopePre, sub); err != nil {
		return nil, err
	}

	result := &PartialPath{
		Start:      a.Start,
		End:        fb.End,
		SymbolPre:  sub.applySymbol(a.SymbolPre),
		SymbolPost: sub.applySymbol(fb.SymbolPost),
		ScopePre:   sub.applyScope(a.ScopePre),
		ScopePost:  sub.applyScope(fb.ScopePost),
		NextVar:    a.NextVar + b.NextVar,
	}
	result.Edges = append(result.Edges, a.Edges...)
	result.Edges = append(result.Edges, fb.Edges...)

	return result, nil
}

// ResolveJumps collapses a path that ends at the graph's jump-to-scope
// singleton and whose scope-stack postcondition has resolved to a
// concrete leading scope: it rewrites End to that scope and pops it off
// the postcondition, since traversing jump-to-scope means "pop a scope
// off the scope stack and continue as if that scope were reached
// directly". A path stuck at jump-to-scope with an unresolved (variable)
// scope-stack postcondition is left unchanged — it simply stops
// extending, which is correct: nothing further can be inferred about it
// until some other concatenation binds that variable.
func ResolveJumps(g *graph.StackGraph, p *PartialPath) *PartialPath {
	if p.End != g.JumpToScope() || len(p.ScopePost.Scopes) == 0 {
		return p
	}
	out := p.Clone()
	out.End = out.ScopePost.Scopes[0]
	out.ScopePost.Scopes = out.ScopePost.Scopes[1:]
	return out
}
