package stitcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/stackgraph/stack"
)

// renumberer assigns canonical ids to stack.Variable values in
// first-occurrence order, the same trick database.pathKey uses, so two
// paths differing only in which concrete variable numbers a freshening
// happened to pick compare as equivalent.
type renumberer struct {
	next     uint32
	assigned map[stack.Variable]stack.Variable
}

func newRenumberer() *renumberer { return &renumberer{assigned: map[stack.Variable]stack.Variable{}} }

func (r *renumberer) of(v stack.Variable) stack.Variable {
	if v == 0 {
		return 0
	}
	if id, ok := r.assigned[v]; ok {
		return id
	}
	r.next++
	id := stack.Variable(r.next)
	r.assigned[v] = id
	return id
}

// stacksKey canonicalizes p's endpoints and stack pre/postconditions
// (deliberately excluding its edge list, which shadowing compares
// separately by precedence) into a string so a hash-based equivalence
// class can stand in for the spec's pairwise "stacks are
// unification-equivalent" check (§9's shadowing-decision design note
// explicitly leaves the algorithm unspecified).
func stacksKey(p *stack.PartialPath) string {
	symNum, scopeNum := newRenumberer(), newRenumberer()
	var b strings.Builder
	fmt.Fprintf(&b, "%d>%d|", p.Start, p.End)
	writeSymbolStack(&b, p.SymbolPre, symNum, scopeNum)
	b.WriteByte('|')
	writeScopeStack(&b, p.ScopePre, scopeNum)
	b.WriteByte('|')
	writeSymbolStack(&b, p.SymbolPost, symNum, scopeNum)
	b.WriteByte('|')
	writeScopeStack(&b, p.ScopePost, scopeNum)
	return b.String()
}

func writeSymbolStack(b *strings.Builder, s stack.SymbolStack, symNum, scopeNum *renumberer) {
	for i, sym := range s.Symbols {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%d", sym.Symbol)
		if sym.Scopes != nil {
			b.WriteByte('/')
			writeScopeStack(b, *sym.Scopes, scopeNum)
		}
	}
	fmt.Fprintf(b, ";%%%d", symNum.of(s.Variable))
}

func writeScopeStack(b *strings.Builder, s stack.ScopeStack, scopeNum *renumberer) {
	for i, n := range s.Scopes {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%d", n)
	}
	fmt.Fprintf(b, ";$%d", scopeNum.of(s.Variable))
}

func precedences(p *stack.PartialPath) []int32 {
	out := make([]int32, len(p.Edges))
	for i, e := range p.Edges {
		out[i] = e.Precedence
	}
	return out
}

func edgesLess(a, b *stack.PartialPath) bool {
	pa, pb := precedences(a), precedences(b)
	n := len(pa)
	if len(pb) < n {
		n = len(pb)
	}
	for i := 0; i < n; i++ {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return len(pa) < len(pb)
}

// applyShadowing groups paths by (endpoints, stack pre/postconditions)
// and, within each group, keeps only the strictly lowest edge-precedence
// path(s) (§4.4's "discards shadowed paths before enqueueing"): any path
// in the group with a higher-precedence edge list than another member is
// dropped.
func applyShadowing(paths []*stack.PartialPath) []*stack.PartialPath {
	groups := make(map[string][]*stack.PartialPath)
	var order []string
	for _, p := range paths {
		key := stacksKey(p)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p)
	}

	var out []*stack.PartialPath
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return edgesLess(group[i], group[j]) })
		best := precedences(group[0])
		for _, p := range group {
			if precedenceEqual(precedences(p), best) {
				out = append(out, p)
			}
		}
	}
	return out
}

func precedenceEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
