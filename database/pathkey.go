package database

import (
	"fmt"
	"strings"

	"github.com/viant/stackgraph/stack"
)

// renumberer assigns canonical, deterministic ids to stack.Variable values
// in first-occurrence order, the same trick stack.Display uses for
// human-readable output — here it makes two partial paths that differ
// only in which concrete Variable numbers their freshening happened to
// pick compare as identical.
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

// pathKey returns a string uniquely identifying p's structure (endpoints,
// stack pre/postconditions, and edge list) up to variable renaming, used
// to coalesce duplicate partial paths on insertion (§4.6
// "add_partial_path ... duplicates are coalesced").
// PathKey exposes pathKey for sqlitedb, which needs the same canonical
// variable-renamed key to coalesce duplicates against its on-disk table.
func PathKey(p *stack.PartialPath) string { return pathKey(p) }

func pathKey(p *stack.PartialPath) string {
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
	b.WriteByte('|')
	for _, e := range p.Edges {
		fmt.Fprintf(&b, "%d-%d-%d,", e.Source, e.Sink, e.Precedence)
	}
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
