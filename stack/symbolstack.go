package stack

import "github.com/viant/stackgraph/graph"

// ScopedSymbol is a symbol optionally paired with an attached scope stack,
// used to carry a lexical environment through a member access. Scopes is
// nil when the symbol carries no attachment.
type ScopedSymbol struct {
	Symbol graph.SymbolHandle
	Scopes *ScopeStack
}

func (s ScopedSymbol) clone() ScopedSymbol {
	out := ScopedSymbol{Symbol: s.Symbol}
	if s.Scopes != nil {
		cp := s.Scopes.clone()
		out.Scopes = &cp
	}
	return out
}

// SymbolStack is a partial symbol stack: a concrete sequence of scoped
// symbols, Symbols[0] being the top (next to pop), optionally followed by
// a Variable standing in for an unknown tail. Variable == 0 means the
// stack is fully concrete (bottoms out at the empty stack).
type SymbolStack struct {
	Symbols  []ScopedSymbol
	Variable Variable
}

// Empty reports whether the stack requires/produces nothing at all: no
// concrete elements and no unresolved tail.
func (s SymbolStack) Empty() bool { return len(s.Symbols) == 0 && s.Variable == 0 }

func (s SymbolStack) clone() SymbolStack {
	out := SymbolStack{Variable: s.Variable}
	if len(s.Symbols) > 0 {
		out.Symbols = make([]ScopedSymbol, len(s.Symbols))
		for i, sym := range s.Symbols {
			out.Symbols[i] = sym.clone()
		}
	}
	return out
}

func freshenSymbolStack(s SymbolStack, offset Variable) SymbolStack {
	out := s.clone()
	if out.Variable != 0 {
		out.Variable += offset
	}
	for i := range out.Symbols {
		if out.Symbols[i].Scopes != nil {
			fresh := freshenScopeStack(*out.Symbols[i].Scopes, offset)
			out.Symbols[i].Scopes = &fresh
		}
	}
	return out
}
