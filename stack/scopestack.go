package stack

import "github.com/viant/stackgraph/graph"

// ScopeStack is a partial scope stack: a concrete sequence of scope nodes,
// Scopes[0] being the top, optionally followed by a Variable standing in
// for an unknown tail.
type ScopeStack struct {
	Scopes   []graph.NodeHandle
	Variable Variable
}

// Empty reports whether the stack requires/produces nothing at all.
func (s ScopeStack) Empty() bool { return len(s.Scopes) == 0 && s.Variable == 0 }

func (s ScopeStack) clone() ScopeStack {
	out := ScopeStack{Variable: s.Variable}
	if len(s.Scopes) > 0 {
		out.Scopes = append([]graph.NodeHandle(nil), s.Scopes...)
	}
	return out
}

func freshenScopeStack(s ScopeStack, offset Variable) ScopeStack {
	out := s.clone()
	if out.Variable != 0 {
		out.Variable += offset
	}
	return out
}
