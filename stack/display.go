package stack

import (
	"fmt"
	"strings"

	"github.com/viant/stackgraph/graph"
)

// numberer assigns small sequential display numbers to Variables in the
// order they are first encountered, so the same variable renders with the
// same number everywhere it appears in one Display call.
type numberer struct {
	next     int
	assigned map[Variable]int
}

func newNumberer() *numberer { return &numberer{assigned: map[Variable]int{}} }

func (n *numberer) num(v Variable) int {
	if id, ok := n.assigned[v]; ok {
		return id
	}
	n.next++
	n.assigned[v] = n.next
	return n.next
}

func renderNode(g *graph.StackGraph, h graph.NodeHandle) string {
	if h == g.Root() {
		return "root"
	}
	if h == g.JumpToScope() {
		return "jump-to-scope"
	}
	n, ok := g.Node(h)
	if !ok {
		return "?"
	}
	file, _ := g.File(n.File)
	s := fmt.Sprintf("%s(%d) %s", file, n.LocalID, n.Kind.String())
	if n.Symbol != 0 {
		if sym, ok := g.Symbol(n.Symbol); ok {
			s += " " + sym
		}
	}
	return s
}

func renderScopeStack(g *graph.StackGraph, s ScopeStack, scopeNum *numberer) string {
	parts := make([]string, 0, len(s.Scopes))
	for _, nh := range s.Scopes {
		parts = append(parts, renderNode(g, nh))
	}
	joined := strings.Join(parts, ",")
	if s.Variable == 0 {
		return joined
	}
	tail := fmt.Sprintf("$%d", scopeNum.num(s.Variable))
	if joined == "" {
		return tail
	}
	return joined + "," + tail
}

func renderSymbolStack(g *graph.StackGraph, s SymbolStack, symNum, scopeNum *numberer) string {
	parts := make([]string, 0, len(s.Symbols))
	for _, sym := range s.Symbols {
		text, _ := g.Symbol(sym.Symbol)
		if sym.Scopes != nil {
			text = text + "/" + renderScopeStack(g, *sym.Scopes, scopeNum)
		}
		parts = append(parts, text)
	}
	joined := strings.Join(parts, ",")
	if s.Variable == 0 {
		return joined
	}
	tail := fmt.Sprintf("%%%d", symNum.num(s.Variable))
	if joined == "" {
		return tail
	}
	return joined + "," + tail
}

// Display renders p the way the stitcher's diagnostics and tests do:
// "<symbol-pre> (scope-pre) [start] -> [end] <symbol-post> (scope-post)".
// Variable numbers are local to this call and start from 1 in the order
// precondition-then-postcondition encounters them, so the same variable
// always renders with the same number within one path's display.
func (p *PartialPath) Display(g *graph.StackGraph) string {
	symNum, scopeNum := newNumberer(), newNumberer()
	pre := renderSymbolStack(g, p.SymbolPre, symNum, scopeNum)
	scopePre := renderScopeStack(g, p.ScopePre, scopeNum)
	start := renderNode(g, p.Start)
	end := renderNode(g, p.End)
	post := renderSymbolStack(g, p.SymbolPost, symNum, scopeNum)
	scopePost := renderScopeStack(g, p.ScopePost, scopeNum)
	return fmt.Sprintf("<%s> (%s) [%s] -> [%s] <%s> (%s)", pre, scopePre, start, end, post, scopePost)
}
