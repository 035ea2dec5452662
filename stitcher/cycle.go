package stitcher

import (
	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/stack"
)

// hasNonProductiveCycle reports whether p's edge list revisits a node
// through a span of edges that neither pushes nor pops a symbol — a loop
// that would repeat forever without making progress on the symbol stack.
// A revisit whose span includes at least one push or pop is a productive
// cycle and is allowed (bounded instead by Config.MaxWorkPerPhase).
func hasNonProductiveCycle(g *graph.StackGraph, p *stack.PartialPath) bool {
	if len(p.Edges) == 0 {
		return false
	}
	firstSeenAt := map[graph.NodeHandle]int{p.Edges[0].Source: 0}
	for i, e := range p.Edges {
		if start, ok := firstSeenAt[e.Sink]; ok {
			if !spanIsProductive(g, p.Edges[start:i+1]) {
				return true
			}
		}
		firstSeenAt[e.Sink] = i + 1
	}
	return false
}

func spanIsProductive(g *graph.StackGraph, edges []graph.Edge) bool {
	for _, e := range edges {
		n, ok := g.Node(e.Sink)
		if !ok {
			continue
		}
		if n.Kind.IsPush() || n.Kind.IsPop() {
			return true
		}
	}
	return false
}
