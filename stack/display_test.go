package stack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/stack"
)

func TestDisplay_RootToDefinition(t *testing.T) {
	g := graph.New()
	file, err := g.AddFile("main.py")
	require.NoError(t, err)
	sym := g.AddSymbol("__main__")

	def, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindDefinition, Symbol: sym})
	require.NoError(t, err)

	eh, err := g.AddEdge(g.Root(), def, 0)
	require.NoError(t, err)
	e, _ := g.Edge(eh)

	p, err := stack.FromEdge(g, e)
	require.NoError(t, err)

	assert.Equal(t, "<__main__,%1> ($1) [root] -> [main.py(0) definition __main__] <%1> ($1)", p.Display(g))
}
