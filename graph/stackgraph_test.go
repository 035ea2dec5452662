package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/stackgraph/graph"
)

func TestNew_SingletonsExist(t *testing.T) {
	g := graph.New()
	root, ok := g.Node(g.Root())
	require.True(t, ok)
	assert.Equal(t, graph.NodeKindRoot, root.Kind)

	jts, ok := g.Node(g.JumpToScope())
	require.True(t, ok)
	assert.Equal(t, graph.NodeKindJumpToScope, jts.Kind)
}

func TestAddFile_DuplicateRejected(t *testing.T) {
	g := graph.New()
	_, err := g.AddFile("a.py")
	require.NoError(t, err)

	_, err = g.AddFile("a.py")
	require.Error(t, err)
	var dup *graph.DuplicateFileError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a.py", dup.Path)
}

func TestAddSymbol_Interns(t *testing.T) {
	g := graph.New()
	h1 := g.AddSymbol("foo")
	h2 := g.AddSymbol("foo")
	h3 := g.AddSymbol("bar")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestAddNode_RejectsUnknownSymbol(t *testing.T) {
	g := graph.New()
	file, err := g.AddFile("a.py")
	require.NoError(t, err)
	_, err = g.AddNode(graph.Node{File: file, Kind: graph.NodeKindPushSymbol, Symbol: 999})
	require.Error(t, err)
	var malformed *graph.MalformedNodeError
	require.ErrorAs(t, err, &malformed)
}

func TestAddNode_PushScopedSymbolRequiresScopeNode(t *testing.T) {
	g := graph.New()
	file, err := g.AddFile("a.py")
	require.NoError(t, err)
	sym := g.AddSymbol("foo")

	scope, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindScope})
	require.NoError(t, err)

	_, err = g.AddNode(graph.Node{File: file, Kind: graph.NodeKindPushScopedSymbol, Symbol: sym, ScopeNode: scope})
	require.NoError(t, err)

	push, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindPushSymbol, Symbol: sym})
	require.NoError(t, err)
	_, err = g.AddNode(graph.Node{File: file, Kind: graph.NodeKindPushScopedSymbol, Symbol: sym, ScopeNode: push})
	require.Error(t, err)
}

func TestPreferredOutgoingEdges_ShadowsHigherPrecedence(t *testing.T) {
	g := graph.New()
	file, err := g.AddFile("a.py")
	require.NoError(t, err)
	sym := g.AddSymbol("foo")
	a, _ := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindPushSymbol, Symbol: sym})
	b, _ := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindPushSymbol, Symbol: sym})
	c, _ := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindPushSymbol, Symbol: sym})

	_, err = g.AddEdge(a, b, 1)
	require.NoError(t, err)
	_, err = g.AddEdge(a, c, 1)
	require.NoError(t, err)

	preferred := g.PreferredOutgoingEdges(a)
	require.Len(t, preferred, 2) // distinct sinks: both kept

	g2 := graph.New()
	file2, _ := g2.AddFile("b.py")
	x, _ := g2.AddNode(graph.Node{File: file2, Kind: graph.NodeKindScope})
	y, _ := g2.AddNode(graph.Node{File: file2, Kind: graph.NodeKindScope})
	_, err = g2.AddEdge(x, y, 1)
	require.NoError(t, err)
	_, err = g2.AddEdge(x, y, 0)
	require.NoError(t, err)

	preferred2 := g2.PreferredOutgoingEdges(x)
	require.Len(t, preferred2, 1)
	e, _ := g2.Edge(preferred2[0])
	assert.Equal(t, int32(0), e.Precedence)
}

func TestAddFromGraph_SplicesAndRemaps(t *testing.T) {
	src := graph.New()
	file, _ := src.AddFile("lib.py")
	sym := src.AddSymbol("thing")
	scope, _ := src.AddNode(graph.Node{File: file, Kind: graph.NodeKindScope})
	push, _ := src.AddNode(graph.Node{File: file, Kind: graph.NodeKindPushScopedSymbol, Symbol: sym, ScopeNode: scope})
	_, _ = src.AddEdge(src.Root(), push, 0)

	dst := graph.New()
	require.NoError(t, dst.AddFromGraph(src))

	fh, ok := dst.FileHandleOf("lib.py")
	require.True(t, ok)
	assert.NotZero(t, fh)

	found := false
	for _, nh := range dst.NodeHandles() {
		n, _ := dst.Node(nh)
		if n.Kind == graph.NodeKindPushScopedSymbol {
			found = true
			scopeNode, ok := dst.Node(n.ScopeNode)
			require.True(t, ok)
			assert.Equal(t, graph.NodeKindScope, scopeNode.Kind)
		}
	}
	assert.True(t, found)
}

func TestAddFromGraph_DuplicateFileReported(t *testing.T) {
	src := graph.New()
	_, _ = src.AddFile("dup.py")

	dst := graph.New()
	_, _ = dst.AddFile("dup.py")

	err := dst.AddFromGraph(src)
	require.Error(t, err)
	var dup *graph.DuplicateFileError
	require.ErrorAs(t, err, &dup)
}
