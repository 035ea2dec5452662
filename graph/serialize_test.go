package graph_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/stackgraph/graph"
)

func buildSampleGraph(t *testing.T) *graph.StackGraph {
	t.Helper()
	g := graph.New()
	file, err := g.AddFile("main.py")
	require.NoError(t, err)
	sym := g.AddSymbol("main")

	scope, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindScope})
	require.NoError(t, err)
	def, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindDefinition, Symbol: sym})
	require.NoError(t, err)
	push, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindPushScopedSymbol, Symbol: sym, ScopeNode: scope})
	require.NoError(t, err)

	_, err = g.AddEdge(g.Root(), push, 0)
	require.NoError(t, err)
	_, err = g.AddEdge(scope, def, 0)
	require.NoError(t, err)
	return g
}

func TestDocumentRoundTrip(t *testing.T) {
	g := buildSampleGraph(t)

	doc := graph.ToDocument(g, graph.IdentityFilter)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded graph.Document
	require.NoError(t, json.Unmarshal(data, &decoded))

	rebuilt, err := graph.FromDocument(&decoded)
	require.NoError(t, err)

	redoc := graph.ToDocument(rebuilt, graph.IdentityFilter)
	assert.Equal(t, doc, redoc)
	assert.Len(t, redoc.Nodes, len(g.NodeHandles()))
	assert.Len(t, redoc.Edges, 2)
}

func TestDocument_FilterExcludesFile(t *testing.T) {
	g := buildSampleGraph(t)
	_, err := g.AddFile("other.py")
	require.NoError(t, err)

	filter := excludeFileFilter{excluded: "other.py"}
	doc := graph.ToDocument(g, filter)

	for _, f := range doc.Files {
		assert.NotEqual(t, "other.py", f)
	}
}

type excludeFileFilter struct{ excluded string }

func (f excludeFileFilter) IncludeFile(_ graph.FileHandle, path string) bool {
	return path != f.excluded
}
func (f excludeFileFilter) IncludeNode(graph.NodeHandle, *graph.Node) bool { return true }
