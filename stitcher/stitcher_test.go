package stitcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/stackgraph/database"
	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/stitcher"
)

// buildMainPy mirrors the scenario 1 root partial path: a single edge
// root -> definition(__main__).
func buildMainPy(t *testing.T) (*graph.StackGraph, graph.NodeHandle) {
	t.Helper()
	g := graph.New()
	file, err := g.AddFile("main.py")
	require.NoError(t, err)
	sym := g.AddSymbol("__main__")

	def, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindDefinition, Symbol: sym})
	require.NoError(t, err)
	_, err = g.AddEdge(g.Root(), def, 0)
	require.NoError(t, err)
	return g, def
}

func TestExtractMinimalPaths_ProducesRootAnchoredPath(t *testing.T) {
	g, def := buildMainPy(t)
	cfg := stitcher.NewConfig()

	paths, report, err := stitcher.ExtractMinimalPaths(g, cfg, nil)
	require.NoError(t, err)

	found := false
	for _, p := range paths {
		if p.Start == g.Root() && p.End == def {
			found = true
		}
	}
	assert.True(t, found, "expected a root-to-definition partial path among extracted paths")
	assert.Greater(t, report.Distribution("node_visits").Total(), 0)
}

func TestExtractMinimalPaths_EmptyGraphEmitsNothing(t *testing.T) {
	g := graph.New()
	cfg := stitcher.NewConfig()

	paths, _, err := stitcher.ExtractMinimalPaths(g, cfg, nil)
	require.NoError(t, err)
	// root and jump-to-scope are both sinkless, so no edge exists to extend through.
	assert.Empty(t, paths)
}

func TestResolveReferences_FindsDefinitionThroughDatabase(t *testing.T) {
	g, def := buildMainPy(t)
	cfg := stitcher.NewConfig()

	// A reference to __main__ in a different, importing file; an
	// unqualified name lookup is an edge straight to the shared root, the
	// same as a real deployment's per-file graph would emit.
	refFile, err := g.AddFile("importer.py")
	require.NoError(t, err)
	sym := g.AddSymbol("__main__")
	ref, err := g.AddNode(graph.Node{File: refFile, Kind: graph.NodeKindReference, Symbol: sym})
	require.NoError(t, err)
	_, err = g.AddEdge(ref, g.Root(), 0)
	require.NoError(t, err)

	extracted, _, err := stitcher.ExtractMinimalPaths(g, cfg, nil)
	require.NoError(t, err)

	db := database.New(g.Root())
	for _, p := range extracted {
		db.AddPartialPath(p)
	}

	results, _, err := stitcher.ResolveReferences(g, []graph.NodeHandle{ref}, db, cfg, nil)
	require.NoError(t, err)

	require.Contains(t, results, ref)
	found := false
	for _, p := range results[ref] {
		if p.End == def {
			found = true
		}
	}
	assert.True(t, found, "expected a complete path from ref to def")
}

func TestResolveReferences_NoReachableDefinitionEmitsNothing(t *testing.T) {
	g := graph.New()
	file, err := g.AddFile("lonely.py")
	require.NoError(t, err)
	sym := g.AddSymbol("nothing")
	ref, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindReference, Symbol: sym})
	require.NoError(t, err)

	db := database.New(g.Root())
	cfg := stitcher.NewConfig()

	results, _, err := stitcher.ResolveReferences(g, []graph.NodeHandle{ref}, db, cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, results[ref])
}
