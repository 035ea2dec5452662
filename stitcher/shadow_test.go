package stitcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/stitcher"
)

// buildSequencedImportStar mirrors scenario 6: two distinct two-edge
// routes from root to the same definition, through different
// intermediate (identity) nodes so §4.2's edge-level shadowing (which
// only collapses edges sharing a sink) leaves both routes as raw
// candidates. Their edge-precedence sequences are [1,1] and [0,0]; once
// stitched they have identical endpoints and stack effects, so only
// §4.4's path-level shadowing (not the earlier edge-level one) can tell
// them apart, and only the lexicographically lower [0,0] route should
// survive.
func buildSequencedImportStar(t *testing.T) (*graph.StackGraph, graph.NodeHandle) {
	t.Helper()
	g := graph.New()
	file, err := g.AddFile("b.py")
	require.NoError(t, err)
	sym := g.AddSymbol("b")

	mid1, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindScope})
	require.NoError(t, err)
	mid2, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindScope})
	require.NoError(t, err)
	def, err := g.AddNode(graph.Node{File: file, Kind: graph.NodeKindDefinition, Symbol: sym})
	require.NoError(t, err)

	_, err = g.AddEdge(g.Root(), mid1, 1)
	require.NoError(t, err)
	_, err = g.AddEdge(mid1, def, 1)
	require.NoError(t, err)
	_, err = g.AddEdge(g.Root(), mid2, 0)
	require.NoError(t, err)
	_, err = g.AddEdge(mid2, def, 0)
	require.NoError(t, err)
	return g, def
}

func TestExtractMinimalPaths_ShadowingKeepsLowerPrecedenceOnly(t *testing.T) {
	g, def := buildSequencedImportStar(t)
	cfg := stitcher.NewConfig()

	paths, _, err := stitcher.ExtractMinimalPaths(g, cfg, nil)
	require.NoError(t, err)

	var rootToDef []int32
	for _, p := range paths {
		if p.Start == g.Root() && p.End == def {
			rootToDef = append(rootToDef, p.Edges[len(p.Edges)-1].Precedence)
		}
	}
	require.Len(t, rootToDef, 1, "shadowing should leave exactly one root-to-definition path")
	assert.Equal(t, int32(0), rootToDef[0])
}

func TestExtractMinimalPaths_ShadowingDisabledKeepsBoth(t *testing.T) {
	g, def := buildSequencedImportStar(t)
	cfg := stitcher.NewConfig()
	cfg.DetectSimilarPaths = false

	paths, _, err := stitcher.ExtractMinimalPaths(g, cfg, nil)
	require.NoError(t, err)

	var rootToDef int
	for _, p := range paths {
		if p.Start == g.Root() && p.End == def {
			rootToDef++
		}
	}
	assert.Equal(t, 2, rootToDef)
}
