package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/stackgraph/database"
	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/stack"
)

// buildMainPy mirrors the "class field through function parameter"
// scenario's root partial path: a single edge root -> definition(__main__).
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

func TestFindCandidatePartialPathsFromRoot_MatchesBottomSymbol(t *testing.T) {
	g, def := buildMainPy(t)
	db := database.New(g.Root())

	eh := g.OutgoingEdges(g.Root())[0]
	e, _ := g.Edge(eh)
	p, err := stack.FromEdge(g, e)
	require.NoError(t, err)
	db.AddPartialPath(p)

	bazSym := g.AddSymbol("baz")
	dotSym := g.AddSymbol(".")
	mainHandle := p.SymbolPre.Symbols[0].Symbol

	query := &stack.SymbolStack{Symbols: []stack.ScopedSymbol{
		{Symbol: bazSym}, {Symbol: dotSym}, {Symbol: mainHandle},
	}}

	found := db.FindCandidatePartialPathsFromRoot(query)
	require.Len(t, found, 1)
	assert.Equal(t, def, found[0].End)
	assert.Equal(t, "<__main__,%1> ($1) [root] -> [main.py(0) definition __main__] <%1> ($1)", found[0].Display(g))
}

func TestFindCandidatePartialPathsFromRoot_EmptyQueryReturnsAll(t *testing.T) {
	g, _ := buildMainPy(t)
	db := database.New(g.Root())
	eh := g.OutgoingEdges(g.Root())[0]
	e, _ := g.Edge(eh)
	p, _ := stack.FromEdge(g, e)
	db.AddPartialPath(p)

	found := db.FindCandidatePartialPathsFromRoot(nil)
	assert.Len(t, found, 1)
}

func TestFindCandidatePartialPathsFromRoot_NoMatchingSymbol(t *testing.T) {
	g, _ := buildMainPy(t)
	db := database.New(g.Root())
	eh := g.OutgoingEdges(g.Root())[0]
	e, _ := g.Edge(eh)
	p, _ := stack.FromEdge(g, e)
	db.AddPartialPath(p)

	other := g.AddSymbol("other")
	found := db.FindCandidatePartialPathsFromRoot(&stack.SymbolStack{Symbols: []stack.ScopedSymbol{{Symbol: other}}})
	assert.Empty(t, found)
}

func TestAddPartialPath_CoalescesDuplicates(t *testing.T) {
	g, _ := buildMainPy(t)
	db := database.New(g.Root())
	eh := g.OutgoingEdges(g.Root())[0]
	e, _ := g.Edge(eh)

	p1, _ := stack.FromEdge(g, e)
	p2, _ := stack.FromEdge(g, e)
	db.AddPartialPath(p1)
	db.AddPartialPath(p2)

	found := db.FindCandidatePartialPathsFromRoot(nil)
	assert.Len(t, found, 1)
}
