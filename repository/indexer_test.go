package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/stackgraph/construct"
	"github.com/viant/stackgraph/database"
	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/repository"
	"github.com/viant/stackgraph/stack"
	"github.com/viant/stackgraph/stitcher"
)

func TestIndexer_Run_BuildsAndSkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.py")
	utilPath := filepath.Join(dir, "util.py")
	require.NoError(t, os.WriteFile(mainPath, []byte("def main(): pass\n"), 0o644))
	require.NoError(t, os.WriteFile(utilPath, []byte("def helper(): pass\n"), 0o644))

	builder := construct.NewLiteralBuilder()
	builder.Register(mainPath, func(g *graph.StackGraph, fh graph.FileHandle) error {
		sym := g.AddSymbol("main")
		def, err := g.AddNode(graph.Node{File: fh, Kind: graph.NodeKindDefinition, Symbol: sym})
		if err != nil {
			return err
		}
		_, err = g.AddEdge(g.Root(), def, 0)
		return err
	})
	builder.Register(utilPath, func(g *graph.StackGraph, fh graph.FileHandle) error {
		sym := g.AddSymbol("helper")
		def, err := g.AddNode(graph.Node{File: fh, Kind: graph.NodeKindDefinition, Symbol: sym})
		if err != nil {
			return err
		}
		_, err = g.AddEdge(g.Root(), def, 0)
		return err
	})

	idx := repository.NewIndexer(builder, stitcher.NewConfig(), 2)
	idx.Extensions = []string{".py"}

	g := graph.New()
	tags := database.NewFileTags()
	sink := database.New(g.Root())

	result, err := idx.Run(context.Background(), dir, g, tags, sink)
	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesIndexed)
	assert.Equal(t, 0, result.FilesSkipped)

	found, err := sink.FindCandidates(stack.Trivial(g.Root()))
	require.NoError(t, err)
	assert.NotEmpty(t, found)

	result, err = idx.Run(context.Background(), dir, g, tags, sink)
	require.NoError(t, err)
	assert.Equal(t, 0, result.FilesIndexed)
	assert.Equal(t, 2, result.FilesSkipped)
}

// TestIndexer_Run_DetectsOutdatedFileButDoesNotReindexInPlace documents a
// scope boundary: g is append-only (§5's "Arenas and graphs are
// append-only" shared resource policy), so a file already merged into g
// cannot be re-merged once its content changes — AddFromGraph refuses
// the second file registration. A real incremental reindex of a changed
// file needs a fresh graph and database; Indexer only detects the
// Outdated status, it does not attempt an in-place rebuild.
func TestIndexer_Run_DetectsOutdatedFileButDoesNotReindexInPlace(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(mainPath, []byte("def main(): pass\n"), 0o644))

	builder := construct.NewLiteralBuilder()
	builder.Register(mainPath, func(g *graph.StackGraph, fh graph.FileHandle) error {
		sym := g.AddSymbol("main")
		def, err := g.AddNode(graph.Node{File: fh, Kind: graph.NodeKindDefinition, Symbol: sym})
		if err != nil {
			return err
		}
		_, err = g.AddEdge(g.Root(), def, 0)
		return err
	})

	idx := repository.NewIndexer(builder, stitcher.NewConfig(), 1)
	idx.Extensions = []string{".py"}

	g := graph.New()
	tags := database.NewFileTags()
	sink := database.New(g.Root())

	_, err := idx.Run(context.Background(), dir, g, tags, sink)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(mainPath, []byte("def main(): return 1\n"), 0o644))

	data, err := os.ReadFile(mainPath)
	require.NoError(t, err)
	hash, err := graph.Hash(data)
	require.NoError(t, err)
	status, err := tags.FileStatus(mainPath, hash)
	require.NoError(t, err)
	assert.Equal(t, database.Outdated, status)

	_, err = idx.Run(context.Background(), dir, g, tags, sink)
	var dup *graph.DuplicateFileError
	require.ErrorAs(t, err, &dup)
}
