package construct

import (
	"context"

	"github.com/viant/stackgraph/graph"
)

// FixtureFunc populates a freshly created graph for one file, already
// containing fh as its sole registered file. It is handed the graph
// directly rather than a (nodes, edges) slice pair so it can use AddEdge's
// error return and reference nodes it just created, the same way a real
// builder would emit nodes as it walks a syntax tree.
type FixtureFunc func(g *graph.StackGraph, fh graph.FileHandle) error

// LiteralBuilder is the construct.Builder the core ships in place of the
// out-of-scope tree-sitter DSL: it ignores the source bytes entirely and
// looks up a hand-written FixtureFunc registered for the file path,
// matching the teacher's "build fixtures by hand, no parsing" test
// texture (inspector/golang's literal *graph.Type/*graph.Field trees).
// It exists for tests and examples, never for a real indexing run.
type LiteralBuilder struct {
	fixtures map[string]FixtureFunc
}

// NewLiteralBuilder returns an empty LiteralBuilder ready for Register calls.
func NewLiteralBuilder() *LiteralBuilder {
	return &LiteralBuilder{fixtures: make(map[string]FixtureFunc)}
}

// Register associates file with fn. A later BuildFile(ctx, file, ...) call
// invokes fn against a fresh graph.
func (b *LiteralBuilder) Register(file string, fn FixtureFunc) {
	b.fixtures[file] = fn
}

// BuildFile implements Builder. source is accepted for interface
// conformance and otherwise unused.
func (b *LiteralBuilder) BuildFile(_ context.Context, file string, _ []byte) (*graph.StackGraph, error) {
	fn, ok := b.fixtures[file]
	if !ok {
		return nil, &UnregisteredFileError{File: file}
	}

	g := graph.New()
	fh, err := g.AddFile(file)
	if err != nil {
		return nil, err
	}
	if err := fn(g, fh); err != nil {
		return nil, err
	}
	return g, nil
}
