// Package construct defines the boundary between stack graph construction
// (the tree-sitter based DSL that turns source text into nodes and edges,
// out of scope for this module) and everything downstream that only needs
// a finished *graph.StackGraph per file.
package construct

import (
	"context"

	"github.com/viant/stackgraph/graph"
)

// Builder turns one file's source into a StackGraph. A real deployment
// wires in the tree-sitter DSL; repository.Indexer only depends on this
// interface, never on a parser directly.
type Builder interface {
	BuildFile(ctx context.Context, file string, source []byte) (*graph.StackGraph, error)
}
