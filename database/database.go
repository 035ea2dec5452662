// Package database indexes partial paths extracted by the stitcher so a
// later complete-path resolution can find, for any node or root-anchored
// symbol, the partial paths that might extend a path reaching it.
package database

import (
	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/stack"
)

// CandidateSource is implemented by anything the stitcher can query for
// candidate partial paths extending a running path: an in-memory
// Database, a SQLite-backed reader, or a DatabaseCandidates union of both.
// It takes the extending path itself, not just its end node, because a
// path ending at root is resolved by matching the bottom of its own
// symbol-stack postcondition against each candidate's root-symbol index
// (§4.6's find_candidates(partial_path, out_handles)) rather than by
// returning every root-anchored path regardless of symbol.
type CandidateSource interface {
	FindCandidates(path *stack.PartialPath) ([]*stack.PartialPath, error)
}

// Database is the in-memory partial-path index: by-node for non-root
// start nodes, and by-root-symbol for root-anchored paths, keyed by the
// symbol at the bottom of the precondition.
type Database struct {
	byNode       map[graph.NodeHandle][]*stack.PartialPath
	byRootSymbol map[graph.SymbolHandle][]*stack.PartialPath
	seen         map[string]bool
	root         graph.NodeHandle
}

// New returns an empty database for paths anchored in a graph whose
// singleton root node is root.
func New(root graph.NodeHandle) *Database {
	return &Database{
		byNode:       make(map[graph.NodeHandle][]*stack.PartialPath),
		byRootSymbol: make(map[graph.SymbolHandle][]*stack.PartialPath),
		seen:         make(map[string]bool),
		root:         root,
	}
}

// bottomSymbol returns the symbol anchoring a root-start partial path's
// precondition: the last element of its (top-first) concrete prefix, the
// symbol furthest from being popped next. A precondition with no concrete
// elements (all-variable) cannot be indexed by root symbol at all — such
// a path matches any root-anchored query and is kept unindexed by symbol;
// callers needing it back use FindCandidatePartialPathsFromNode(root).
func bottomSymbol(s stack.SymbolStack) (graph.SymbolHandle, bool) {
	if len(s.Symbols) == 0 {
		return 0, false
	}
	return s.Symbols[len(s.Symbols)-1].Symbol, true
}

// AddPartialPath inserts path, coalescing it with an existing entry that
// is structurally identical after variable renaming.
func (d *Database) AddPartialPath(path *stack.PartialPath) {
	key := pathKey(path)
	if d.seen[key] {
		return
	}
	d.seen[key] = true

	if path.Start == d.root {
		if sym, ok := bottomSymbol(path.SymbolPre); ok {
			d.byRootSymbol[sym] = append(d.byRootSymbol[sym], path)
			return
		}
	}
	d.byNode[path.Start] = append(d.byNode[path.Start], path)
}

// FindCandidatePartialPathsFromNode returns every stored path starting at
// node.
func (d *Database) FindCandidatePartialPathsFromNode(node graph.NodeHandle) []*stack.PartialPath {
	return append([]*stack.PartialPath(nil), d.byNode[node]...)
}

// FindCandidatePartialPathsFromRoot returns root-anchored paths. If
// symbolStack is non-nil, only paths whose root-symbol precondition
// unifies with the bottom symbol of symbolStack are returned; otherwise
// every root-anchored path is returned.
func (d *Database) FindCandidatePartialPathsFromRoot(symbolStack *stack.SymbolStack) []*stack.PartialPath {
	if symbolStack == nil {
		var out []*stack.PartialPath
		for _, paths := range d.byRootSymbol {
			out = append(out, paths...)
		}
		return out
	}
	sym, ok := bottomSymbol(*symbolStack)
	if !ok {
		var out []*stack.PartialPath
		for _, paths := range d.byRootSymbol {
			out = append(out, paths...)
		}
		return out
	}
	return append([]*stack.PartialPath(nil), d.byRootSymbol[sym]...)
}

// FindCandidates implements CandidateSource: if path ends at this
// database's root, paths whose root-symbol index matches the bottom of
// path.SymbolPost; otherwise every path starting at path.End.
func (d *Database) FindCandidates(path *stack.PartialPath) ([]*stack.PartialPath, error) {
	if path.End == d.root {
		return d.FindCandidatePartialPathsFromRoot(&path.SymbolPost), nil
	}
	return d.FindCandidatePartialPathsFromNode(path.End), nil
}

// DatabaseCandidates unions any number of CandidateSource instances
// (typically an in-memory Database plus a SQLite-backed reader).
type DatabaseCandidates struct {
	Sources []CandidateSource
}

func (c DatabaseCandidates) FindCandidates(path *stack.PartialPath) ([]*stack.PartialPath, error) {
	var out []*stack.PartialPath
	for _, src := range c.Sources {
		paths, err := src.FindCandidates(path)
		if err != nil {
			return nil, err
		}
		out = append(out, paths...)
	}
	return out, nil
}
