package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/viant/stackgraph/construct"
	"github.com/viant/stackgraph/database"
	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/logging"
	"github.com/viant/stackgraph/stack"
	"github.com/viant/stackgraph/stats"
	"github.com/viant/stackgraph/stitcher"
)

// FileStatusSource is the (path, content hash) -> status query that lets
// Indexer skip files it has already indexed. database.FileTags and
// database/sqlitedb.Store both satisfy it.
type FileStatusSource interface {
	FileStatus(path string, hash uint64) (database.FileStatus, error)
	TagFile(path string, hash uint64) error
}

// PathSink receives the partial paths extracted from one indexing run.
// *database.Database satisfies it.
type PathSink interface {
	AddPartialPath(path *stack.PartialPath)
}

// IndexResult summarizes one Indexer.Run call.
type IndexResult struct {
	FilesIndexed int
	FilesSkipped int
	Report       *stats.Report
}

// Indexer walks a project tree, builds a graph per source file via a
// caller-supplied construct.Builder, extracts its minimal paths, and
// inserts them into a PathSink — the glue the out-of-scope graph
// construction DSL needs to populate a Database for a whole repository
// (SPEC_FULL.md §4.6's "Batch indexing" expansion). It contains no
// graph-construction logic of its own.
type Indexer struct {
	Builder     construct.Builder
	Config      *stitcher.Config
	Concurrency int
	// Extensions restricts which file names are considered source files.
	// A nil or empty slice means every regular file is a candidate.
	Extensions []string
	// Logger, if set, receives one InsertBatch record per merged file and
	// one Error record per build/merge failure.
	Logger *logging.Logger
}

// NewIndexer returns an Indexer with the given builder and stitcher
// config. Concurrency below 1 is treated as 1 (sequential).
func NewIndexer(builder construct.Builder, cfg *stitcher.Config, concurrency int) *Indexer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Indexer{Builder: builder, Config: cfg, Concurrency: concurrency}
}

// fileGraph pairs a successfully built per-file graph with the path it
// came from, so merge errors can name the offending file.
type fileGraph struct {
	path string
	g    *graph.StackGraph
	err  error
}

// Run walks root for source files, skips ones whose FileStatus is
// Indexed per status, builds the rest concurrently (bounded by
// idx.Concurrency, grounded on the teacher's plain-goroutine style —
// no worker-pool library, see DESIGN.md), merges every built graph into
// g, extracts g's minimal paths, and inserts the result into sink.
// Building happens in parallel since each file's graph is produced
// independently; merging and insertion are sequential, matching §5's
// single-writer database policy.
//
// g is caller-owned and long-lived across repeated Run calls against the
// same project: a NodeHandle a sqlitedb.Store persisted from an earlier
// run is only meaningful against the graph instance that produced it, so
// Run must extend that instance rather than build a fresh one each time.
func (idx *Indexer) Run(ctx context.Context, root string, g *graph.StackGraph, status FileStatusSource, sink PathSink) (*IndexResult, error) {
	paths, err := idx.discoverFiles(root)
	if err != nil {
		return nil, fmt.Errorf("repository: discovering files under %s: %w", root, err)
	}

	result := &IndexResult{Report: stats.NewReport()}
	var toBuild []string
	hashes := make(map[string]uint64)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("repository: reading %s: %w", p, err)
		}
		hash, err := graph.Hash(data)
		if err != nil {
			return nil, fmt.Errorf("repository: hashing %s: %w", p, err)
		}
		st, err := status.FileStatus(p, hash)
		if err != nil {
			return nil, fmt.Errorf("repository: checking status of %s: %w", p, err)
		}
		if st == database.Indexed {
			result.FilesSkipped++
			continue
		}
		toBuild = append(toBuild, p)
		hashes[p] = hash
	}

	built := idx.buildConcurrently(ctx, toBuild)

	for _, fg := range built {
		if fg.err != nil {
			if idx.Logger != nil {
				idx.Logger.Error(fg.path, fg.err)
			}
			return nil, fmt.Errorf("repository: building %s: %w", fg.path, fg.err)
		}
		if err := g.AddFromGraph(fg.g); err != nil {
			if idx.Logger != nil {
				idx.Logger.Error(fg.path, err)
			}
			return nil, fmt.Errorf("repository: merging %s: %w", fg.path, err)
		}
		if err := status.TagFile(fg.path, hashes[fg.path]); err != nil {
			return nil, fmt.Errorf("repository: tagging %s: %w", fg.path, err)
		}
		if idx.Logger != nil {
			idx.Logger.InsertBatch(fg.path, len(fg.g.NodeHandles()))
		}
		result.FilesIndexed++
	}

	extracted, report, err := stitcher.ExtractMinimalPaths(g, idx.Config, nil)
	if err != nil {
		return result, err
	}
	result.Report.Merge(report)

	for _, p := range extracted {
		sink.AddPartialPath(p)
	}
	return result, nil
}

// buildConcurrently runs idx.Builder.BuildFile for every path in paths,
// at most idx.Concurrency at a time, via a buffered-channel semaphore.
// Results preserve paths' input order so callers get deterministic error
// reporting and merge order.
func (idx *Indexer) buildConcurrently(ctx context.Context, paths []string) []fileGraph {
	results := make([]fileGraph, len(paths))
	sem := make(chan struct{}, idx.Concurrency)
	var wg sync.WaitGroup

	for i, p := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, p string) {
			defer wg.Done()
			defer func() { <-sem }()

			data, err := os.ReadFile(p)
			if err != nil {
				results[i] = fileGraph{path: p, err: err}
				return
			}
			g, err := idx.Builder.BuildFile(ctx, p, data)
			results[i] = fileGraph{path: p, g: g, err: err}
		}(i, p)
	}
	wg.Wait()
	return results
}

// discoverFiles returns every regular file under root matching
// idx.Extensions, sorted for deterministic build order.
func (idx *Indexer) discoverFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if len(idx.Extensions) > 0 && !hasAnySuffix(p, idx.Extensions) {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func hasAnySuffix(path string, suffixes []string) bool {
	ext := filepath.Ext(path)
	for _, s := range suffixes {
		if ext == s {
			return true
		}
	}
	return false
}
