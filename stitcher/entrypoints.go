package stitcher

import (
	"github.com/viant/stackgraph/database"
	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/stack"
	"github.com/viant/stackgraph/stats"
)

// ExtractMinimalPaths runs the stitcher in minimal-path mode over the
// whole of g: seeds are trivial one-node partial paths at every node,
// candidates are g's own (shadowing-preferred) outgoing edges turned into
// single-edge paths, and every surviving extension is returned — callers
// typically insert the result into a database.Database. cfg is required;
// there is no implicit default (§9's resolved Open Question).
func ExtractMinimalPaths(g *graph.StackGraph, cfg *Config, cancel *CancellationFlag) ([]*stack.PartialPath, *stats.Report, error) {
	var seeds []*stack.PartialPath
	for _, n := range g.NodeHandles() {
		seeds = append(seeds, stack.Trivial(n))
	}

	candidatesFor := func(p *stack.PartialPath) ([]*stack.PartialPath, error) {
		var out []*stack.PartialPath
		for _, eh := range g.PreferredOutgoingEdges(p.End) {
			e, ok := g.Edge(eh)
			if !ok {
				continue
			}
			candidate, err := stack.FromEdge(g, *e)
			if err != nil {
				return nil, err
			}
			out = append(out, stack.ResolveJumps(g, candidate))
		}
		return out, nil
	}

	var results []*stack.PartialPath
	onExtended := func(p *stack.PartialPath, report *stats.Report) {
		report.Record(stats.MetricAcceptedPathLength, len(p.Edges))
		results = append(results, p)
	}

	report, err := run(g, cfg, cancel, seeds, candidatesFor, onExtended)
	if err != nil {
		return results, report, err
	}
	return results, report, nil
}

// ResolveReferences runs the stitcher in complete-path mode from refs,
// the reference nodes in g, against candidates (an in-memory
// database.Database, a database/sqlitedb.Store, or a
// database.DatabaseCandidates union of both), returning every complete
// path grouped by its originating reference. cfg is required, per the
// same resolved Open Question as ExtractMinimalPaths.
//
// Unlike ExtractMinimalPaths this takes an explicit g: the spec's
// signature for this entry point elides it, but SeedAtReference and
// ResolveJumps both need the graph a reference node belongs to, and
// nothing else in scope can supply it.
func ResolveReferences(g *graph.StackGraph, refs []graph.NodeHandle, candidates database.CandidateSource, cfg *Config, cancel *CancellationFlag) (map[graph.NodeHandle][]*stack.PartialPath, *stats.Report, error) {
	combined := stats.NewReport()
	results := make(map[graph.NodeHandle][]*stack.PartialPath)

	candidatesFor := func(p *stack.PartialPath) ([]*stack.PartialPath, error) {
		return candidates.FindCandidates(p)
	}

	for _, ref := range refs {
		seed, err := stack.SeedAtReference(g, ref)
		if err != nil {
			return results, combined, &GraphBuildError{Err: err}
		}

		var accepted []*stack.PartialPath
		onExtended := func(p *stack.PartialPath, report *stats.Report) {
			if p.IsComplete(g) {
				report.Record(stats.MetricAcceptedPathLength, len(p.Edges))
				accepted = append(accepted, p)
			}
		}

		report, err := run(g, cfg, cancel, []*stack.PartialPath{seed}, candidatesFor, onExtended)
		combined.Merge(report)
		if err != nil {
			return results, combined, err
		}
		if len(accepted) > 0 {
			results[ref] = accepted
		}
	}

	return results, combined, nil
}
