// Package stitcher implements the forward partial-path stitcher: the
// phase-based search that expands a frontier of partial paths against a
// source of candidate extensions, concatenating compatible pairs via
// package stack, discarding shadowed and non-productive-cyclic results,
// until the frontier goes dry or the configured work budget is spent.
package stitcher

import (
	"fmt"

	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/stack"
	"github.com/viant/stackgraph/stats"
)

// candidatesFunc returns the partial paths p may be extended by.
// Minimal-path mode turns p.End's file-local edges into single-edge
// paths; complete-path mode delegates to a database.CandidateSource,
// which needs p itself (not just p.End) to filter root-anchored
// candidates by p's own symbol-stack postcondition.
type candidatesFunc func(p *stack.PartialPath) ([]*stack.PartialPath, error)

// onExtendedFunc is invoked for every path that survives concatenation,
// depth, and cycle filtering in a phase. Minimal-path mode accepts every
// extension; complete-path mode accepts only those for which
// p.IsComplete(g) holds. The callback records its own acceptance-related
// metrics onto report.
type onExtendedFunc func(p *stack.PartialPath, report *stats.Report)

// run is the shared two-queue phase engine behind both ExtractMinimalPaths
// and ResolveReferences (§4.4). It drains queued into next-phase by, for
// each path P, querying candidatesFor(P.End) and concatenating each
// compatible candidate; at phase boundary the queues swap. It terminates
// when a phase produces no survivors, or cfg.MaxWorkPerPhase total
// concatenation attempts have been spent.
func run(g *graph.StackGraph, cfg *Config, cancel *CancellationFlag, seeds []*stack.PartialPath, candidatesFor candidatesFunc, onExtended onExtendedFunc) (*stats.Report, error) {
	report := stats.NewReport()
	queued := append([]*stack.PartialPath(nil), seeds...)
	phase := 0
	workDone := 0

	for len(queued) > 0 {
		if cancel != nil && cancel.Tripped() {
			return report, &Cancelled{Location: fmt.Sprintf("phase %d boundary", phase)}
		}
		report.Record(stats.MetricQueuedPerPhase, len(queued))

		var nextPhase []*stack.PartialPath
		processed := 0
		for _, p := range queued {
			processed++
			if cancel != nil && cfg.CancelPollInterval > 0 && processed%cfg.CancelPollInterval == 0 && cancel.Tripped() {
				return report, &Cancelled{Location: fmt.Sprintf("phase %d, path %d", phase, processed)}
			}

			candidates, err := candidatesFor(p)
			if err != nil {
				return report, &StorageError{Err: err}
			}
			report.Record(stats.MetricCandidatesPerNode, len(candidates))
			if p.End == g.Root() {
				report.Record(stats.MetricRootCandidates, len(candidates))
			}

			extensions := 0
			for _, cand := range candidates {
				if cfg.MaxWorkPerPhase > 0 && workDone >= cfg.MaxWorkPerPhase {
					break
				}
				workDone++

				extended, err := stack.Concat(p, cand)
				if err != nil {
					// ConcatenationError: expected, local, never surfaced.
					continue
				}
				extended = stack.ResolveJumps(g, extended)

				if cfg.MaxSymbolStackDepth > 0 && len(extended.SymbolPre.Symbols) > cfg.MaxSymbolStackDepth {
					continue
				}
				if cfg.DetectSimilarPaths && !cfg.TraverseCyclicGreedy && hasNonProductiveCycle(g, extended) {
					continue
				}

				extensions++
				report.Record(stats.MetricMaximalPathLength, len(extended.Edges))
				onExtended(extended, report)
				nextPhase = append(nextPhase, extended)
			}
			report.Record(stats.MetricExtensionsPerNode, extensions)
			if p.End == g.Root() {
				report.Record(stats.MetricRootExtensions, extensions)
			}
			report.Record(stats.MetricNodeVisits, 1)
			if p.End == g.Root() {
				report.Record(stats.MetricRootVisits, 1)
			}
		}
		report.Record(stats.MetricProcessedPerPhase, processed)
		if cfg.Logger != nil {
			cfg.Logger.PhaseBoundary(phase, len(queued), processed)
		}

		if cfg.DetectSimilarPaths {
			nextPhase = applyShadowing(nextPhase)
		}
		queued = nextPhase
		phase++
	}

	return report, nil
}
