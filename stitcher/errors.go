package stitcher

import "fmt"

// GraphBuildError wraps a failure building or sealing a graph prior to
// stitching; fatal to the current run.
type GraphBuildError struct {
	Err error
}

func (e *GraphBuildError) Error() string { return fmt.Sprintf("stitcher: graph build: %v", e.Err) }
func (e *GraphBuildError) Unwrap() error { return e.Err }

// CycleLimitExceeded reports that a productive cycle exceeded the
// configured symbol-stack depth bound; the offending path is dropped and
// the search continues, this error is never surfaced to callers.
type CycleLimitExceeded struct {
	Depth int
}

func (e *CycleLimitExceeded) Error() string {
	return fmt.Sprintf("stitcher: cycle limit exceeded at depth %d", e.Depth)
}

// Cancelled reports cooperative cancellation; Location names the phase
// boundary or in-phase checkpoint where the CancellationFlag was observed
// tripped.
type Cancelled struct {
	Location string
}

func (e *Cancelled) Error() string { return fmt.Sprintf("stitcher: cancelled at %s", e.Location) }

// StorageError wraps a failure from a CandidateSource or database backend.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("stitcher: storage: %v", e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
