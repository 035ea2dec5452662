package graph

import "fmt"

// DuplicateFileError is returned when a file path is added to a StackGraph
// (directly, or by splicing in another graph via AddFromGraph) that is
// already present. It carries the handle of the file already registered so
// callers can decide how to reconcile the two graphs.
type DuplicateFileError struct {
	Path     string
	Existing FileHandle
}

func (e *DuplicateFileError) Error() string {
	return fmt.Sprintf("file %q already registered as handle %d", e.Path, e.Existing)
}

// MalformedNodeError is returned when a node references a symbol, file, or
// scope node that does not exist in the graph it is being added to.
type MalformedNodeError struct {
	Reason string
}

func (e *MalformedNodeError) Error() string { return "malformed node: " + e.Reason }
