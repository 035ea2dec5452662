// Package graph implements the stack graph data model: interned arenas of
// symbols and files, and the nodes and edges of a single StackGraph.
package graph

// handle is the shared representation behind every handle type in this
// package: a one-based index into an Arena. Zero is reserved to mean
// "absent" so a zero-valued handle field in a struct literal reads as
// unset rather than as a reference to the first element.
type handle interface {
	~uint32
}

// SymbolHandle addresses an interned symbol name.
type SymbolHandle uint32

// FileHandle addresses an interned file path.
type FileHandle uint32

// NodeHandle addresses a Node within a StackGraph.
type NodeHandle uint32

// EdgeHandle addresses an Edge within a StackGraph.
type EdgeHandle uint32

// IsNil reports whether h is the reserved zero handle.
func (h SymbolHandle) IsNil() bool { return h == 0 }

// IsNil reports whether h is the reserved zero handle.
func (h FileHandle) IsNil() bool { return h == 0 }

// IsNil reports whether h is the reserved zero handle.
func (h NodeHandle) IsNil() bool { return h == 0 }

// IsNil reports whether h is the reserved zero handle.
func (h EdgeHandle) IsNil() bool { return h == 0 }
