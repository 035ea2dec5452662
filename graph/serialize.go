package graph

import "fmt"

// Filter selects which files and nodes are included when a StackGraph is
// serialized. IdentityFilter includes everything.
type Filter interface {
	IncludeFile(h FileHandle, path string) bool
	IncludeNode(h NodeHandle, n *Node) bool
}

type identityFilter struct{}

func (identityFilter) IncludeFile(FileHandle, string) bool { return true }
func (identityFilter) IncludeNode(NodeHandle, *Node) bool  { return true }

// IdentityFilter includes every file and node.
var IdentityFilter Filter = identityFilter{}

// Document is the stable JSON schema for a StackGraph: nodes in
// handle-order, edges as {source, sink, precedence}. Node and edge
// endpoints are positions into the Nodes slice rather than raw handles, so
// the schema is independent of handle renumbering on reload.
type Document struct {
	Symbols []string  `json:"symbols"`
	Files   []string  `json:"files"`
	Nodes   []DocNode `json:"nodes"`
	Edges   []DocEdge `json:"edges"`
}

// DocNode is the serialized form of a Node.
type DocNode struct {
	File string `json:"file,omitempty"`
	LocalID uint32 `json:"local_id"`
	Kind    string `json:"kind"`
	Symbol  string `json:"symbol,omitempty"`
	// ScopeNode is 1-based position into Document.Nodes of the attached
	// scope, or 0 if none.
	ScopeNode  int    `json:"scope_node,omitempty"`
	IsExported bool   `json:"is_exported,omitempty"`
	SyntaxType string `json:"syntax_type,omitempty"`
}

// DocEdge is the serialized form of an Edge; Source and Sink are 0-based
// positions into Document.Nodes.
type DocEdge struct {
	Source     int   `json:"source"`
	Sink       int   `json:"sink"`
	Precedence int32 `json:"precedence"`
}

// ToDocument serializes g, keeping only the files and nodes filter
// includes (plus the two singleton nodes, which are always kept).
func ToDocument(g *StackGraph, filter Filter) *Document {
	doc, _ := BuildDocument(g, filter, nil)
	return doc
}

// BuildDocument serializes g like ToDocument, but forces every handle in
// required to be kept regardless of filter (for callers that must keep
// every node referenced by a partial path they are also serializing). It also returns the handle->position
// map used for Nodes, so callers can translate their own references using
// the same indices.
func BuildDocument(g *StackGraph, filter Filter, required map[NodeHandle]bool) (*Document, map[NodeHandle]int) {
	if filter == nil {
		filter = IdentityFilter
	}
	doc := &Document{}

	for _, h := range g.symbols.Handles() {
		v, _ := g.symbols.Value(h)
		doc.Symbols = append(doc.Symbols, v)
	}

	includedFiles := make(map[FileHandle]bool)
	for _, h := range g.files.handles() {
		path, _ := g.files.value(h)
		if filter.IncludeFile(h, path) {
			includedFiles[h] = true
		}
	}
	fileIndex := make(map[FileHandle]int)
	for _, h := range g.files.handles() {
		if !includedFiles[h] {
			continue
		}
		path, _ := g.files.value(h)
		fileIndex[h] = len(doc.Files)
		doc.Files = append(doc.Files, path)
	}

	var kept []NodeHandle
	for _, h := range g.NodeHandles() {
		n, _ := g.Node(h)
		switch {
		case h == g.root || h == g.jumpToScope:
			kept = append(kept, h)
		case required != nil && required[h]:
			kept = append(kept, h)
		case n.File != 0 && !includedFiles[n.File]:
			// owning file excluded: drop the node regardless of filter
		case filter.IncludeNode(h, n):
			kept = append(kept, h)
		}
	}

	nodeIndex := make(map[NodeHandle]int, len(kept))
	for i, h := range kept {
		nodeIndex[h] = i
	}

	for _, h := range kept {
		n, _ := g.Node(h)
		dn := DocNode{LocalID: n.LocalID, Kind: n.Kind.String(), IsExported: n.IsExported, SyntaxType: n.SyntaxType}
		if n.File != 0 {
			if fi, ok := fileIndex[n.File]; ok {
				dn.File = doc.Files[fi]
			}
		}
		if n.Symbol != 0 {
			sym, _ := g.Symbol(n.Symbol)
			dn.Symbol = sym
		}
		if n.Kind == NodeKindPushScopedSymbol {
			if si, ok := nodeIndex[n.ScopeNode]; ok {
				dn.ScopeNode = si + 1
			}
		}
		doc.Nodes = append(doc.Nodes, dn)
	}

	for _, eh := range g.edges.Handles() {
		e, _ := g.Edge(eh)
		si, sok := nodeIndex[e.Source]
		ti, tok := nodeIndex[e.Sink]
		if !sok || !tok {
			continue
		}
		doc.Edges = append(doc.Edges, DocEdge{Source: si, Sink: ti, Precedence: e.Precedence})
	}

	return doc, nodeIndex
}

func parseNodeKind(s string) (NodeKind, bool) {
	for k := NodeKindRoot; k <= NodeKindDefinition; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// FromDocument reconstructs a StackGraph from its serialized form.
func FromDocument(doc *Document) (*StackGraph, error) {
	g, _, err := FromDocumentWithHandles(doc)
	return g, err
}

// FromDocumentWithHandles behaves like FromDocument but also returns, for
// every position in doc.Nodes, the NodeHandle it was assigned in the new
// graph — callers that serialized auxiliary data (such as partial paths)
// using the same positional scheme use this to translate back.
func FromDocumentWithHandles(doc *Document) (*StackGraph, []NodeHandle, error) {
	g := New()
	for _, s := range doc.Symbols {
		g.AddSymbol(s)
	}
	for _, p := range doc.Files {
		if _, err := g.AddFile(p); err != nil {
			return nil, nil, err
		}
	}

	nodeHandles := make([]NodeHandle, len(doc.Nodes))
	for i, dn := range doc.Nodes {
		kind, ok := parseNodeKind(dn.Kind)
		if !ok {
			return nil, nil, fmt.Errorf("graph: unknown node kind %q", dn.Kind)
		}
		if kind == NodeKindRoot {
			nodeHandles[i] = g.Root()
			continue
		}
		if kind == NodeKindJumpToScope {
			nodeHandles[i] = g.JumpToScope()
			continue
		}
		n := Node{LocalID: dn.LocalID, Kind: kind, IsExported: dn.IsExported, SyntaxType: dn.SyntaxType}
		if dn.File != "" {
			fh, ok := g.FileHandleOf(dn.File)
			if !ok {
				return nil, nil, fmt.Errorf("graph: node references unknown file %q", dn.File)
			}
			n.File = fh
		}
		if dn.Symbol != "" {
			n.Symbol = g.AddSymbol(dn.Symbol)
		}
		if dn.ScopeNode != 0 {
			if dn.ScopeNode < 1 || dn.ScopeNode > i {
				return nil, nil, fmt.Errorf("graph: node %d references its scope node out of order", i)
			}
			n.ScopeNode = nodeHandles[dn.ScopeNode-1]
		}
		h, err := g.AddNode(n)
		if err != nil {
			return nil, nil, err
		}
		nodeHandles[i] = h
	}

	for _, de := range doc.Edges {
		if de.Source < 0 || de.Source >= len(nodeHandles) || de.Sink < 0 || de.Sink >= len(nodeHandles) {
			return nil, nil, fmt.Errorf("graph: edge references an out-of-range node position")
		}
		if _, err := g.AddEdge(nodeHandles[de.Source], nodeHandles[de.Sink], de.Precedence); err != nil {
			return nil, nil, err
		}
	}

	return g, nodeHandles, nil
}
