// Package sqlitedb is the on-disk counterpart to database.Database: a
// modernc.org/sqlite-backed store so partial paths extracted from one
// process can be reused by another without re-running the stitcher over
// every file again. It implements database.CandidateSource and carries
// its own FileStatus table so a repository indexer can skip unchanged
// files on a re-run.
package sqlitedb

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/viant/stackgraph/database"
	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/stack"
)

const schema = `
CREATE TABLE IF NOT EXISTS partial_paths_by_node (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	node_key INTEGER NOT NULL,
	path_key TEXT NOT NULL,
	payload TEXT NOT NULL,
	UNIQUE(node_key, path_key)
);
CREATE INDEX IF NOT EXISTS idx_paths_by_node ON partial_paths_by_node(node_key);

CREATE TABLE IF NOT EXISTS partial_paths_by_root_symbol (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	path_key TEXT NOT NULL,
	payload TEXT NOT NULL,
	UNIQUE(symbol, path_key)
);
CREATE INDEX IF NOT EXISTS idx_paths_by_root_symbol ON partial_paths_by_root_symbol(symbol);

CREATE TABLE IF NOT EXISTS file_tags (
	path TEXT PRIMARY KEY,
	content_hash TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store is a SQLite-backed CandidateSource and FileStatus tracker. It
// stores symbols as their interned string form rather than raw
// graph.SymbolHandle values, since handles are only stable within the
// graph instance that produced them; a Store is always opened alongside
// the graph.StackGraph whose symbols and nodes it indexes, and rehydrates
// payload handles against that graph on read.
type Store struct {
	db   *sql.DB
	g    *graph.StackGraph
	root graph.NodeHandle
}

// Open opens (creating if necessary) a SQLite database at path, indexing
// partial paths against g whose root node is root.
func Open(path string, g *graph.StackGraph, root graph.NodeHandle) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitedb: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitedb: init schema: %w", err)
	}
	return &Store{db: db, g: g, root: root}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

type pathDoc struct {
	Start, End int
	SymbolPre  symDoc
	SymbolPost symDoc
	ScopePre   scopeDoc
	ScopePost  scopeDoc
	Edges      []edgeDoc
	NextVar    uint32
}

type symDoc struct {
	Symbols  []scopedSymDoc
	Variable uint32
}

type scopedSymDoc struct {
	Symbol string
	Scopes *scopeDoc
}

type scopeDoc struct {
	Scopes   []int
	Variable uint32
}

type edgeDoc struct {
	Source, Sink int
	Precedence   int32
}

// encode converts p into a document that stores symbols as their interned
// strings and nodes as their raw NodeHandle integers; node values are only
// meaningful against the graph instance the Store was opened with.
func (s *Store) encode(p *stack.PartialPath) ([]byte, error) {
	doc := pathDoc{
		Start:      int(p.Start),
		End:        int(p.End),
		SymbolPre:  s.encodeSymbolStack(p.SymbolPre),
		SymbolPost: s.encodeSymbolStack(p.SymbolPost),
		ScopePre:   s.encodeScopeStack(p.ScopePre),
		ScopePost:  s.encodeScopeStack(p.ScopePost),
		NextVar:    uint32(p.NextVar),
	}
	for _, e := range p.Edges {
		doc.Edges = append(doc.Edges, edgeDoc{Source: int(e.Source), Sink: int(e.Sink), Precedence: e.Precedence})
	}
	return json.Marshal(doc)
}

func (s *Store) encodeSymbolStack(st stack.SymbolStack) symDoc {
	out := symDoc{Variable: uint32(st.Variable)}
	for _, sym := range st.Symbols {
		text, _ := s.g.Symbol(sym.Symbol)
		sd := scopedSymDoc{Symbol: text}
		if sym.Scopes != nil {
			sc := s.encodeScopeStack(*sym.Scopes)
			sd.Scopes = &sc
		}
		out.Symbols = append(out.Symbols, sd)
	}
	return out
}

func (s *Store) encodeScopeStack(st stack.ScopeStack) scopeDoc {
	out := scopeDoc{Variable: uint32(st.Variable)}
	for _, n := range st.Scopes {
		out.Scopes = append(out.Scopes, int(n))
	}
	return out
}

func (s *Store) decode(payload []byte) (*stack.PartialPath, error) {
	var doc pathDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("sqlitedb: decode payload: %w", err)
	}
	p := &stack.PartialPath{
		Start:      graph.NodeHandle(doc.Start),
		End:        graph.NodeHandle(doc.End),
		SymbolPre:  s.decodeSymbolStack(doc.SymbolPre),
		SymbolPost: s.decodeSymbolStack(doc.SymbolPost),
		ScopePre:   s.decodeScopeStack(doc.ScopePre),
		ScopePost:  s.decodeScopeStack(doc.ScopePost),
		NextVar:    stack.Variable(doc.NextVar),
	}
	for _, e := range doc.Edges {
		p.Edges = append(p.Edges, graph.Edge{
			Source:     graph.NodeHandle(e.Source),
			Sink:       graph.NodeHandle(e.Sink),
			Precedence: e.Precedence,
		})
	}
	return p, nil
}

func (s *Store) decodeSymbolStack(d symDoc) stack.SymbolStack {
	out := stack.SymbolStack{Variable: stack.Variable(d.Variable)}
	for _, sd := range d.Symbols {
		scoped := stack.ScopedSymbol{Symbol: s.g.AddSymbol(sd.Symbol)}
		if sd.Scopes != nil {
			sc := s.decodeScopeStack(*sd.Scopes)
			scoped.Scopes = &sc
		}
		out.Symbols = append(out.Symbols, scoped)
	}
	return out
}

func (s *Store) decodeScopeStack(d scopeDoc) stack.ScopeStack {
	out := stack.ScopeStack{Variable: stack.Variable(d.Variable)}
	for _, n := range d.Scopes {
		out.Scopes = append(out.Scopes, graph.NodeHandle(n))
	}
	return out
}

// bottomSymbolText mirrors database.bottomSymbol: the interned text of the
// symbol furthest from being popped next in a root-anchored precondition.
func bottomSymbolText(s *Store, sym stack.SymbolStack) (string, bool) {
	if len(sym.Symbols) == 0 {
		return "", false
	}
	text, _ := s.g.Symbol(sym.Symbols[len(sym.Symbols)-1].Symbol)
	return text, true
}

// Put persists path, keyed by its canonical (variable-renumbered) form so
// repeated inserts of structurally identical paths coalesce.
func (s *Store) Put(path *stack.PartialPath) error {
	payload, err := s.encode(path)
	if err != nil {
		return err
	}
	key := database.PathKey(path)

	if path.Start == s.root {
		if sym, ok := bottomSymbolText(s, path.SymbolPre); ok {
			_, err := s.db.Exec(`INSERT OR IGNORE INTO partial_paths_by_root_symbol(symbol, path_key, payload) VALUES (?, ?, ?)`,
				sym, key, string(payload))
			return err
		}
	}
	_, err = s.db.Exec(`INSERT OR IGNORE INTO partial_paths_by_node(node_key, path_key, payload) VALUES (?, ?, ?)`,
		int(path.Start), key, string(payload))
	return err
}

// FindCandidates implements database.CandidateSource.
func (s *Store) FindCandidates(path *stack.PartialPath) ([]*stack.PartialPath, error) {
	if path.End == s.root {
		return s.FindCandidatesFromRoot(&path.SymbolPost)
	}
	rows, err := s.db.Query(`SELECT payload FROM partial_paths_by_node WHERE node_key = ?`, int(path.End))
	if err != nil {
		return nil, err
	}
	return s.scanPayloads(rows)
}

// FindCandidatesFromRoot returns root-anchored paths whose bottom symbol
// matches sym, the SQLite-backed equivalent of
// database.Database.FindCandidatePartialPathsFromRoot.
func (s *Store) FindCandidatesFromRoot(sym *stack.SymbolStack) ([]*stack.PartialPath, error) {
	if sym == nil {
		rows, err := s.db.Query(`SELECT payload FROM partial_paths_by_root_symbol`)
		if err != nil {
			return nil, err
		}
		return s.scanPayloads(rows)
	}
	text, ok := bottomSymbolText(s, *sym)
	if !ok {
		rows, err := s.db.Query(`SELECT payload FROM partial_paths_by_root_symbol`)
		if err != nil {
			return nil, err
		}
		return s.scanPayloads(rows)
	}
	rows, err := s.db.Query(`SELECT payload FROM partial_paths_by_root_symbol WHERE symbol = ?`, text)
	if err != nil {
		return nil, err
	}
	return s.scanPayloads(rows)
}

func (s *Store) scanPayloads(rows *sql.Rows) ([]*stack.PartialPath, error) {
	defer rows.Close()
	var out []*stack.PartialPath
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		p, err := s.decode([]byte(payload))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FileStatus compares hash against the content hash recorded the last
// time path was tagged, returning database.Missing if path has never
// been tagged.
func (s *Store) FileStatus(path string, hash uint64) (database.FileStatus, error) {
	var recorded string
	err := s.db.QueryRow(`SELECT content_hash FROM file_tags WHERE path = ?`, path).Scan(&recorded)
	switch {
	case err == sql.ErrNoRows:
		return database.Missing, nil
	case err != nil:
		return database.Missing, err
	case recorded == fmt.Sprintf("%016x", hash):
		return database.Indexed, nil
	default:
		return database.Outdated, nil
	}
}

// TagFile records hash as path's current content hash.
func (s *Store) TagFile(path string, hash uint64) error {
	_, err := s.db.Exec(`
		INSERT INTO file_tags(path, content_hash, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET content_hash = excluded.content_hash, updated_at = CURRENT_TIMESTAMP
	`, path, fmt.Sprintf("%016x", hash))
	return err
}
