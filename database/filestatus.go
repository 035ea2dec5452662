package database

// FileStatus is the tri-state result of comparing a file's current
// content hash against what the database has indexed for it, used by the
// batch indexer to skip files that have not changed.
type FileStatus int

const (
	// Missing: the file has never been indexed.
	Missing FileStatus = iota
	// Indexed: the file's current content hash matches what was indexed.
	Indexed
	// Outdated: the file has been indexed before, but its content hash has
	// since changed.
	Outdated
)

func (s FileStatus) String() string {
	switch s {
	case Missing:
		return "missing"
	case Indexed:
		return "indexed"
	case Outdated:
		return "outdated"
	default:
		return "unknown"
	}
}

// FileTags tracks, per indexed file path, the content hash recorded at
// indexing time.
type FileTags struct {
	hashes map[string]uint64
}

// NewFileTags returns an empty tag store.
func NewFileTags() *FileTags { return &FileTags{hashes: make(map[string]uint64)} }

// Status compares hash against what was recorded for path.
func (t *FileTags) Status(path string, hash uint64) FileStatus {
	recorded, ok := t.hashes[path]
	switch {
	case !ok:
		return Missing
	case recorded == hash:
		return Indexed
	default:
		return Outdated
	}
}

// Tag records hash as path's current content hash.
func (t *FileTags) Tag(path string, hash uint64) { t.hashes[path] = hash }

// FileStatus mirrors Status with sqlitedb.Store's (status, error) shape,
// so repository.Indexer can use an in-memory FileTags or a Store
// interchangeably behind one interface.
func (t *FileTags) FileStatus(path string, hash uint64) (FileStatus, error) {
	return t.Status(path, hash), nil
}

// TagFile mirrors Tag with sqlitedb.Store's error-returning shape.
func (t *FileTags) TagFile(path string, hash uint64) error {
	t.Tag(path, hash)
	return nil
}
