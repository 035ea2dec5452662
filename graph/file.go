package graph

// fileArena interns file paths, but unlike a SymbolHandle intern arena it
// rejects re-adding a path that is already present: files are registered
// once by the builder that owns them, and a second registration usually
// means two graphs are being merged that both claim the same file.
type fileArena struct {
	arena Arena[FileHandle, string]
	index map[string]FileHandle
}

// add registers path and returns its handle, or a *DuplicateFileError if
// path is already registered.
func (f *fileArena) add(path string) (FileHandle, error) {
	if h, ok := f.index[path]; ok {
		return 0, &DuplicateFileError{Path: path, Existing: h}
	}
	h := f.arena.Add(path)
	if f.index == nil {
		f.index = make(map[string]FileHandle)
	}
	f.index[path] = h
	return h, nil
}

func (f *fileArena) lookup(path string) (FileHandle, bool) {
	h, ok := f.index[path]
	return h, ok
}

func (f *fileArena) value(h FileHandle) (string, bool) {
	v, ok := f.arena.Get(h)
	if !ok {
		return "", false
	}
	return *v, true
}

func (f *fileArena) handles() []FileHandle { return f.arena.Handles() }

func (f *fileArena) len() int { return f.arena.Len() }
