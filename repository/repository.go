// Package repository locates the project and (optional) git repository
// that owns a file, and drives batch indexing of a whole project tree
// into a database.Database via a construct.Builder.
package repository

import "golang.org/x/mod/modfile"

// Repository describes the version-control root (if any) that contains a
// detected Project.
type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}

// Project describes the nearest directory above a file that looks like a
// project root, identified by a marker file (go.mod, package.json, ...).
type Project struct {
	RootPath     string
	Type         string
	Name         string
	RelativePath string
	GoModule     *modfile.Module
}
