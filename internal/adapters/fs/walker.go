// Package fs provides file system adapters for expanding, linking, and
// inspecting cache artifacts.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Walk yields every entry below root with its slash-separated path relative
// to root. Directories are yielded before their contents; a directory for
// which descend returns false is yielded but not entered. Version control
// metadata directories and unreadable subtrees are skipped. Symbolic links
// are yielded as entries and never followed.
func (w *Walker) Walk(root string, descend func(rel string, d fs.DirEntry) bool) iter.Seq2[string, fs.DirEntry] {
	return func(yield func(string, fs.DirEntry) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if path == root {
				return nil
			}

			if d.IsDir() && isVCSDir(d.Name()) {
				return filepath.SkipDir
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if !yield(rel, d) {
				return filepath.SkipAll
			}

			if d.IsDir() && descend != nil && !descend(rel, d) {
				return filepath.SkipDir
			}
			return nil
		})
	}
}

func isVCSDir(name string) bool {
	return name == ".git" || name == ".jj"
}
