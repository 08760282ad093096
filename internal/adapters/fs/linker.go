package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/twin/internal/core/domain"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Linker = (*Linker)(nil)

var (
	errReflinkUnsupported = zerr.New("copy-on-write clones are not supported on this platform")
	errUnsupportedType    = zerr.New("unsupported file type")
)

// Linker implements ports.Linker. Directory trees are assembled in a hidden
// staging sibling and renamed into place, so a failed attempt leaves nothing
// at the destination. Single files are linked straight to the destination,
// which never replaces an existing entry.
type Linker struct{}

// NewLinker creates a new Linker.
func NewLinker() *Linker {
	return &Linker{}
}

// Hardlink recreates src at dst, hard linking every regular file.
func (l *Linker) Hardlink(src, dst string) error {
	return materialize(src, dst, linkTree, linkFile)
}

// Reflink recreates src at dst with copy-on-write clones.
func (l *Linker) Reflink(src, dst string) error {
	return materialize(src, dst, cloneTree, cloneFile)
}

// ProbeReflink clones a scratch file inside dir and reports whether it worked.
func (l *Linker) ProbeReflink(dir string) bool {
	f, err := os.CreateTemp(dir, domain.ProbePrefix+"*")
	if err != nil {
		return false
	}
	src := f.Name()
	defer os.Remove(src) //nolint:errcheck // Best effort cleanup

	_, werr := f.WriteString("probe")
	if cerr := f.Close(); werr != nil || cerr != nil {
		return false
	}

	dst := src + ".clone"
	if err := cloneFile(src, dst, domain.FilePerm); err != nil {
		return false
	}
	_ = os.Remove(dst)
	return true
}

type treeFunc func(src, dst string) error

type fileFunc func(src, dst string, mode iofs.FileMode) error

func materialize(src, dst string, tree treeFunc, file fileFunc) error {
	info, err := os.Lstat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source"), "path", src)
	}

	parent := filepath.Dir(dst)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create parent directory"), "path", parent)
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() && info.Mode()&iofs.ModeSymlink == 0 {
			return zerr.With(zerr.With(errUnsupportedType, "path", src), "mode", info.Mode().Type().String())
		}
		return placeEntry(src, dst, info, file)
	}

	staging, err := os.MkdirTemp(parent, domain.StagingPrefix+"*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create staging directory"), "path", parent)
	}
	defer os.RemoveAll(staging) //nolint:errcheck // Empty after a successful rename

	staged := filepath.Join(staging, filepath.Base(dst))
	if err := tree(src, staged); err != nil {
		return err
	}

	if _, err := os.Lstat(dst); err == nil {
		return zerr.With(zerr.Wrap(iofs.ErrExist, "destination appeared during copy"), "path", dst)
	}
	if err := os.Rename(staged, dst); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to move staged tree into place"), "path", dst)
	}
	return nil
}

// placeEntry recreates a single non-directory entry. Special files inside
// a tree are left out.
func placeEntry(src, dst string, info iofs.FileInfo, file fileFunc) error {
	switch {
	case info.Mode()&iofs.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read symlink"), "path", src)
		}
		if err := os.Symlink(target, dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create symlink"), "path", dst)
		}
	case info.Mode().IsRegular():
		if err := file(src, dst, info.Mode().Perm()); err != nil {
			return zerr.With(err, "path", dst)
		}
	}
	return nil
}

// copyTree recreates the tree at src under dst. Directories are created
// owner-writable and receive their source permissions once filled.
func copyTree(src, dst string, file fileFunc) error {
	type dirMode struct {
		path string
		mode iofs.FileMode
	}
	var dirs []dirMode

	err := filepath.WalkDir(src, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		if d.IsDir() {
			if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return err
			}
			dirs = append(dirs, dirMode{path: target, mode: info.Mode().Perm()})
			return nil
		}

		return placeEntry(path, target, info, file)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to copy tree"), "path", src)
	}

	var chmodErr error
	for _, d := range slices.Backward(dirs) {
		chmodErr = errors.Join(chmodErr, os.Chmod(d.path, d.mode))
	}
	if chmodErr != nil {
		return zerr.Wrap(chmodErr, "failed to restore directory permissions")
	}
	return nil
}

func linkTree(src, dst string) error {
	return copyTree(src, dst, linkFile)
}

func linkFile(src, dst string, _ iofs.FileMode) error {
	if err := os.Link(src, dst); err != nil {
		return zerr.Wrap(err, "failed to create hard link")
	}
	return nil
}
