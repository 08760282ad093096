package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheVerifier = (*Verifier)(nil)

// Verifier checks whether cache patterns resolve to real content.
type Verifier struct {
	resolver ports.PatternResolver
}

// NewVerifier creates a new Verifier.
func NewVerifier(resolver ports.PatternResolver) *Verifier {
	return &Verifier{resolver: resolver}
}

// Populated reports whether any pattern matches a non-empty directory, a
// non-empty file, or a symbolic link under root. Invalid patterns count as
// unmatched.
func (v *Verifier) Populated(root string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matches, err := v.resolver.Expand(root, pattern)
		if err != nil {
			continue
		}

		for _, rel := range matches {
			ok, err := nonEmpty(filepath.Join(root, rel))
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}

func nonEmpty(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat cache path"), "path", path)
	}

	switch {
	case info.Mode()&iofs.ModeSymlink != 0:
		return true, nil
	case !info.IsDir():
		return info.Size() > 0, nil
	}

	d, err := os.Open(path) //nolint:gosec // Path comes from expanded cache patterns
	if err != nil {
		if errors.Is(err, iofs.ErrPermission) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to open cache directory"), "path", path)
	}
	defer d.Close() //nolint:errcheck // Read-only handle

	if _, err := d.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to read cache directory"), "path", path)
	}
	return true, nil
}
