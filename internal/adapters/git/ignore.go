package git

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.trai.ch/zerr"
)

// matchIgnored reports whether rel is excluded by the ignore files under
// root, including .git/info/exclude and nested .gitignore files.
func matchIgnored(root, rel string) (bool, error) {
	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to read ignore files"), "path", root)
	}

	isDir := false
	info, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel)))
	switch {
	case err == nil:
		isDir = info.IsDir()
	case !errors.Is(err, iofs.ErrNotExist):
		return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", rel)
	}

	segments := strings.Split(strings.Trim(filepath.ToSlash(rel), "/"), "/")
	return gitignore.NewMatcher(patterns).Match(segments, isDir), nil
}
