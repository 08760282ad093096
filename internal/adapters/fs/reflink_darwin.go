//go:build darwin

package fs

import (
	iofs "io/fs"

	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

// cloneTree clones the whole tree in one clonefile(2) call.
func cloneTree(src, dst string) error {
	if err := unix.Clonefile(src, dst, unix.CLONE_NOFOLLOW); err != nil {
		return zerr.Wrap(err, "clonefile failed")
	}
	return nil
}

func cloneFile(src, dst string, _ iofs.FileMode) error {
	return cloneTree(src, dst)
}
