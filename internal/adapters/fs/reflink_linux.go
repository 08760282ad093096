//go:build linux

package fs

import (
	iofs "io/fs"
	"os"

	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

func cloneTree(src, dst string) error {
	return copyTree(src, dst, cloneFile)
}

// cloneFile clones src into a new file at dst with the FICLONE ioctl.
func cloneFile(src, dst string, mode iofs.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // Path comes from expanded cache patterns
	if err != nil {
		return zerr.Wrap(err, "failed to open clone source")
	}
	defer in.Close() //nolint:errcheck // Read-only handle

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode) //nolint:gosec // Destination is inside the target working copy
	if err != nil {
		return zerr.Wrap(err, "failed to create clone destination")
	}

	cloneErr := unix.IoctlFileClone(int(out.Fd()), int(in.Fd()))
	closeErr := out.Close()
	if cloneErr != nil || closeErr != nil {
		_ = os.Remove(dst)
		if cloneErr != nil {
			return zerr.Wrap(cloneErr, "FICLONE failed")
		}
		return zerr.Wrap(closeErr, "failed to close clone destination")
	}
	return nil
}
