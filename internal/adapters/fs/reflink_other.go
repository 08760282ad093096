//go:build !linux && !darwin

package fs

import iofs "io/fs"

func cloneTree(_, _ string) error {
	return errReflinkUnsupported
}

func cloneFile(_, _ string, _ iofs.FileMode) error {
	return errReflinkUnsupported
}
