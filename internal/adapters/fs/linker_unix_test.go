//go:build unix

package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/twin/internal/adapters/fs"
	"golang.org/x/sys/unix"
)

func TestLinker_Hardlink_RejectsSpecialFile(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	fifo := filepath.Join(src, "events.pipe")
	require.NoError(t, unix.Mkfifo(fifo, 0o600))

	err := fs.NewLinker().Hardlink(fifo, filepath.Join(dst, "events.pipe"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
	assert.NoFileExists(t, filepath.Join(dst, "events.pipe"))
}

func TestLinker_Hardlink_SkipsSpecialFileInTree(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeTree(t, src, map[string]string{".cache/data.bin": "cache"})
	require.NoError(t, unix.Mkfifo(filepath.Join(src, ".cache", "daemon.pipe"), 0o600))

	require.NoError(t, fs.NewLinker().Hardlink(filepath.Join(src, ".cache"), filepath.Join(dst, ".cache")))
	assert.FileExists(t, filepath.Join(dst, ".cache", "data.bin"))
	assert.NoFileExists(t, filepath.Join(dst, ".cache", "daemon.pipe"))
}
