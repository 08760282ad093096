package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/twin/internal/adapters/fs"
)

func TestHasher_Fingerprint(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	manifest := map[string]string{
		"package.json":      `{"name":"app"}`,
		"package-lock.json": `{"lockfileVersion":3}`,
	}
	writeTree(t, a, manifest)
	writeTree(t, b, manifest)

	h := fs.NewHasher()
	files := []string{"package-lock.json", "package.json", "yarn.lock"}

	fa, err := h.Fingerprint(a, files)
	require.NoError(t, err)
	fb, err := h.Fingerprint(b, []string{"package.json", "yarn.lock", "package-lock.json"})
	require.NoError(t, err)
	assert.NotEmpty(t, fa)
	assert.Equal(t, fa, fb, "order of names must not matter")

	require.NoError(t, os.WriteFile(filepath.Join(b, "package-lock.json"), []byte(`{"lockfileVersion":2}`), 0o600))
	fb, err = h.Fingerprint(b, files)
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb)
}

func TestHasher_Fingerprint_NoFiles(t *testing.T) {
	got, err := fs.NewHasher().Fingerprint(t.TempDir(), []string{"Cargo.lock"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	_, err := fs.NewHasher().ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}
