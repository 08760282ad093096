package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints dependency manifests so working copies can be compared.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Fingerprint hashes the named files under root in sorted order. Missing
// files are skipped; the result is empty when none exist.
func (h *Hasher) Fingerprint(root string, files []string) (string, error) {
	sorted := slices.Clone(files)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	digest := xxhash.New()
	seen := 0

	for _, name := range sorted {
		path := filepath.Join(root, name)

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return "", err
		}

		_, _ = digest.WriteString(name)
		_, _ = digest.Write([]byte{0})
		if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
		seen++
	}

	if seen == 0 {
		return "", nil
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
