// Package fs provides file system adapters for hashing package records.
package fs

import (
	"encoding/binary"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash digests of files.
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
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeRecordHash computes a single hash over the named files in dir, in order.
// Each file contributes its name and the hash of its content; missing files are skipped.
func (h *Hasher) ComputeRecordHash(dir string, names []string) (uint64, error) {
	hasher := xxhash.New()

	for _, name := range names {
		path := filepath.Join(dir, name)

		hash, err := h.ComputeFileHash(path)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			return 0, err
		}

		_, _ = hasher.WriteString(name)
		_, _ = hasher.Write([]byte{0}) // Separator

		if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
			return 0, zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return hasher.Sum64(), nil
}
