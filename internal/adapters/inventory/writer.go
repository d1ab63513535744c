// Package inventory writes JSON summaries of the installed packages.
package inventory

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InventoryWriter = (*Writer)(nil)

// Document is the on-disk layout of an inventory file.
type Document struct {
	Count    int                     `json:"count"`
	Packages []domain.InventoryEntry `json:"packages"`
}

// Writer implements ports.InventoryWriter using a JSON file.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write replaces the file at path with the inventory of entries.
// The file is written to a temporary sibling first and renamed into place.
func (w *Writer) Write(path string, entries []domain.InventoryEntry) error {
	path = filepath.Clean(path)

	if entries == nil {
		entries = []domain.InventoryEntry{}
	}
	data, err := json.MarshalIndent(Document{Count: len(entries), Packages: entries}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal package inventory")
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error()), "path", path)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error()), "path", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInventoryWriteFailed.Error()), "path", path)
	}
	return nil
}
