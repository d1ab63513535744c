package ports

import "go.trai.ch/pacdb/internal/core/domain"

// InventoryWriter persists a summary of the installed packages.
//
//go:generate mockgen -source=inventory.go -destination=mocks/mock_inventory.go -package=mocks
type InventoryWriter interface {
	// Write replaces the inventory at path with entries.
	Write(path string, entries []domain.InventoryEntry) error
}
