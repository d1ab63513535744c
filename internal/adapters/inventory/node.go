package inventory

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pacdb/internal/core/ports"
)

// NodeID is the unique identifier for the inventory writer Graft node.
const NodeID graft.ID = "adapter.inventory_writer"

func init() {
	graft.Register(graft.Node[ports.InventoryWriter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InventoryWriter, error) {
			return NewWriter(), nil
		},
	})
}
