package desc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pacdb/internal/adapters/fs"
	"go.trai.ch/pacdb/internal/core/ports"
)

// NodeID is the unique identifier for the package builder Graft node.
const NodeID graft.ID = "adapter.desc"

func init() {
	graft.Register(graft.Node[ports.PackageBuilder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.PackageBuilder, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(hasher), nil
		},
	})
}
