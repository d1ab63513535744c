package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pacdb/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pacdb/internal/adapters/desc"      //nolint:depguard // Wired in app layer
	"go.trai.ch/pacdb/internal/adapters/inventory" //nolint:depguard // Wired in app layer
	"go.trai.ch/pacdb/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pacdb/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			desc.NodeID,
			inventory.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[ports.PackageBuilder](ctx)
	if err != nil {
		return nil, err
	}

	inv, err := graft.Dep[ports.InventoryWriter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, builder, inv, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
