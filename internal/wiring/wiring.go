// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pacdb/internal/adapters/config"
	_ "go.trai.ch/pacdb/internal/adapters/desc"
	_ "go.trai.ch/pacdb/internal/adapters/fs"
	_ "go.trai.ch/pacdb/internal/adapters/inventory"
	_ "go.trai.ch/pacdb/internal/adapters/logger"
	// Register app nodes.
	_ "go.trai.ch/pacdb/internal/app"
)
