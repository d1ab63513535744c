package app

import "go.trai.ch/pacdb/internal/core/ports"

// Components holds the application and the dependencies the CLI needs directly.
type Components struct {
	App    *App
	Logger ports.Logger
}
