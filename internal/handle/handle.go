// Package handle implements the session handle that owns the configuration and the
// databases derived from it.
package handle

import (
	"sync"

	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports"
	"go.trai.ch/pacdb/internal/engine/localdb"
)

var _ ports.ConfigSource = (*Handle)(nil)

// Handle is the shared configuration of one session.
//
// Databases keep a reference to the Handle rather than a copy of its configuration, so
// package records loaded after a configuration change see the new values.
type Handle struct {
	builder ports.PackageBuilder
	logger  ports.Logger

	mu     sync.RWMutex
	config domain.Config

	localMu sync.Mutex
	local   *localdb.Database
}

// New creates a Handle for cfg. Package records are parsed with builder.
func New(cfg domain.Config, builder ports.PackageBuilder, logger ports.Logger) *Handle {
	return &Handle{
		builder: builder,
		logger:  logger,
		config:  cfg,
	}
}

// Config returns a copy of the current configuration.
func (h *Handle) Config() domain.Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.config
}

// SetSigLevel changes the default signature level used for packages loaded from now on.
func (h *Handle) SetSigLevel(level domain.SignatureLevel) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.config.SigLevel = level
}

// LocalDatabase returns the local database, opening it on first use.
// A failed open is not cached; the next call tries again.
func (h *Handle) LocalDatabase() (*localdb.Database, error) {
	h.localMu.Lock()
	defer h.localMu.Unlock()

	if h.local != nil {
		return h.local, nil
	}

	db, err := localdb.Open(h, h.builder, h.logger, h.Config().SigLevel)
	if err != nil {
		return nil, err
	}
	h.local = db
	return db, nil
}
