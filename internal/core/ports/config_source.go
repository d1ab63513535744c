package ports

import "go.trai.ch/pacdb/internal/core/domain"

// ConfigSource resolves the current session configuration.
// Databases hold a ConfigSource instead of a copy of the configuration so that
// changes are visible at load time.
//
//go:generate mockgen -source=config_source.go -destination=mocks/mock_config_source.go -package=mocks
type ConfigSource interface {
	Config() domain.Config
}
