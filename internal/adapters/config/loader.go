// Package config provides the configuration loader for pacdb.
package config

import (
	"bytes"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "/etc/pacdb.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path. Settings absent from the file keep their
// defaults, and a missing file yields the default configuration.
// Relative paths in the file are resolved against the file's directory.
func (l *Loader) Load(path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			l.Logger.Debug("config file not found, using defaults", "path", path)
			return &cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	base := filepath.Dir(path)
	if file.Root != "" {
		cfg.RootPath = resolve(base, file.Root)
	}
	if file.DBPath != "" {
		cfg.DatabasePath = resolve(base, file.DBPath)
	}
	if len(file.SigLevel) > 0 {
		level, err := domain.ParseSignatureLevel(file.SigLevel)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		cfg.SigLevel = level
	}

	l.Logger.Debug("loaded config", "path", path, "root", cfg.RootPath, "dbpath", cfg.DatabasePath)
	return &cfg, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
