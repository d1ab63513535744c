package localdb

import (
	"sync"

	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports"
	"go.trai.ch/zerr"
)

// slot lazily holds one package of the database.
// A nil pkg means the record has not been parsed yet. Once set, pkg is never replaced.
type slot struct {
	mu   sync.Mutex
	path string
	key  domain.PackageKey
	pkg  *domain.LocalPackage
}

func newSlot(path string, key domain.PackageKey) *slot {
	return &slot{path: path, key: key}
}

// load parses the record on first use and returns the same record on every later call.
// The configuration is resolved from src at load time. A failed parse leaves the slot
// unparsed.
func (s *slot) load(src ports.ConfigSource, builder ports.PackageBuilder) (*domain.LocalPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pkg != nil {
		return s.pkg, nil
	}

	pkg, err := builder.Build(s.path, s.key.Name, s.key.Version, src.Config())
	if err != nil {
		loadErr := zerr.Wrap(err, domain.ErrPackageLoadFailed.Error())
		return nil, zerr.With(loadErr, "package", s.key.String())
	}
	if pkg == nil {
		return nil, zerr.With(domain.ErrPackageLoadFailed, "package", s.key.String())
	}

	s.pkg = pkg
	return pkg, nil
}

// loaded reports whether the record has been parsed.
func (s *slot) loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pkg != nil
}
