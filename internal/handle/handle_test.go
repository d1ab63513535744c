package handle_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports/mocks"
	"go.trai.ch/pacdb/internal/handle"
	"go.uber.org/mock/gomock"
)

func newHandle(t *testing.T, dirs ...string) (*handle.Handle, *mocks.MockPackageBuilder) {
	t.Helper()
	ctrl := gomock.NewController(t)

	dbPath := t.TempDir()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(dbPath, domain.LocalDBName, d), 0o755))
	}

	builder := mocks.NewMockPackageBuilder(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	cfg := domain.DefaultConfig()
	cfg.DatabasePath = dbPath
	return handle.New(cfg, builder, log), builder
}

func TestHandle_LocalDatabase_Shared(t *testing.T) {
	h, _ := newHandle(t, "foo-1.0-1")

	first, err := h.LocalDatabase()
	require.NoError(t, err)
	second, err := h.LocalDatabase()
	require.NoError(t, err)

	require.Same(t, first, second)
	assert.Equal(t, 1, first.Count())
	assert.Equal(t, filepath.Join(h.Config().DatabasePath, "local"), first.Path())
}

func TestHandle_LocalDatabase_RetriesAfterFailure(t *testing.T) {
	h, _ := newHandle(t, "broken")

	_, err := h.LocalDatabase()
	require.ErrorIs(t, err, domain.ErrInvalidLocalPackage)

	local := filepath.Join(h.Config().DatabasePath, "local")
	require.NoError(t, os.Remove(filepath.Join(local, "broken")))
	require.NoError(t, os.Mkdir(filepath.Join(local, "broken-1.0-1"), 0o755))

	db, err := h.LocalDatabase()
	require.NoError(t, err)
	assert.Equal(t, 1, db.Count())
}

func TestHandle_ConfigChangeVisibleAtLoad(t *testing.T) {
	h, builder := newHandle(t, "foo-1.0-1", "bar-2.3-4")

	var seen []domain.SignatureLevel
	builder.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_, name, version string, cfg domain.Config) (*domain.LocalPackage, error) {
			seen = append(seen, cfg.SigLevel)
			return &domain.LocalPackage{Name: name, Version: version, SigLevel: cfg.SigLevel}, nil
		}).Times(2)

	db, err := h.LocalDatabase()
	require.NoError(t, err)

	foo, err := db.Package("foo", "1.0-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSigLevel, foo.SigLevel)

	h.SetSigLevel(domain.SigPackage)
	bar, err := db.Package("bar", "2.3-4")
	require.NoError(t, err)
	assert.Equal(t, domain.SigPackage, bar.SigLevel)

	// Records already parsed are not rebuilt.
	again, err := db.Package("foo", "1.0-1")
	require.NoError(t, err)
	require.Same(t, foo, again)
	assert.Equal(t, []domain.SignatureLevel{domain.DefaultSigLevel, domain.SigPackage}, seen)

	// The database keeps the level it was opened with.
	assert.Equal(t, domain.DefaultSigLevel, db.SigLevel())
}

func TestHandle_LoadErrorPropagates(t *testing.T) {
	h, builder := newHandle(t, "foo-1.0-1")
	builder.EXPECT().Build(gomock.Any(), "foo", "1.0-1", gomock.Any()).Return(nil, errors.New("unreadable desc"))

	db, err := h.LocalDatabase()
	require.NoError(t, err)

	_, err = db.Package("foo", "1.0-1")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unreadable desc")
}
