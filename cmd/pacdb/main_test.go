package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pacdb/internal/app"
	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newComponents(ctrl *gomock.Controller) (*app.Components, *mocks.MockConfigLoader, *mocks.MockLogger) {
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	application := app.New(loader, mocks.NewMockPackageBuilder(ctrl), mocks.NewMockInventoryWriter(ctrl), log)
	return &app.Components{App: application, Logger: log}, loader, log
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	components, _, _ := newComponents(ctrl)

	provider := func(_ context.Context) (*app.Components, error) {
		return components, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "pacdb version")
}

// TestRun_List verifies the full path from the command line to a database on disk.
func TestRun_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	components, loader, log := newComponents(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	dbPath := t.TempDir()
	local := filepath.Join(dbPath, "local")
	require.NoError(t, os.MkdirAll(filepath.Join(local, "foo-1.0-1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(local, "bar-2.3-4"), 0o755))

	loader.EXPECT().Load("").DoAndReturn(func(string) (*domain.Config, error) {
		cfg := domain.DefaultConfig()
		return &cfg, nil
	})

	provider := func(_ context.Context) (*app.Components, error) {
		return components, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"list", "--dbpath", dbPath}, stdout, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "bar 2.3-4\nfoo 1.0-1\n", stdout.String())
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	components, loader, log := newComponents(ctrl)

	loader.EXPECT().Load("").Return(nil, errors.New("permission denied"))
	log.EXPECT().Error(gomock.Any()).Times(1)

	provider := func(_ context.Context) (*app.Components, error) {
		return components, nil
	}

	exitCode := run(context.Background(), []string{"status"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
