package desc_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pacdb/internal/adapters/desc"
	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const pacmanDesc = `%NAME%
pacman

%VERSION%
6.0.2-1

%BASE%
pacman

%DESC%
A library-based package manager with dependency support

%URL%
https://www.archlinux.org/pacman/

%ARCH%
x86_64

%BUILDDATE%
1665300000

%INSTALLDATE%
1665400000

%PACKAGER%
Morten Linderud <foxboron@archlinux.org>

%SIZE%
4805263

%REASON%
1

%LICENSE%
GPL

%VALIDATION%
pgp

%DEPENDS%
bash
glibc
libarchive

%OPTDEPENDS%
perl-locale-gettext: translation support in makepkg-template

%CONFLICTS%
pacman-contrib<1.2.0

%PROVIDES%
libalpm.so=13-64

`

const pacmanFiles = `%FILES%
etc/
etc/pacman.conf
usr/bin/pacman

%BACKUP%
etc/pacman.conf	2a9b7d3e
`

func writeRecord(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "pacman-6.0.2-1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestBuilder_Build(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockHasher(ctrl)

	dir := writeRecord(t, map[string]string{"desc": pacmanDesc, "files": pacmanFiles})
	hasher.EXPECT().ComputeRecordHash(dir, []string{"desc", "files"}).Return(uint64(42), nil)

	cfg := domain.DefaultConfig()
	cfg.SigLevel = domain.SigPackage

	pkg, err := desc.NewBuilder(hasher).Build(dir, "pacman", "6.0.2-1", cfg)
	require.NoError(t, err)

	assert.Equal(t, "pacman", pkg.Name)
	assert.Equal(t, "6.0.2-1", pkg.Version)
	assert.Equal(t, "pacman", pkg.Base)
	assert.Equal(t, "A library-based package manager with dependency support", pkg.Description)
	assert.Equal(t, "https://www.archlinux.org/pacman/", pkg.URL)
	assert.Equal(t, "x86_64", pkg.Arch)
	assert.Equal(t, time.Unix(1665300000, 0).UTC(), pkg.BuildDate)
	assert.Equal(t, time.Unix(1665400000, 0).UTC(), pkg.InstallDate)
	assert.Equal(t, "Morten Linderud <foxboron@archlinux.org>", pkg.Packager)
	assert.Equal(t, int64(4805263), pkg.Size)
	assert.Equal(t, domain.ReasonDependency, pkg.Reason)
	assert.Equal(t, []string{"GPL"}, pkg.Licenses)
	assert.Equal(t, []domain.ValidationMethod{domain.ValidationPGP}, pkg.Validation)
	assert.Equal(t, []string{"bash", "glibc", "libarchive"}, pkg.Depends)
	assert.Equal(t, []string{"perl-locale-gettext: translation support in makepkg-template"}, pkg.OptDepends)
	assert.Equal(t, []string{"pacman-contrib<1.2.0"}, pkg.Conflicts)
	assert.Equal(t, []string{"libalpm.so=13-64"}, pkg.Provides)
	assert.Empty(t, pkg.Replaces)
	assert.Empty(t, pkg.Groups)
	assert.Equal(t, []string{"etc/", "etc/pacman.conf", "usr/bin/pacman"}, pkg.Files)
	assert.Equal(t, dir, pkg.Path)
	assert.Equal(t, domain.SigPackage, pkg.SigLevel)
	assert.Equal(t, uint64(42), pkg.Checksum)
	assert.Equal(t, "pkg:alpm/arch/pacman@6.0.2-1?arch=x86_64", pkg.PURL())
}

func TestBuilder_Build_WithoutFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockHasher(ctrl)

	dir := writeRecord(t, map[string]string{"desc": "%NAME%\npacman\n\n%VERSION%\n6.0.2-1\n"})
	hasher.EXPECT().ComputeRecordHash(dir, gomock.Any()).Return(uint64(1), nil)

	pkg, err := desc.NewBuilder(hasher).Build(dir, "pacman", "6.0.2-1", domain.DefaultConfig())
	require.NoError(t, err)

	assert.Empty(t, pkg.Files)
	assert.Equal(t, domain.ReasonExplicit, pkg.Reason)
	assert.True(t, pkg.InstallDate.IsZero())
}

func TestBuilder_Build_ValidationMethods(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockHasher(ctrl)

	dir := writeRecord(t, map[string]string{
		"desc": "%NAME%\npacman\n\n%VERSION%\n6.0.2-1\n\n%VALIDATION%\nnone\nmd5\nsha256\n",
	})
	hasher.EXPECT().ComputeRecordHash(dir, gomock.Any()).Return(uint64(1), nil)

	pkg, err := desc.NewBuilder(hasher).Build(dir, "pacman", "6.0.2-1", domain.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []domain.ValidationMethod{
		domain.ValidationNone,
		domain.ValidationMD5,
		domain.ValidationSHA256,
	}, pkg.Validation)
}

func TestBuilder_Build_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "missing desc",
			files:   map[string]string{"files": pacmanFiles},
			wantErr: domain.ErrPackageParseFailed.Error(),
		},
		{
			name:    "name mismatch",
			files:   map[string]string{"desc": "%NAME%\npacman-git\n\n%VERSION%\n6.0.2-1\n"},
			wantErr: domain.ErrPackageParseFailed.Error(),
		},
		{
			name:    "version mismatch",
			files:   map[string]string{"desc": "%NAME%\npacman\n\n%VERSION%\n6.0.1-1\n"},
			wantErr: domain.ErrPackageParseFailed.Error(),
		},
		{
			name:    "invalid size",
			files:   map[string]string{"desc": "%NAME%\npacman\n\n%VERSION%\n6.0.2-1\n\n%SIZE%\nbig\n"},
			wantErr: domain.ErrPackageParseFailed.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			hasher := mocks.NewMockHasher(ctrl)

			dir := writeRecord(t, tt.files)
			_, err := desc.NewBuilder(hasher).Build(dir, "pacman", "6.0.2-1", domain.DefaultConfig())
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBuilder_Build_HashError(t *testing.T) {
	ctrl := gomock.NewController(t)
	hasher := mocks.NewMockHasher(ctrl)

	dir := writeRecord(t, map[string]string{"desc": "%NAME%\npacman\n\n%VERSION%\n6.0.2-1\n"})
	hasher.EXPECT().ComputeRecordHash(dir, gomock.Any()).Return(uint64(0), errors.New("disk on fire"))

	_, err := desc.NewBuilder(hasher).Build(dir, "pacman", "6.0.2-1", domain.DefaultConfig())
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk on fire")
}
