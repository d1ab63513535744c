package localdb_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/pacdb/internal/engine/localdb"
	"go.uber.org/mock/gomock"
)

func TestStatus_Versions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    domain.DBStatus
		expect  func(f *fixture)
	}{
		{name: "current version", content: "9\n", want: domain.StatusValid},
		{name: "no trailing newline", content: "9", want: domain.StatusValid},
		{name: "trailing garbage", content: "9 extra", want: domain.StatusValid},
		{
			name:    "old version",
			content: "8\n",
			want:    domain.StatusInvalid,
			expect: func(f *fixture) {
				f.logger.EXPECT().Warn("local database version is not the latest", "version", uint64(8), "latest", uint64(9))
			},
		},
		{
			name:    "not a number",
			content: "nine\n",
			want:    domain.StatusInvalid,
			expect: func(f *fixture) {
				f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
					assert.ErrorContains(t, err, domain.ErrInvalidDBVersion.Error())
				})
			},
		},
		{
			name:    "empty marker",
			content: "",
			want:    domain.StatusInvalid,
			expect: func(f *fixture) {
				f.logger.EXPECT().Error(gomock.Any())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[string]string{
				localdb.VersionFile: tt.content,
				"foo-1.0-1/":        "",
			})
			if tt.expect != nil {
				tt.expect(f)
			}

			status, err := f.open(t).Status()
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestStatus_InitialisesEmptyDatabase(t *testing.T) {
	f := newFixture(t, nil)
	db := f.open(t)

	status, err := db.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusValid, status)

	content, err := os.ReadFile(filepath.Join(f.root, localdb.VersionFile))
	require.NoError(t, err)
	assert.Equal(t, "9\n", string(content))

	status, err = db.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusValid, status)

	again, err := os.ReadFile(filepath.Join(f.root, localdb.VersionFile))
	require.NoError(t, err)
	assert.Equal(t, content, again)

	// The marker is written inside the database root, not next to it.
	_, err = os.Stat(filepath.Join(filepath.Dir(f.root), localdb.VersionFile))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatus_NonEmptyWithoutMarker(t *testing.T) {
	f := newFixture(t, map[string]string{"foo-1.0-1/": ""})
	db := f.open(t)

	status, err := db.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInvalid, status)

	_, err = os.Stat(filepath.Join(f.root, localdb.VersionFile))
	assert.ErrorIs(t, err, os.ErrNotExist, "a populated database must not be stamped")
}

func TestStatus_RecomputedOnEveryCall(t *testing.T) {
	f := newFixture(t, map[string]string{localdb.VersionFile: "9\n"})
	db := f.open(t)

	status, err := db.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusValid, status)

	require.NoError(t, os.RemoveAll(f.root))
	status, err = db.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMissing, status)

	require.NoError(t, os.WriteFile(f.root, []byte("file"), 0o644))
	status, err = db.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInvalid, status)
}

func TestStatus_VersionFileUnreadable(t *testing.T) {
	f := newFixture(t, nil)
	db := f.open(t)

	// A directory in place of the marker cannot be read as a file.
	require.NoError(t, os.Mkdir(filepath.Join(f.root, localdb.VersionFile), 0o755))
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrVersionFileReadFailed.Error())
	})

	status, err := db.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInvalid, status)
}

func TestStatus_MarkerCreateFails(t *testing.T) {
	f := newFixture(t, nil)
	db := f.open(t)

	localdb.SetWriteFile(t, func(string, []byte, os.FileMode) error {
		return os.ErrPermission
	})
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrVersionFileCreateFailed.Error())
		assert.ErrorIs(t, err, os.ErrPermission)
	})

	status, err := db.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInvalid, status)

	_, err = os.Stat(filepath.Join(f.root, localdb.VersionFile))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatus_MarkerCreateFails_ReadOnlyRoot(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	f := newFixture(t, nil)
	db := f.open(t)

	require.NoError(t, os.Chmod(f.root, 0o555))
	t.Cleanup(func() { _ = os.Chmod(f.root, 0o755) })
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrVersionFileCreateFailed.Error())
	})

	status, err := db.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInvalid, status)

	_, err = os.Stat(filepath.Join(f.root, localdb.VersionFile))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatus_ListFails(t *testing.T) {
	f := newFixture(t, nil)
	db := f.open(t)

	boom := errors.New("boom")
	localdb.SetIsEmptyDir(t, func(string) (bool, error) { return false, boom })
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrLocalDBListFailed.Error())
		assert.ErrorIs(t, err, boom)
	})

	status, err := db.Status()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInvalid, status)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		raw    string
		want   uint64
		wantOK bool
	}{
		{raw: "9\n", want: 9, wantOK: true},
		{raw: "10", want: 10, wantOK: true},
		{raw: "007x", want: 7, wantOK: true},
		{raw: "", wantOK: false},
		{raw: "\n9", wantOK: false},
		{raw: "-9", wantOK: false},
		{raw: "99999999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := localdb.ParseVersion([]byte(tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
