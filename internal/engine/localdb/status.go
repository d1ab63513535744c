package localdb

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/pacdb/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// VersionFile is the name of the version marker inside the database root.
	VersionFile = "ALPM_DB_VERSION"
	// CurrentVersion is the database layout version this package supports.
	CurrentVersion uint64 = 9
)

var (
	writeFile  = os.WriteFile
	isEmptyDir = readEmptyDir
)

// Status classifies the database directory. It is evaluated from disk on every call.
//
// Only a failure to query the root itself is returned as an error; every later problem
// is logged and reported as StatusInvalid. An empty database directory without a version
// marker is initialised with one.
func (d *Database) Status() (domain.DBStatus, error) {
	info, err := os.Stat(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.StatusMissing, nil
		}
		return domain.StatusInvalid, zerr.With(zerr.Wrap(err, domain.ErrLocalDBStatFailed.Error()), "path", d.path)
	}

	if !info.IsDir() {
		return domain.StatusInvalid, nil
	}

	d.logger.Debug("checking local database version", "path", d.path)
	if d.checkVersion() {
		return domain.StatusValid, nil
	}
	return domain.StatusInvalid, nil
}

func (d *Database) checkVersion() bool {
	versionPath := filepath.Join(d.path, VersionFile)

	//nolint:gosec // Path is derived from the configured database path
	raw, err := os.ReadFile(versionPath)
	switch {
	case err == nil:
		version, ok := parseVersion(raw)
		if !ok {
			d.logger.Error(zerr.With(domain.ErrInvalidDBVersion, "content", string(raw)))
			return false
		}
		if version != CurrentVersion {
			d.logger.Warn("local database version is not the latest", "version", version, "latest", CurrentVersion)
			return false
		}
		return true

	case errors.Is(err, fs.ErrNotExist):
		d.logger.Debug("local database version file not found", "path", versionPath)
		return d.initEmpty(versionPath)

	default:
		d.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrVersionFileReadFailed.Error()), "path", versionPath))
		return false
	}
}

// initEmpty writes the version marker when the database directory is empty.
// A non-empty directory without a marker is corrupt and left untouched.
func (d *Database) initEmpty(versionPath string) bool {
	empty, err := isEmptyDir(d.path)
	if err != nil {
		d.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrLocalDBListFailed.Error()), "path", d.path))
		return false
	}
	if !empty {
		return false
	}

	d.logger.Debug("creating local database version file", "path", versionPath)
	content := strconv.FormatUint(CurrentVersion, 10) + "\n"
	//nolint:gosec // Version marker is not sensitive
	if err := writeFile(versionPath, []byte(content), 0o644); err != nil {
		d.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrVersionFileCreateFailed.Error()), "path", versionPath))
		return false
	}
	return true
}

func readEmptyDir(path string) (bool, error) {
	f, err := os.Open(path) //nolint:gosec // Path is derived from the configured database path
	if err != nil {
		return false, err
	}
	defer f.Close() //nolint:errcheck // Read-only handle

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// parseVersion reads the leading decimal digits of raw. Trailing bytes such as the
// newline are ignored.
func parseVersion(raw []byte) (uint64, bool) {
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	version, err := strconv.ParseUint(string(raw[:end]), 10, 64)
	if err != nil {
		return 0, false
	}
	return version, true
}
