package localdb

import (
	"os"
	"testing"
)

// LoadedCount returns the number of slots whose record has been parsed.
func (d *Database) LoadedCount() int {
	n := 0
	for _, s := range d.slots {
		if s.loaded() {
			n++
		}
	}
	return n
}

// ParseVersion exposes parseVersion for testing.
var ParseVersion = parseVersion

// SetWriteFile replaces the function used to write the version marker until the test ends.
func SetWriteFile(t testing.TB, fn func(string, []byte, os.FileMode) error) {
	prev := writeFile
	writeFile = fn
	t.Cleanup(func() { writeFile = prev })
}

// SetIsEmptyDir replaces the emptiness check of the database root until the test ends.
func SetIsEmptyDir(t testing.TB, fn func(string) (bool, error)) {
	prev := isEmptyDir
	isEmptyDir = fn
	t.Cleanup(func() { isEmptyDir = prev })
}
