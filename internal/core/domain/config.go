package domain

import "path/filepath"

const (
	// DefaultRootPath is the installation root.
	DefaultRootPath = "/"
	// DefaultDatabasePath is the directory holding the local and sync databases.
	DefaultDatabasePath = "/var/lib/pacman"
	// LocalDBName is the name of the local database, and of its directory under DatabasePath.
	LocalDBName = "local"
)

// Config is the session configuration shared by every database derived from a handle.
type Config struct {
	// RootPath is the filesystem root packages are installed into.
	RootPath string
	// DatabasePath is the directory containing the database directories.
	DatabasePath string
	// SigLevel is the default signature verification level.
	SigLevel SignatureLevel
}

// DefaultConfig returns the configuration of a stock installation.
func DefaultConfig() Config {
	return Config{
		RootPath:     DefaultRootPath,
		DatabasePath: DefaultDatabasePath,
		SigLevel:     DefaultSigLevel,
	}
}

// LocalDBPath returns the root directory of the local database.
func (c Config) LocalDBPath() string {
	return filepath.Join(c.DatabasePath, LocalDBName)
}
