package ports

// Hasher defines the interface for computing content hashes.
//
//go:generate mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeFileHash computes the hash of a single file's content.
	ComputeFileHash(path string) (uint64, error)

	// ComputeRecordHash computes one hash over the named files inside dir.
	// Files that do not exist are skipped.
	ComputeRecordHash(dir string, names []string) (uint64, error)
}
