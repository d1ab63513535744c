package domain

// DBStatus classifies the structural integrity of a database directory.
// It is derived on demand and never persisted.
type DBStatus uint8

const (
	// StatusMissing indicates the database root does not exist.
	StatusMissing DBStatus = iota
	// StatusInvalid indicates the database exists but cannot be trusted.
	StatusInvalid
	// StatusValid indicates the database exists and carries the supported version marker.
	StatusValid
)

func (s DBStatus) String() string {
	switch s {
	case StatusMissing:
		return "Missing"
	case StatusInvalid:
		return "Invalid"
	case StatusValid:
		return "Valid"
	default:
		return "Unknown"
	}
}
