package harness

import "github.com/google/uuid"

// RunIDGenerator produces run identifiers.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator issues time-ordered UUIDv7 run identifiers.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string. It panics only if the system
// random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
