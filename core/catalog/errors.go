package catalog

import "errors"

// Error taxonomy for catalog operations. Every failure is deterministic and
// recoverable at the handler boundary; handlers translate with errors.Is.
var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a reference to a row that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks uniqueness violations and repeated promotions.
	ErrConflict = errors.New("conflict")
	// ErrAuth marks a credential mismatch.
	ErrAuth = errors.New("authentication failed")
	// ErrNoSongs marks an aggregate requested over an artist with zero
	// songs; callers show a "no songs yet" state instead of an average.
	ErrNoSongs = errors.New("artist has no songs")
)
