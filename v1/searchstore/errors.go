package searchstore

import (
	"errors"
)

var (
	// ErrNotFound is returned when a collection or object does not
	// exist. It wraps the 404 answer of the REST surface.
	ErrNotFound = errors.New("searchstore: not found")
)

// IsNotFound checks if the error reports a missing collection or object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
