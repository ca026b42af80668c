package local

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrCorrupt is returned when a record exists but cannot be decoded.
	ErrCorrupt = errors.New("record corrupt")
)
