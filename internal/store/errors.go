package store

import "errors"

// Errors returned by the record stores.
//
// Check with errors.Is():
//
//	if errors.Is(err, store.ErrNotFound) {
//	    // map to a not-found response
//	}
var (
	// ErrCorruptContainer is returned by DecodeRecords when the bytes are
	// not a well-formed record sequence. The stores absorb it during
	// loads (backup and reset), so it never escapes LoadAll.
	ErrCorruptContainer = errors.New("corrupt container")

	// ErrNotFound is returned when no record carries the requested id.
	ErrNotFound = errors.New("record not found")
)
