// Package strata implements an embedded, log-structured key-value store.
//
// Mutations are appended to numbered log segments and located through an
// in-memory index of byte positions. Overwrites and removals leave stale
// bytes behind; once the stale total passes a configurable budget the
// store compacts itself, rewriting live records into a fresh segment and
// deleting the old ones.
package strata

import "errors"

// Sentinel errors returned by store operations.
var (
	// ErrKeyNotFound is returned by Remove when the key is not present.
	// Get reports absence through its bool result instead.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnexpectedCommand is returned when a read lands on a record
	// that is not a Set. It indicates engine or on-disk corruption.
	ErrUnexpectedCommand = errors.New("unexpected command type")

	// ErrCorruptRecord is returned when a log record cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt record")

	// ErrClosed is returned when operating on a closed store.
	ErrClosed = errors.New("store is closed")

	// ErrLocked is returned by Open when another process holds the
	// store directory.
	ErrLocked = errors.New("store directory is locked")

	// ErrInvalidPattern is returned when a regex pattern fails to compile.
	ErrInvalidPattern = errors.New("invalid regex pattern")

	// ErrDecompress is returned when a packed value cannot be restored.
	ErrDecompress = errors.New("decompress failed")
)
