package replaybuffer

import "errors"

var (
	// ErrEntryNotFound is returned when no live entry exists for a
	// (channel kind, recipient) key.
	ErrEntryNotFound = errors.New("replaybuffer: entry not found")

	// ErrStoreUnavailable wraps backend failures of the underlying store.
	ErrStoreUnavailable = errors.New("replaybuffer: store unavailable")
)
