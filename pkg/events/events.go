package events

import "github.com/google/uuid"

// Event is implemented by every fact record published through the fabric.
// Events are immutable: they are constructed once at the moment the
// triggering action completes and are never mutated afterward.
type Event interface {
	// EventName returns a stable, dotted identifier for the event kind,
	// e.g. "user.registered". It is used for logging, buffered replay
	// entries and relay subject derivation.
	EventName() string
}

// NewCorrelationID returns a fresh opaque token used to link an event to its
// downstream notifications in logs. Correlation ids are passed explicitly
// through the call chain from the originating request; nothing in the fabric
// reads ambient state to obtain one.
func NewCorrelationID() string {
	return uuid.NewString()
}
