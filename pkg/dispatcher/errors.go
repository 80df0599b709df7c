package dispatcher

import "errors"

var (
	// ErrEventTypeMismatch is returned by a registration invoked with an
	// event of the wrong concrete type. It indicates a wiring bug.
	ErrEventTypeMismatch = errors.New("dispatcher: event type mismatch")

	// ErrHandlerPanic wraps a recovered panic from a handler invocation.
	ErrHandlerPanic = errors.New("dispatcher: handler panicked")
)
