package realtime

import "errors"

var (
	// ErrHubClosed is returned when subscribing to or sending through a
	// closed hub.
	ErrHubClosed = errors.New("realtime: hub is closed")

	// ErrMarshalPayload is returned when a message payload cannot be
	// serialized.
	ErrMarshalPayload = errors.New("realtime: failed to marshal payload")

	// ErrStreamingUnsupported is returned when the HTTP connection cannot
	// flush, which SSE requires.
	ErrStreamingUnsupported = errors.New("realtime: streaming not supported")
)
