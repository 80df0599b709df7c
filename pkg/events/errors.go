package events

import (
	"fmt"
	"time"
)

// ErrorKind classifies a domain failure for notification routing. Validation
// failures are pushed in real time but never buffered for reconnect replay:
// the user is still on the originating page and has already seen the message.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindDatabase      ErrorKind = "database"
	KindExternal      ErrorKind = "external"
	KindAuthorization ErrorKind = "authorization"
	KindNotFound      ErrorKind = "not_found"
	KindUnknown       ErrorKind = "unknown"
)

// Failure is an explicit domain-failure value produced at the failure site
// and passed directly to the publish helpers. It carries the classification
// and the action/entity context needed to build an ErrorOccurred event; it is
// a plain value, not a panic or control-flow mechanism.
type Failure struct {
	Kind       ErrorKind
	Action     string
	EntityType string
	EntityID   string
	Err        error
}

// NewFailure builds a Failure for the given classification and context.
func NewFailure(kind ErrorKind, action, entityType, entityID string, err error) Failure {
	if kind == "" {
		kind = KindUnknown
	}
	return Failure{
		Kind:       kind,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Err:        err,
	}
}

// Error implements the error interface so a Failure can travel through
// error-returning call chains unchanged.
func (f Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s failure during %s on %s: %v", f.Kind, f.Action, f.EntityType, f.Err)
	}
	return fmt.Sprintf("%s failure during %s on %s", f.Kind, f.Action, f.EntityType)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (f Failure) Unwrap() error { return f.Err }

// Message returns the user-facing description of the failure.
func (f Failure) Message() string {
	if f.Err != nil {
		return f.Err.Error()
	}
	return string(f.Kind) + " error"
}

// ErrorOccurred is the uniform client-notification event every domain-level
// failure converts into.
type ErrorOccurred struct {
	UserID        string
	Message       string
	Kind          ErrorKind
	Action        string
	EntityType    string
	EntityID      string
	OccurredAt    time.Time
	CorrelationID string
}

func (ErrorOccurred) EventName() string { return "error.occurred" }
