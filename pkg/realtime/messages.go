package realtime

import (
	"time"

	"github.com/dmitrymomot/notifykit/pkg/events"
)

// Message names pushed over the real-time channel. Clients subscribe by
// name, so these are part of the wire contract.
const (
	MsgEmailSent             = "EmailSentToUser"
	MsgVerificationEmailSent = "VerificationEmailSentToUser"
	MsgErrorOccurred         = "ErrorOccurred"
	MsgSessionRevoked        = "SessionRevoked"
	MsgForceLogout           = "ForceLogout"
	MsgForecastCreated       = "ForecastCreated"
	MsgForecastUpdated       = "ForecastUpdated"
	MsgForecastDeleted       = "ForecastDeleted"
)

// EmailSentPayload notifies a user that a transactional email went out.
type EmailSentPayload struct {
	Subject       string `json:"subject"`
	CorrelationID string `json:"correlation_id"`
}

// VerificationEmailSentPayload notifies a user that a verification email
// went out.
type VerificationEmailSentPayload struct {
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id"`
}

// ErrorOccurredPayload carries a domain failure to the affected user.
type ErrorOccurredPayload struct {
	Message       string           `json:"message"`
	ErrorType     events.ErrorKind `json:"error_type"`
	Action        string           `json:"action"`
	EntityType    string           `json:"entity_type"`
	EntityID      string           `json:"entity_id"`
	OccurredAt    time.Time        `json:"occurred_at"`
	CorrelationID string           `json:"correlation_id"`
}

// SessionRevokedPayload informs a user that one of their sessions was
// terminated.
type SessionRevokedPayload struct {
	SessionID string    `json:"session_id"`
	RevokedAt time.Time `json:"revoked_at"`
	Reason    string    `json:"reason"`
	RevokedBy string    `json:"revoked_by"`
	Message   string    `json:"message"`
}

// ForceLogoutPayload instructs the client to drop its session and redirect.
type ForceLogoutPayload struct {
	Reason      string `json:"reason"`
	RedirectURL string `json:"redirect_url"`
}

// ForecastDeletedPayload identifies a removed forecast.
type ForecastDeletedPayload struct {
	ID string `json:"id"`
}
