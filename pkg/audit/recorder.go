package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/pkg/events"
)

// Storage persists audit records. Implementations must be safe for
// concurrent use.
type Storage interface {
	Store(ctx context.Context, rec Record) error
}

// Recorder turns published events into audit records. Every record is
// emitted as one structured log line; when a Storage is configured the
// record is persisted as well. Events the recorder does not recognize are
// logged with the event name only, so adding a new event type never breaks
// the audit trail, it just yields a sparse record until a mapping is added.
type Recorder struct {
	log     *slog.Logger
	storage Storage
	now     func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithStorage enables persistent audit storage in addition to log output.
func WithStorage(s Storage) RecorderOption {
	return func(r *Recorder) {
		r.storage = s
	}
}

// WithClock overrides the recorder's time source. Intended for tests.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder creates a Recorder writing through the given logger.
func NewRecorder(log *slog.Logger, opts ...RecorderOption) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	r := &Recorder{
		log: log.With(slog.String("component", "audit")),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecordEvent builds an audit record for the event, logs it, and persists it
// when storage is configured. A storage failure is returned to the caller so
// the dispatcher can count and log it, but by then the log line has already
// been written: the trail degrades to log-only rather than losing the entry.
func (r *Recorder) RecordEvent(ctx context.Context, e events.Event) error {
	rec := recordFor(e)
	rec.ID = uuid.NewString()
	rec.RecordedAt = r.now()
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = rec.RecordedAt
	}

	attrs := []any{
		slog.String("audit_id", rec.ID),
		slog.String("event", rec.Event),
		slog.String("actor", rec.Actor),
		slog.String("action", rec.Action),
		slog.String("entity_type", rec.EntityType),
		slog.String("entity_id", rec.EntityID),
		slog.String("result", string(rec.Result)),
	}
	if rec.CorrelationID != "" {
		attrs = append(attrs, slog.String("correlation_id", rec.CorrelationID))
	}
	if rec.Error != "" {
		attrs = append(attrs, slog.String("error", rec.Error))
	}
	r.log.InfoContext(ctx, "audit", attrs...)

	if r.storage == nil {
		return nil
	}
	if err := r.storage.Store(ctx, rec); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// recordFor maps each event type to its audit fields. Actor is the user who
// performed the action, which for administrative events is the admin, not
// the affected user.
func recordFor(e events.Event) Record {
	rec := Record{Event: e.EventName(), Result: ResultSuccess}

	switch ev := e.(type) {
	case events.UserRegistered:
		rec.Actor = ev.UserID
		rec.Action = "register"
		rec.EntityType = "user"
		rec.EntityID = ev.UserID
		rec.OccurredAt = ev.RegisteredAt
		rec.CorrelationID = ev.CorrelationID
		rec.Metadata = map[string]any{"email": ev.Email, "ip_address": ev.IPAddress}
	case events.UserLoggedIn:
		rec.Actor = ev.UserID
		rec.Action = "login"
		rec.EntityType = "session"
		rec.EntityID = ev.SessionID
		rec.OccurredAt = ev.LoggedInAt
		rec.CorrelationID = ev.CorrelationID
		rec.Metadata = map[string]any{"ip_address": ev.IPAddress}
	case events.UserLoggedOut:
		rec.Actor = ev.UserID
		rec.Action = "logout"
		rec.EntityType = "session"
		rec.EntityID = ev.SessionID
		rec.OccurredAt = ev.LoggedOutAt
		rec.CorrelationID = ev.CorrelationID
	case events.SessionCreated:
		rec.Actor = ev.UserID
		rec.Action = "create"
		rec.EntityType = "session"
		rec.EntityID = ev.SessionID
		rec.OccurredAt = ev.CreatedAt
		rec.CorrelationID = ev.CorrelationID
		rec.Metadata = map[string]any{"ip_address": ev.IPAddress, "user_agent": ev.UserAgent}
	case events.SessionRevoked:
		rec.Actor = ev.RevokedBy
		rec.Action = "revoke"
		rec.EntityType = "session"
		rec.EntityID = ev.SessionID
		rec.OccurredAt = ev.RevokedAt
		rec.CorrelationID = ev.CorrelationID
		rec.Metadata = map[string]any{"user_id": ev.UserID, "reason": ev.Reason}
	case events.APIKeyCreated:
		rec.Actor = ev.UserID
		rec.Action = "create"
		rec.EntityType = "api_key"
		rec.EntityID = ev.KeyID
		rec.OccurredAt = ev.CreatedAt
		rec.CorrelationID = ev.CorrelationID
		rec.Metadata = map[string]any{"name": ev.Name}
	case events.APIKeyRevoked:
		rec.Actor = ev.RevokedBy
		rec.Action = "revoke"
		rec.EntityType = "api_key"
		rec.EntityID = ev.KeyID
		rec.OccurredAt = ev.RevokedAt
		rec.CorrelationID = ev.CorrelationID
		rec.Metadata = map[string]any{"user_id": ev.UserID}
	case events.UserRoleChanged:
		rec.Actor = ev.ChangedBy
		rec.Action = roleChangeAction(ev.Added)
		rec.EntityType = "user"
		rec.EntityID = ev.UserID
		rec.OccurredAt = ev.ChangedAt
		rec.CorrelationID = ev.CorrelationID
		rec.Metadata = map[string]any{"role": ev.Role}
	case events.UserClaimChanged:
		rec.Actor = ev.ChangedBy
		rec.Action = claimChangeAction(ev.Added)
		rec.EntityType = "user"
		rec.EntityID = ev.UserID
		rec.OccurredAt = ev.ChangedAt
		rec.CorrelationID = ev.CorrelationID
		rec.Metadata = map[string]any{"claim_type": ev.ClaimType, "claim_value": ev.ClaimValue}
	case events.EmailSent:
		rec.Action = "send_email"
		rec.EntityType = "email"
		rec.EntityID = ev.Recipient
		rec.OccurredAt = ev.SentAt
		rec.CorrelationID = ev.CorrelationID
		rec.Metadata = map[string]any{"subject": ev.Subject, "tag": ev.Tag}
	case events.VerificationEmailSent:
		rec.Action = "send_verification_email"
		rec.EntityType = "email"
		rec.EntityID = ev.Recipient
		rec.OccurredAt = ev.SentAt
		rec.CorrelationID = ev.CorrelationID
	case events.ForecastCreated:
		rec.Action = "create"
		rec.EntityType = "forecast"
		rec.EntityID = ev.Forecast.ID
		rec.CorrelationID = ev.CorrelationID
	case events.ForecastUpdated:
		rec.Action = "update"
		rec.EntityType = "forecast"
		rec.EntityID = ev.Forecast.ID
		rec.CorrelationID = ev.CorrelationID
	case events.ForecastDeleted:
		rec.Action = "delete"
		rec.EntityType = "forecast"
		rec.EntityID = ev.ID
		rec.CorrelationID = ev.CorrelationID
	case events.ErrorOccurred:
		rec.Actor = ev.UserID
		rec.Action = ev.Action
		rec.EntityType = ev.EntityType
		rec.EntityID = ev.EntityID
		rec.Result = ResultFailure
		rec.Error = ev.Message
		rec.OccurredAt = ev.OccurredAt
		rec.CorrelationID = ev.CorrelationID
		rec.Metadata = map[string]any{"kind": string(ev.Kind)}
	}

	return rec
}

func roleChangeAction(added bool) string {
	if added {
		return "grant_role"
	}
	return "revoke_role"
}

func claimChangeAction(added bool) string {
	if added {
		return "grant_claim"
	}
	return "revoke_claim"
}
