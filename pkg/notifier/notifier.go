package notifier

import (
	"context"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/events"
)

// Notifier bundles the business-action publish helpers services call after
// state changes commit. Each helper stamps the event with the current time
// and the caller's correlation id; everything downstream (broadcast, relay,
// audit, mail) hangs off the dispatcher.
type Notifier struct {
	publisher publisher
	now       func() time.Time
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) NotifierOption {
	return func(n *Notifier) {
		if now != nil {
			n.now = now
		}
	}
}

// New creates a Notifier publishing through pub.
func New(pub publisher, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		publisher: pub,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ForecastCreated announces a stored forecast.
func (n *Notifier) ForecastCreated(ctx context.Context, f events.Forecast, correlationID string) {
	n.publisher.Publish(ctx, events.ForecastCreated{Forecast: f, CorrelationID: correlationID})
}

// ForecastUpdated announces a changed forecast.
func (n *Notifier) ForecastUpdated(ctx context.Context, f events.Forecast, correlationID string) {
	n.publisher.Publish(ctx, events.ForecastUpdated{Forecast: f, CorrelationID: correlationID})
}

// ForecastDeleted announces a removed forecast.
func (n *Notifier) ForecastDeleted(ctx context.Context, id, correlationID string) {
	n.publisher.Publish(ctx, events.ForecastDeleted{ID: id, CorrelationID: correlationID})
}

// UserRegistered announces a freshly created account.
func (n *Notifier) UserRegistered(ctx context.Context, userID, email, userName, ipAddress, correlationID string) {
	n.publisher.Publish(ctx, events.UserRegistered{
		UserID:        userID,
		Email:         email,
		UserName:      userName,
		RegisteredAt:  n.now(),
		IPAddress:     ipAddress,
		CorrelationID: correlationID,
	})
}

// UserLoggedIn announces a successful authentication.
func (n *Notifier) UserLoggedIn(ctx context.Context, userID, email, sessionID, ipAddress, correlationID string) {
	n.publisher.Publish(ctx, events.UserLoggedIn{
		UserID:        userID,
		Email:         email,
		SessionID:     sessionID,
		LoggedInAt:    n.now(),
		IPAddress:     ipAddress,
		CorrelationID: correlationID,
	})
}

// UserLoggedOut announces a user-initiated session end.
func (n *Notifier) UserLoggedOut(ctx context.Context, userID, sessionID, correlationID string) {
	n.publisher.Publish(ctx, events.UserLoggedOut{
		UserID:        userID,
		SessionID:     sessionID,
		LoggedOutAt:   n.now(),
		CorrelationID: correlationID,
	})
}

// SessionCreated announces a newly issued session.
func (n *Notifier) SessionCreated(ctx context.Context, sessionID, userID, ipAddress, userAgent, correlationID string) {
	n.publisher.Publish(ctx, events.SessionCreated{
		SessionID:     sessionID,
		UserID:        userID,
		CreatedAt:     n.now(),
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
		CorrelationID: correlationID,
	})
}

// SessionRevoked announces an administrative session termination. The
// affected user receives the revocation notice and forced logout over the
// real-time channel.
func (n *Notifier) SessionRevoked(ctx context.Context, sessionID, userID, reason, revokedBy, correlationID string) {
	n.publisher.Publish(ctx, events.SessionRevoked{
		SessionID:     sessionID,
		UserID:        userID,
		RevokedAt:     n.now(),
		Reason:        reason,
		RevokedBy:     revokedBy,
		CorrelationID: correlationID,
	})
}

// APIKeyCreated announces a newly issued API key.
func (n *Notifier) APIKeyCreated(ctx context.Context, keyID, userID, name, correlationID string) {
	n.publisher.Publish(ctx, events.APIKeyCreated{
		KeyID:         keyID,
		UserID:        userID,
		Name:          name,
		CreatedAt:     n.now(),
		CorrelationID: correlationID,
	})
}

// APIKeyRevoked announces an invalidated API key.
func (n *Notifier) APIKeyRevoked(ctx context.Context, keyID, userID, revokedBy, correlationID string) {
	n.publisher.Publish(ctx, events.APIKeyRevoked{
		KeyID:         keyID,
		UserID:        userID,
		RevokedAt:     n.now(),
		RevokedBy:     revokedBy,
		CorrelationID: correlationID,
	})
}

// UserRoleChanged announces a role grant or removal.
func (n *Notifier) UserRoleChanged(ctx context.Context, userID, role string, added bool, changedBy, correlationID string) {
	n.publisher.Publish(ctx, events.UserRoleChanged{
		UserID:        userID,
		Role:          role,
		Added:         added,
		ChangedBy:     changedBy,
		ChangedAt:     n.now(),
		CorrelationID: correlationID,
	})
}

// UserClaimChanged announces a claim grant or removal.
func (n *Notifier) UserClaimChanged(ctx context.Context, userID, claimType, claimValue string, added bool, changedBy, correlationID string) {
	n.publisher.Publish(ctx, events.UserClaimChanged{
		UserID:        userID,
		ClaimType:     claimType,
		ClaimValue:    claimValue,
		Added:         added,
		ChangedBy:     changedBy,
		ChangedAt:     n.now(),
		CorrelationID: correlationID,
	})
}
