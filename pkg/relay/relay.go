package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// Conn is the subset of the broker client the relay needs. *nats.Conn
// satisfies it.
type Conn interface {
	IsConnected() bool
	Publish(subject string, data []byte) error
}

// Relay republishes identity and lifecycle events on fixed broker subjects
// so other process instances observe the same domain event.
//
// The relay exists for soft real-time admin visibility, not durable
// cross-process consistency: when the broker connection is down the event is
// skipped with a warning, never queued or retried.
type Relay struct {
	conn Conn
	log  *slog.Logger
}

// New creates a relay over an established broker connection.
func New(conn Conn, log *slog.Logger) *Relay {
	if conn == nil {
		panic("relay: conn cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Relay{conn: conn, log: log}
}

func (r *Relay) publish(ctx context.Context, subject string, message any) error {
	if !r.conn.IsConnected() {
		r.log.LogAttrs(ctx, slog.LevelWarn, "broker connection not established, event not relayed",
			logger.Channel(subject),
		)
		return nil
	}

	data, err := json.Marshal(message)
	if err != nil {
		return errors.Join(ErrMarshalMessage, err)
	}
	if err := r.conn.Publish(subject, data); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

func (r *Relay) HandleUserRegistered(ctx context.Context, e events.UserRegistered) error {
	return r.publish(ctx, SubjectUserRegistered, UserRegisteredMessage{
		UserID:       e.UserID,
		Email:        e.Email,
		UserName:     e.UserName,
		RegisteredAt: e.RegisteredAt,
		IPAddress:    e.IPAddress,
	})
}

func (r *Relay) HandleUserLoggedIn(ctx context.Context, e events.UserLoggedIn) error {
	return r.publish(ctx, SubjectUserLoggedIn, UserLoggedInMessage{
		UserID:     e.UserID,
		Email:      e.Email,
		SessionID:  e.SessionID,
		LoggedInAt: e.LoggedInAt,
		IPAddress:  e.IPAddress,
	})
}

func (r *Relay) HandleUserLoggedOut(ctx context.Context, e events.UserLoggedOut) error {
	return r.publish(ctx, SubjectUserLoggedOut, UserLoggedOutMessage{
		UserID:      e.UserID,
		SessionID:   e.SessionID,
		LoggedOutAt: e.LoggedOutAt,
	})
}

func (r *Relay) HandleSessionCreated(ctx context.Context, e events.SessionCreated) error {
	return r.publish(ctx, SubjectSessionCreated, SessionCreatedMessage{
		SessionID: e.SessionID,
		UserID:    e.UserID,
		CreatedAt: e.CreatedAt,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
	})
}

func (r *Relay) HandleAPIKeyCreated(ctx context.Context, e events.APIKeyCreated) error {
	return r.publish(ctx, SubjectAPIKeyCreated, APIKeyCreatedMessage{
		KeyID:     e.KeyID,
		UserID:    e.UserID,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
	})
}

func (r *Relay) HandleAPIKeyRevoked(ctx context.Context, e events.APIKeyRevoked) error {
	return r.publish(ctx, SubjectAPIKeyRevoked, APIKeyRevokedMessage{
		KeyID:     e.KeyID,
		UserID:    e.UserID,
		RevokedAt: e.RevokedAt,
		RevokedBy: e.RevokedBy,
	})
}

func (r *Relay) HandleUserRoleChanged(ctx context.Context, e events.UserRoleChanged) error {
	return r.publish(ctx, SubjectUserRoleChanged, UserRoleChangedMessage{
		UserID:    e.UserID,
		Role:      e.Role,
		Added:     e.Added,
		ChangedBy: e.ChangedBy,
		ChangedAt: e.ChangedAt,
	})
}

func (r *Relay) HandleUserClaimChanged(ctx context.Context, e events.UserClaimChanged) error {
	return r.publish(ctx, SubjectUserClaimChanged, UserClaimChangedMessage{
		UserID:     e.UserID,
		ClaimType:  e.ClaimType,
		ClaimValue: e.ClaimValue,
		Added:      e.Added,
		ChangedBy:  e.ChangedBy,
		ChangedAt:  e.ChangedAt,
	})
}
