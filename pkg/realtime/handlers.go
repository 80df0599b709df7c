package realtime

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/replaybuffer"
)

// logoutRedirectURL is where a force-logged-out client is sent.
const logoutRedirectURL = "/auth/login"

// logSendFailure records a transport push failure. Pushes are fire and
// forget: a failed push never fails the publish that triggered it.
func logSendFailure(ctx context.Context, log *slog.Logger, msg string, err error) {
	if err != nil {
		log.LogAttrs(ctx, slog.LevelError, "failed to push real-time message",
			logger.Channel(msg),
			logger.Error(err),
		)
	}
}

// ForecastHandler pushes forecast lifecycle changes to every connected
// client. Forecast messages have no single recipient, so they are never
// offered to the replay buffer.
type ForecastHandler struct {
	b   Broadcaster
	log *slog.Logger
}

// NewForecastHandler creates the forecast broadcast handler.
func NewForecastHandler(b Broadcaster, log *slog.Logger) *ForecastHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ForecastHandler{b: b, log: log}
}

func (h *ForecastHandler) HandleCreated(ctx context.Context, e events.ForecastCreated) error {
	logSendFailure(ctx, h.log, MsgForecastCreated, h.b.SendToAll(ctx, MsgForecastCreated, e.Forecast))
	return nil
}

func (h *ForecastHandler) HandleUpdated(ctx context.Context, e events.ForecastUpdated) error {
	logSendFailure(ctx, h.log, MsgForecastUpdated, h.b.SendToAll(ctx, MsgForecastUpdated, e.Forecast))
	return nil
}

func (h *ForecastHandler) HandleDeleted(ctx context.Context, e events.ForecastDeleted) error {
	logSendFailure(ctx, h.log, MsgForecastDeleted, h.b.SendToAll(ctx, MsgForecastDeleted, ForecastDeletedPayload{ID: e.ID}))
	return nil
}

// MailHandler pushes email notifications to the recipient's email-keyed
// group and offers each payload to the replay buffer under the mail channel,
// so a recipient who reconnects within the TTL still sees the notice.
type MailHandler struct {
	b      Broadcaster
	buffer *replaybuffer.Buffer
	log    *slog.Logger
}

// NewMailHandler creates the mail broadcast handler.
func NewMailHandler(b Broadcaster, buffer *replaybuffer.Buffer, log *slog.Logger) *MailHandler {
	if log == nil {
		log = slog.Default()
	}
	return &MailHandler{b: b, buffer: buffer, log: log}
}

func (h *MailHandler) HandleEmailSent(ctx context.Context, e events.EmailSent) error {
	payload := EmailSentPayload{
		Subject:       e.Subject,
		CorrelationID: e.CorrelationID,
	}
	logSendFailure(ctx, h.log, MsgEmailSent, h.b.SendToGroup(ctx, EmailGroup(e.Recipient), MsgEmailSent, payload))
	if h.buffer != nil {
		h.buffer.Offer(ctx, replaybuffer.ChannelMail, e.Recipient, MsgEmailSent, payload)
	}
	return nil
}

func (h *MailHandler) HandleVerificationEmailSent(ctx context.Context, e events.VerificationEmailSent) error {
	payload := VerificationEmailSentPayload{
		Message:       e.Message,
		CorrelationID: e.CorrelationID,
	}
	logSendFailure(ctx, h.log, MsgVerificationEmailSent, h.b.SendToGroup(ctx, EmailGroup(e.Recipient), MsgVerificationEmailSent, payload))
	if h.buffer != nil {
		h.buffer.Offer(ctx, replaybuffer.ChannelMail, e.Recipient, MsgVerificationEmailSent, payload)
	}
	return nil
}

// ErrorHandler pushes domain failures to the affected user. Every kind
// except Validation is offered to the replay buffer: a validation error
// means the user is still on the originating page and has already seen the
// real-time push, so there is nothing to replay after a reconnect.
type ErrorHandler struct {
	b      Broadcaster
	buffer *replaybuffer.Buffer
	log    *slog.Logger
}

// NewErrorHandler creates the error broadcast handler.
func NewErrorHandler(b Broadcaster, buffer *replaybuffer.Buffer, log *slog.Logger) *ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ErrorHandler{b: b, buffer: buffer, log: log}
}

func (h *ErrorHandler) Handle(ctx context.Context, e events.ErrorOccurred) error {
	payload := ErrorOccurredPayload{
		Message:       e.Message,
		ErrorType:     e.Kind,
		Action:        e.Action,
		EntityType:    e.EntityType,
		EntityID:      e.EntityID,
		OccurredAt:    e.OccurredAt,
		CorrelationID: e.CorrelationID,
	}
	logSendFailure(ctx, h.log, MsgErrorOccurred, h.b.SendToUser(ctx, e.UserID, MsgErrorOccurred, payload))

	if h.buffer != nil && e.Kind != events.KindValidation {
		h.buffer.Offer(ctx, replaybuffer.ChannelError, e.UserID, MsgErrorOccurred, payload)
	}
	return nil
}

// SessionHandler notifies a user that their session was revoked and forces
// the affected client to log out. Both messages target the user's group;
// neither is buffered, because a revoked session has nothing to reconnect
// with.
type SessionHandler struct {
	b   Broadcaster
	log *slog.Logger
}

// NewSessionHandler creates the session broadcast handler.
func NewSessionHandler(b Broadcaster, log *slog.Logger) *SessionHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{b: b, log: log}
}

func (h *SessionHandler) Handle(ctx context.Context, e events.SessionRevoked) error {
	group := UserGroup(e.UserID)

	revoked := SessionRevokedPayload{
		SessionID: e.SessionID,
		RevokedAt: e.RevokedAt,
		Reason:    e.Reason,
		RevokedBy: e.RevokedBy,
		Message:   "Your session has been revoked: " + e.Reason,
	}
	logSendFailure(ctx, h.log, MsgSessionRevoked, h.b.SendToGroup(ctx, group, MsgSessionRevoked, revoked))

	logout := ForceLogoutPayload{
		Reason:      e.Reason,
		RedirectURL: logoutRedirectURL,
	}
	logSendFailure(ctx, h.log, MsgForceLogout, h.b.SendToGroup(ctx, group, MsgForceLogout, logout))
	return nil
}
