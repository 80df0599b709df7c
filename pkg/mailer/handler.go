package mailer

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// publisher is the slice of the dispatcher the handler needs for follow-up
// events. Kept local so the package depends on a capability, not on the
// dispatcher itself.
type publisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Handler reacts to account lifecycle events with transactional email. On
// registration it sends the address-verification email and then publishes
// the follow-up events that feed the real-time and audit adapters.
type Handler struct {
	sender    Sender
	publisher publisher
	log       *slog.Logger
	baseURL   string
	now       func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the logger used for delivery diagnostics.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithHandlerClock overrides the handler's time source. Intended for tests.
func WithHandlerClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler creates a mail handler sending through sender and publishing
// follow-up events through pub.
func NewHandler(sender Sender, pub publisher, cfg Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		sender:    sender,
		publisher: pub,
		log:       slog.Default(),
		baseURL:   cfg.VerificationBaseURL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleUserRegistered sends the verification email for a fresh account and
// publishes VerificationEmailSent and EmailSent on success. A delivery
// failure is returned to the dispatcher, which logs and counts it; the
// follow-up events are only published for mail that actually left.
func (h *Handler) HandleUserRegistered(ctx context.Context, e events.UserRegistered) error {
	token := uuid.NewString()
	link := fmt.Sprintf("%s/auth/verify?token=%s", h.baseURL, token)
	params := SendEmailParams{
		SendTo:   e.Email,
		Subject:  "Verify your email address",
		BodyHTML: verificationBody(e.UserName, link),
		Tag:      "email-verification",
	}

	if err := h.sender.SendEmail(ctx, params); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "verification email sent",
		logger.Recipient(e.Email),
		logger.CorrelationID(e.CorrelationID),
	)

	sentAt := h.now()
	h.publisher.Publish(ctx, events.VerificationEmailSent{
		Recipient:     e.Email,
		Message:       "Verification email sent. Please check your inbox.",
		SentAt:        sentAt,
		CorrelationID: e.CorrelationID,
	})
	h.publisher.Publish(ctx, events.EmailSent{
		Recipient:     e.Email,
		Subject:       params.Subject,
		Tag:           params.Tag,
		SentAt:        sentAt,
		CorrelationID: e.CorrelationID,
	})
	return nil
}

func verificationBody(userName, link string) string {
	name := html.EscapeString(userName)
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Please confirm your email address by clicking the link below:</p>
<p><a href="%s">Verify email address</a></p>
<p>If you did not create this account, you can safely ignore this message.</p>
</body></html>`, name, link)
}
