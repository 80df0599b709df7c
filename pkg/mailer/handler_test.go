package mailer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/mailer"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.SendEmailParams
	err  error
}

func (s *recordingSender) SendEmail(_ context.Context, params mailer.SendEmailParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, params)
	return nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, e)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_UserRegistered(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	pub := &recordingPublisher{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h := mailer.NewHandler(sender, pub,
		mailer.Config{VerificationBaseURL: "https://app.example.com"},
		mailer.WithHandlerLogger(quietLogger()),
		mailer.WithHandlerClock(func() time.Time { return now }),
	)

	require.NoError(t, h.HandleUserRegistered(context.Background(), events.UserRegistered{
		UserID:        "7",
		Email:         "alice@example.com",
		UserName:      "alice",
		CorrelationID: "corr-1",
	}))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "alice@example.com", msg.SendTo)
	assert.Equal(t, "email-verification", msg.Tag)
	assert.Contains(t, msg.BodyHTML, "https://app.example.com/auth/verify?token=")
	assert.Contains(t, msg.BodyHTML, "alice")

	require.Len(t, pub.published, 2)
	verification, ok := pub.published[0].(events.VerificationEmailSent)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", verification.Recipient)
	assert.Equal(t, now, verification.SentAt)
	assert.Equal(t, "corr-1", verification.CorrelationID)

	sent, ok := pub.published[1].(events.EmailSent)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", sent.Recipient)
	assert.Equal(t, "email-verification", sent.Tag)
	assert.Equal(t, "corr-1", sent.CorrelationID)
}

func TestHandler_UserRegistered_SendFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("provider down")
	sender := &recordingSender{err: boom}
	pub := &recordingPublisher{}
	h := mailer.NewHandler(sender, pub, mailer.Config{}, mailer.WithHandlerLogger(quietLogger()))

	err := h.HandleUserRegistered(context.Background(), events.UserRegistered{
		Email:    "alice@example.com",
		UserName: "alice",
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, pub.published, "no follow-up events for mail that never left")
}

func TestHandler_UserRegistered_EscapesUserName(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	pub := &recordingPublisher{}
	h := mailer.NewHandler(sender, pub, mailer.Config{}, mailer.WithHandlerLogger(quietLogger()))

	require.NoError(t, h.HandleUserRegistered(context.Background(), events.UserRegistered{
		Email:    "alice@example.com",
		UserName: `<script>alert("x")</script>`,
	}))

	require.Len(t, sender.sent, 1)
	assert.False(t, strings.Contains(sender.sent[0].BodyHTML, "<script>"))
}
