package notifykit_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit"
	"github.com/dmitrymomot/notifykit/pkg/audit"
	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/mailer"
	"github.com/dmitrymomot/notifykit/pkg/realtime"
	"github.com/dmitrymomot/notifykit/pkg/relay"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sentMessage struct {
	Target  string // "all", "user:<id>", "group:<name>"
	Name    string
	Payload any
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (b *recordingBroadcaster) SendToAll(_ context.Context, name string, payload any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sentMessage{Target: "all", Name: name, Payload: payload})
	return nil
}

func (b *recordingBroadcaster) SendToUser(_ context.Context, userID, name string, payload any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sentMessage{Target: "user:" + userID, Name: name, Payload: payload})
	return nil
}

func (b *recordingBroadcaster) SendToGroup(_ context.Context, group, name string, payload any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sentMessage{Target: "group:" + group, Name: name, Payload: payload})
	return nil
}

type published struct {
	Subject string
	Data    []byte
}

type fakeConn struct {
	mu        sync.Mutex
	connected bool
	published []published
}

func (c *fakeConn) IsConnected() bool { return c.connected }

func (c *fakeConn) Publish(subject string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, published{Subject: subject, Data: data})
	return nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.SendEmailParams
}

func (s *recordingSender) SendEmail(_ context.Context, params mailer.SendEmailParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, params)
	return nil
}

func TestFabric_EmptyFabricIsNoOp(t *testing.T) {
	t.Parallel()

	fabric := notifykit.New(notifykit.WithLogger(quietLogger()))

	assert.NotPanics(t, func() {
		fabric.Publish(context.Background(), events.ForecastCreated{Forecast: events.Forecast{ID: "f1"}})
	})
}

func TestFabric_SessionRevoked(t *testing.T) {
	t.Parallel()

	broadcaster := &recordingBroadcaster{}
	conn := &fakeConn{connected: true}
	storage := audit.NewMemoryStorage()
	fabric := notifykit.New(
		notifykit.WithLogger(quietLogger()),
		notifykit.WithBroadcaster(broadcaster),
		notifykit.WithRelay(conn),
		notifykit.WithAudit(audit.NewRecorder(quietLogger(), audit.WithStorage(storage))),
	)

	fabric.Publish(context.Background(), events.SessionRevoked{
		SessionID: "s1",
		UserID:    "42",
		RevokedAt: time.Now(),
		Reason:    "policy violation",
		RevokedBy: "admin-7",
	})

	// The affected user gets exactly two messages, both on their own group.
	require.Len(t, broadcaster.sent, 2)
	assert.Equal(t, "group:User_42", broadcaster.sent[0].Target)
	assert.Equal(t, realtime.MsgSessionRevoked, broadcaster.sent[0].Name)
	assert.Equal(t, "group:User_42", broadcaster.sent[1].Target)
	assert.Equal(t, realtime.MsgForceLogout, broadcaster.sent[1].Name)

	// Session revocation stays local: nothing crosses the broker.
	assert.Empty(t, conn.published)

	// And it lands in the audit trail with the admin as actor.
	records := storage.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "admin-7", records[0].Actor)
	assert.Equal(t, "revoke", records[0].Action)
}

func TestFabric_UserRegistered(t *testing.T) {
	t.Parallel()

	broadcaster := &recordingBroadcaster{}
	conn := &fakeConn{connected: true}
	sender := &recordingSender{}
	storage := audit.NewMemoryStorage()
	fabric := notifykit.New(
		notifykit.WithLogger(quietLogger()),
		notifykit.WithBroadcaster(broadcaster),
		notifykit.WithRelay(conn),
		notifykit.WithAudit(audit.NewRecorder(quietLogger(), audit.WithStorage(storage))),
		notifykit.WithMailer(sender, mailer.Config{VerificationBaseURL: "https://app.example.com"}),
	)

	fabric.Publish(context.Background(), events.UserRegistered{
		UserID:        "7",
		Email:         "alice@example.com",
		UserName:      "alice",
		RegisteredAt:  time.Now(),
		IPAddress:     "10.0.0.1",
		CorrelationID: "corr-1",
	})

	// Relay carries the registration with the whitelisted fields.
	require.Len(t, conn.published, 1)
	assert.Equal(t, relay.SubjectUserRegistered, conn.published[0].Subject)
	var body map[string]any
	require.NoError(t, json.Unmarshal(conn.published[0].Data, &body))
	assert.Equal(t, "7", body["UserId"])
	assert.Equal(t, "10.0.0.1", body["IpAddress"])

	// The verification email went out...
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "alice@example.com", sender.sent[0].SendTo)

	// ...and its follow-up events flowed back through the fabric to the
	// recipient's email-keyed group.
	var names []string
	for _, msg := range broadcaster.sent {
		if msg.Target == "group:Email_alice@example.com" {
			names = append(names, msg.Name)
		}
	}
	assert.ElementsMatch(t, []string{realtime.MsgVerificationEmailSent, realtime.MsgEmailSent}, names)

	// Audit saw the registration plus both email events.
	var audited []string
	for _, rec := range storage.Records() {
		audited = append(audited, rec.Event)
	}
	assert.Contains(t, audited, "user.registered")
	assert.Contains(t, audited, "email.verification_sent")
	assert.Contains(t, audited, "email.sent")
}

func TestFabric_ValidationErrorReachesUserOnly(t *testing.T) {
	t.Parallel()

	broadcaster := &recordingBroadcaster{}
	conn := &fakeConn{connected: true}
	fabric := notifykit.New(
		notifykit.WithLogger(quietLogger()),
		notifykit.WithBroadcaster(broadcaster),
		notifykit.WithRelay(conn),
	)

	fabric.Reporter().ReportFailure(context.Background(), "42",
		events.NewFailure(events.KindValidation, "create", "forecast", "", nil), "corr-1")

	require.Len(t, broadcaster.sent, 1)
	assert.Equal(t, "user:42", broadcaster.sent[0].Target)
	assert.Equal(t, realtime.MsgErrorOccurred, broadcaster.sent[0].Name)
	assert.Empty(t, conn.published, "errors never cross the broker")
}

func TestFabric_ForecastLifecycleBroadcastsToAll(t *testing.T) {
	t.Parallel()

	broadcaster := &recordingBroadcaster{}
	fabric := notifykit.New(
		notifykit.WithLogger(quietLogger()),
		notifykit.WithBroadcaster(broadcaster),
	)
	n := fabric.Notifier()
	ctx := context.Background()

	n.ForecastCreated(ctx, events.Forecast{ID: "f1"}, "corr-1")
	n.ForecastUpdated(ctx, events.Forecast{ID: "f1"}, "corr-2")
	n.ForecastDeleted(ctx, "f1", "corr-3")

	require.Len(t, broadcaster.sent, 3)
	for _, msg := range broadcaster.sent {
		assert.Equal(t, "all", msg.Target)
	}
	assert.Equal(t, realtime.MsgForecastCreated, broadcaster.sent[0].Name)
	assert.Equal(t, realtime.MsgForecastUpdated, broadcaster.sent[1].Name)
	assert.Equal(t, realtime.MsgForecastDeleted, broadcaster.sent[2].Name)
}

func TestFabric_DisconnectedRelaySkipsQuietly(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{connected: false}
	fabric := notifykit.New(
		notifykit.WithLogger(quietLogger()),
		notifykit.WithRelay(conn),
	)

	assert.NotPanics(t, func() {
		fabric.Notifier().UserLoggedIn(context.Background(), "1", "a@b.com", "s1", "10.0.0.1", "corr-1")
	})
	assert.Empty(t, conn.published)
}
