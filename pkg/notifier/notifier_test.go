package notifier_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/notifier"
)

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

func TestNotifier_ForecastLifecycle(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	n := notifier.New(pub)
	ctx := context.Background()

	f := events.Forecast{ID: "f1", TemperatureC: 20, Summary: "Mild"}
	n.ForecastCreated(ctx, f, "corr-1")
	n.ForecastUpdated(ctx, f, "corr-2")
	n.ForecastDeleted(ctx, "f1", "corr-3")

	require.Len(t, pub.published, 3)
	created, ok := pub.published[0].(events.ForecastCreated)
	require.True(t, ok)
	assert.Equal(t, "f1", created.Forecast.ID)
	assert.Equal(t, "corr-1", created.CorrelationID)

	deleted, ok := pub.published[2].(events.ForecastDeleted)
	require.True(t, ok)
	assert.Equal(t, "f1", deleted.ID)
}

func TestNotifier_StampsTime(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := notifier.New(pub, notifier.WithClock(func() time.Time { return now }))

	n.UserRegistered(context.Background(), "7", "a@b.com", "alice", "10.0.0.1", "corr-1")

	require.Len(t, pub.published, 1)
	registered, ok := pub.published[0].(events.UserRegistered)
	require.True(t, ok)
	assert.Equal(t, now, registered.RegisteredAt)
	assert.Equal(t, "10.0.0.1", registered.IPAddress)
}

func TestNotifier_SessionRevokedCarriesRevoker(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	n := notifier.New(pub)

	n.SessionRevoked(context.Background(), "s1", "42", "policy", "admin-7", "corr-1")

	require.Len(t, pub.published, 1)
	revoked, ok := pub.published[0].(events.SessionRevoked)
	require.True(t, ok)
	assert.Equal(t, "42", revoked.UserID)
	assert.Equal(t, "admin-7", revoked.RevokedBy)
	assert.Equal(t, "policy", revoked.Reason)
}

func TestReporter_ReportFailure(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := notifier.NewReporter(pub,
		notifier.WithReporterLogger(quietLogger()),
		notifier.WithReporterClock(func() time.Time { return now }),
	)

	failure := events.NewFailure(events.KindDatabase, "create", "forecast", "f1", errors.New("db down"))
	r.ReportFailure(context.Background(), "42", failure, "corr-1")

	require.Len(t, pub.published, 1)
	occurred, ok := pub.published[0].(events.ErrorOccurred)
	require.True(t, ok)
	assert.Equal(t, "42", occurred.UserID)
	assert.Equal(t, events.KindDatabase, occurred.Kind)
	assert.Equal(t, "create", occurred.Action)
	assert.Equal(t, "forecast", occurred.EntityType)
	assert.Equal(t, "f1", occurred.EntityID)
	assert.Equal(t, "db down", occurred.Message)
	assert.Equal(t, now, occurred.OccurredAt)
}

func TestReporter_DropsWhenActorUnknown(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	r := notifier.NewReporter(pub, notifier.WithReporterLogger(quietLogger()))

	failure := events.NewFailure(events.KindValidation, "create", "forecast", "", nil)
	r.ReportFailure(context.Background(), "", failure, "corr-1")

	assert.Empty(t, pub.published)
}
