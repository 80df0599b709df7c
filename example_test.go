package notifykit_test

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/notifykit"
	"github.com/dmitrymomot/notifykit/pkg/audit"
	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/realtime"
	"github.com/dmitrymomot/notifykit/pkg/replaybuffer"
)

func ExampleNew() {
	ctx := context.Background()

	// In-memory transports; production wiring swaps in the Redis store, a
	// NATS connection, and Postgres-backed audit storage.
	hub := realtime.NewHub()
	defer hub.Close()
	buffer := replaybuffer.NewBuffer(replaybuffer.NewMemoryStore())
	storage := audit.NewMemoryStorage()

	fabric := notifykit.New(
		notifykit.WithBroadcaster(hub),
		notifykit.WithReplayBuffer(buffer),
		notifykit.WithAudit(audit.NewRecorder(nil, audit.WithStorage(storage))),
	)

	// Services publish through the helpers after a state change commits.
	fabric.Notifier().ForecastCreated(ctx, events.Forecast{
		ID:           "f1",
		TemperatureC: 21,
		Summary:      "Mild",
	}, events.NewCorrelationID())

	fmt.Println("audit records:", storage.Len())
	// Output: audit records: 1
}

func ExampleFabric_Reporter() {
	ctx := context.Background()

	hub := realtime.NewHub()
	defer hub.Close()

	fabric := notifykit.New(notifykit.WithBroadcaster(hub))

	// A failed operation reports through the same fabric; the affected user
	// gets a real-time error notice, nobody else sees anything.
	failure := events.NewFailure(events.KindDatabase, "create", "forecast", "", nil)
	fabric.Reporter().ReportFailure(ctx, "user-42", failure, events.NewCorrelationID())

	fmt.Println("reported")
	// Output: reported
}
