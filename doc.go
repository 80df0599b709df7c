// Package notifykit wires a typed event fabric for multi-surface
// applications: services publish domain events through a best-effort
// dispatcher, and the configured adapters fan each event out to its
// surfaces. Real-time broadcast, cross-process relay, audit trail, and
// transactional mail each subscribe to the event types they care about
// through one explicit registration table built at startup.
//
// A minimal wiring:
//
//	hub := realtime.NewHub()
//	fabric := notifykit.New(
//		notifykit.WithLogger(logger),
//		notifykit.WithBroadcaster(hub),
//		notifykit.WithReplayBuffer(buffer),
//		notifykit.WithAudit(audit.NewRecorder(logger)),
//	)
//
//	fabric.Notifier().ForecastCreated(ctx, forecast, events.NewCorrelationID())
//
// Publishing never fails the business operation that triggered it: handler
// errors and panics are isolated per handler, logged, counted, and dropped.
package notifykit
