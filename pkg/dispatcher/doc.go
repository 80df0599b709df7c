// Package dispatcher implements the best-effort fan-out at the center of the
// notification fabric: a published event is delivered to every handler
// registered for its exact concrete type, each inside an isolated failure
// boundary.
//
// # Architecture
//
// The package separates two concerns:
//
//   - Registry is a static handler table, populated once during process
//     wiring via the generic Register/RegisterNamed functions and read-only
//     afterward. Handlers are keyed by the concrete event type; there is no
//     upcasting to interfaces or base types.
//
//   - Dispatcher resolves the table for each Publish call and invokes the
//     handlers sequentially in registration order. An error or panic from
//     handler i is logged with the event and handler names and execution
//     proceeds to handler i+1; nothing propagates to the publisher. Publish
//     has no return value on purpose: event delivery is not transactional
//     and not guaranteed.
//
// # Usage
//
//	reg := dispatcher.NewRegistry()
//	dispatcher.Register(reg, auditRecorder)
//	dispatcher.RegisterNamed(reg, "realtime.MailHandler",
//	    dispatcher.HandlerFunc[events.EmailSent](mail.HandleEmailSent))
//
//	d := dispatcher.New(reg, dispatcher.WithLogger(log))
//	d.Publish(ctx, events.EmailSent{Recipient: "a@b.com", Subject: "Hi"})
//
// A canceled context stops the dispatcher from starting work on the
// remaining handlers; it does not abort handler I/O already in flight.
package dispatcher
