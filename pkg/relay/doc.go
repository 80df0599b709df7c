// Package relay propagates identity and lifecycle events across process
// instances over NATS, giving admin surfaces on horizontally scaled nodes a
// soft real-time view of what happened elsewhere.
//
// Each relayed event type maps to exactly one fixed subject
// (admin.user.registered, admin.session.created, ...) carrying a JSON
// message with a whitelisted subset of the event's fields. The subject table
// intentionally covers identity and lifecycle events only; user-facing
// events such as session revocation stay on the local real-time channel.
//
// Delivery is best effort: when the broker connection is down an event is
// skipped with a warning. There is no queue and no retry, because the relay
// serves admin visibility, not cross-process consistency.
//
// The Listener is the receiving half: it subscribes to the relay subjects
// and republishes inbound messages to the local hub's admin group.
package relay
