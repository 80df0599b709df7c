// Package realtime is the push side of the notification fabric: an
// in-memory hub that fans named messages out to connected clients, the event
// handlers that translate published events into those messages, and an SSE
// endpoint for clients to receive them.
//
// # Targets
//
// Messages address one of three targets: every connected client
// (SendToAll), one authenticated user (SendToUser, backed by the "User_<id>"
// group each of the user's connections joins), or a named group such as an
// email-keyed one (SendToGroup).
//
// # Delivery semantics
//
// Pushes are best effort. Sends never block: a subscription whose buffer is
// full is disconnected, on the assumption that its client will reconnect and
// catch up through pkg/replaybuffer. Handlers log transport failures and
// report success to the dispatcher regardless, so one dead transport cannot
// suppress sibling adapters.
//
// The handlers also feed the replay buffer for recipient-addressed messages
// (mail and error channels); validation-kind errors are excluded because the
// user is still on the originating page. The SSE endpoint consumes buffered
// entries on (re)connect before switching to live hub delivery.
package realtime
