// Package replaybuffer holds the most recent notification per
// (channel kind, recipient) in a short-TTL store so clients that reconnect
// shortly after a server-side event can catch up on what they missed.
//
// The buffer is deliberately not a queue: a new write for the same key
// overwrites the previous entry, because the use case is "catch the most
// recent state change", not guaranteed delivery of every historical event.
// Entries expire automatically (2 minutes by default) when never consumed.
//
// Two Store implementations are provided: RedisStore for production, where
// expiry and overwrite semantics map directly onto SET with TTL, and
// MemoryStore for tests and single-process development.
//
//	store := replaybuffer.NewRedisStore(client)
//	buffer := replaybuffer.NewBuffer(store, replaybuffer.WithLogger(log))
//
//	// push side, best effort:
//	buffer.Offer(ctx, replaybuffer.ChannelError, userID, "ErrorOccurred", payload)
//
//	// reconnect side:
//	entry, err := buffer.Consume(ctx, replaybuffer.ChannelError, userID)
package replaybuffer
