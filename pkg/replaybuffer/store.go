package replaybuffer

import (
	"context"
	"encoding/json"
	"time"
)

// ChannelKind names the notification channel a buffered entry belongs to.
// Together with the recipient key it forms the storage key, so at most one
// entry per kind exists for a recipient at any time.
type ChannelKind string

const (
	ChannelMail  ChannelKind = "mail"
	ChannelError ChannelKind = "error"
)

// Entry is the buffered payload held for reconnect catch-up.
type Entry struct {
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload"`
	WrittenAt time.Time       `json:"written_at"`
}

// Store is a key-value store with per-key expiry. Put replaces any existing
// entry for the same (kind, recipient) pair: the buffer keeps only the most
// recent notification of a kind, never a log of missed events.
type Store interface {
	Put(ctx context.Context, kind ChannelKind, recipient string, entry Entry, ttl time.Duration) error
	// Get returns ErrEntryNotFound when no live entry exists for the key.
	Get(ctx context.Context, kind ChannelKind, recipient string) (Entry, error)
	Delete(ctx context.Context, kind ChannelKind, recipient string) error
}
