package replaybuffer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

// DefaultTTL matches every observed call site: a buffered notification only
// needs to survive the gap between a push and the client's reconnect.
const DefaultTTL = 2 * time.Minute

// Buffer offers notifications to a short-TTL store so a recipient who was
// not connected when a push fired can catch up on reconnect. Buffering is
// best effort: store unavailability is logged and never fails the primary
// broadcast.
type Buffer struct {
	store Store
	ttl   time.Duration
	log   *slog.Logger
	now   func() time.Time
}

// BufferOption configures a Buffer.
type BufferOption func(*Buffer)

// WithTTL overrides the entry lifetime.
func WithTTL(ttl time.Duration) BufferOption {
	return func(b *Buffer) {
		if ttl > 0 {
			b.ttl = ttl
		}
	}
}

// WithLogger sets the logger for buffering diagnostics.
func WithLogger(log *slog.Logger) BufferOption {
	return func(b *Buffer) {
		if log != nil {
			b.log = log
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) BufferOption {
	return func(b *Buffer) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuffer creates a replay buffer over the given store.
func NewBuffer(store Store, opts ...BufferOption) *Buffer {
	if store == nil {
		panic("replaybuffer: store cannot be nil")
	}
	b := &Buffer{
		store: store,
		ttl:   DefaultTTL,
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Offer buffers the named notification for the recipient, overwriting any
// prior unconsumed entry for the same (kind, recipient). Marshal or store
// failures are logged at warn level and swallowed.
func (b *Buffer) Offer(ctx context.Context, kind ChannelKind, recipient, eventName string, payload any) {
	if recipient == "" {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		b.log.LogAttrs(ctx, slog.LevelWarn, "failed to marshal notification for replay buffer",
			logger.Event(eventName),
			logger.Recipient(recipient),
			logger.Error(err),
		)
		return
	}

	entry := Entry{
		Event:     eventName,
		Payload:   data,
		WrittenAt: b.now(),
	}
	if err := b.store.Put(ctx, kind, recipient, entry, b.ttl); err != nil {
		b.log.LogAttrs(ctx, slog.LevelWarn, "failed to buffer notification",
			logger.Event(eventName),
			logger.Recipient(recipient),
			logger.Channel(string(kind)),
			logger.Error(err),
		)
	}
}

// Consume returns the buffered entry for the key and removes it, so a
// reconnecting client replays each notification at most once. Returns
// ErrEntryNotFound when nothing is buffered.
func (b *Buffer) Consume(ctx context.Context, kind ChannelKind, recipient string) (Entry, error) {
	entry, err := b.store.Get(ctx, kind, recipient)
	if err != nil {
		return Entry{}, err
	}
	if err := b.store.Delete(ctx, kind, recipient); err != nil && !errors.Is(err, ErrEntryNotFound) {
		// The entry was delivered; a failed delete only risks one duplicate
		// replay within the TTL window.
		b.log.LogAttrs(ctx, slog.LevelWarn, "failed to delete consumed entry",
			logger.Recipient(recipient),
			logger.Channel(string(kind)),
			logger.Error(err),
		)
	}
	return entry, nil
}

// Peek returns the buffered entry without consuming it.
func (b *Buffer) Peek(ctx context.Context, kind ChannelKind, recipient string) (Entry, error) {
	return b.store.Get(ctx, kind, recipient)
}
