package replaybuffer_test

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

	"github.com/dmitrymomot/notifykit/pkg/replaybuffer"
)

// failingStore rejects every operation, simulating an unreachable backend.
type failingStore struct {
	puts int
	mu   sync.Mutex
}

func (s *failingStore) Put(ctx context.Context, kind replaybuffer.ChannelKind, recipient string, entry replaybuffer.Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	return replaybuffer.ErrStoreUnavailable
}

func (s *failingStore) Get(ctx context.Context, kind replaybuffer.ChannelKind, recipient string) (replaybuffer.Entry, error) {
	return replaybuffer.Entry{}, replaybuffer.ErrStoreUnavailable
}

func (s *failingStore) Delete(ctx context.Context, kind replaybuffer.ChannelKind, recipient string) error {
	return replaybuffer.ErrStoreUnavailable
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuffer_OfferAndConsume(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	buffer := replaybuffer.NewBuffer(replaybuffer.NewMemoryStore(),
		replaybuffer.WithLogger(discardLogger()),
	)

	type payload struct {
		Message string `json:"message"`
	}
	buffer.Offer(ctx, replaybuffer.ChannelError, "u1", "ErrorOccurred", payload{Message: "db down"})

	entry, err := buffer.Consume(ctx, replaybuffer.ChannelError, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ErrorOccurred", entry.Event)
	assert.JSONEq(t, `{"message":"db down"}`, string(entry.Payload))

	// Consumed entries are gone.
	_, err = buffer.Consume(ctx, replaybuffer.ChannelError, "u1")
	assert.ErrorIs(t, err, replaybuffer.ErrEntryNotFound)
}

func TestBuffer_OfferOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	buffer := replaybuffer.NewBuffer(replaybuffer.NewMemoryStore(),
		replaybuffer.WithLogger(discardLogger()),
	)

	type payload struct {
		Message string `json:"message"`
	}
	buffer.Offer(ctx, replaybuffer.ChannelError, "u1", "ErrorOccurred", payload{Message: "first"})
	buffer.Offer(ctx, replaybuffer.ChannelError, "u1", "ErrorOccurred", payload{Message: "second"})

	entry, err := buffer.Consume(ctx, replaybuffer.ChannelError, "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"second"}`, string(entry.Payload))
}

func TestBuffer_OfferBestEffort(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &failingStore{}
	buffer := replaybuffer.NewBuffer(store, replaybuffer.WithLogger(discardLogger()))

	// Offer must swallow store failures.
	assert.NotPanics(t, func() {
		buffer.Offer(ctx, replaybuffer.ChannelMail, "a@b.com", "EmailSentToUser", map[string]string{"subject": "hi"})
	})
	assert.Equal(t, 1, store.puts)
}

func TestBuffer_OfferSkipsEmptyRecipient(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &failingStore{}
	buffer := replaybuffer.NewBuffer(store, replaybuffer.WithLogger(discardLogger()))

	buffer.Offer(ctx, replaybuffer.ChannelError, "", "ErrorOccurred", nil)
	assert.Zero(t, store.puts)
}

func TestBuffer_Peek(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	buffer := replaybuffer.NewBuffer(replaybuffer.NewMemoryStore(),
		replaybuffer.WithLogger(discardLogger()),
	)

	buffer.Offer(ctx, replaybuffer.ChannelMail, "a@b.com", "EmailSentToUser", map[string]string{"subject": "hi"})

	// Peek does not consume.
	_, err := buffer.Peek(ctx, replaybuffer.ChannelMail, "a@b.com")
	require.NoError(t, err)
	_, err = buffer.Peek(ctx, replaybuffer.ChannelMail, "a@b.com")
	require.NoError(t, err)
}

func TestBuffer_UnmarshalablePayload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &failingStore{}
	buffer := replaybuffer.NewBuffer(store, replaybuffer.WithLogger(discardLogger()))

	// Channels cannot be marshaled; Offer must log and skip the store.
	buffer.Offer(ctx, replaybuffer.ChannelError, "u1", "ErrorOccurred", make(chan int))
	assert.Zero(t, store.puts)
}

func TestErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	assert.False(t, errors.Is(replaybuffer.ErrEntryNotFound, replaybuffer.ErrStoreUnavailable))
}
