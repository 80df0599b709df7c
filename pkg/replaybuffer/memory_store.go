package replaybuffer

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryStore is an in-memory Store for tests and single-process
// development setups. Expiry is evaluated lazily on read against the
// injectable clock; expired entries are dropped on access.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMemoryClock overrides the time source. Intended for TTL tests.
func WithMemoryClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func memoryKey(kind ChannelKind, recipient string) string {
	return string(kind) + ":" + recipient
}

// Put replaces any existing entry for the key.
func (s *MemoryStore) Put(ctx context.Context, kind ChannelKind, recipient string, entry Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[memoryKey(kind, recipient)] = memoryEntry{
		entry:     entry,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Get returns the entry for the key or ErrEntryNotFound if absent or expired.
func (s *MemoryStore) Get(ctx context.Context, kind ChannelKind, recipient string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey(kind, recipient)
	me, ok := s.entries[key]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	if !s.now().Before(me.expiresAt) {
		delete(s.entries, key)
		return Entry{}, ErrEntryNotFound
	}
	return me.entry, nil
}

// Delete removes the entry for the key if present.
func (s *MemoryStore) Delete(ctx context.Context, kind ChannelKind, recipient string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, memoryKey(kind, recipient))
	return nil
}
