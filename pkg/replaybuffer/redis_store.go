package replaybuffer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "pending"

// RedisStore implements Store on a shared Redis client. Expiry is delegated
// to Redis per-key TTLs and overwrite semantics fall out of plain SET: the
// single-entry-per-key invariant needs no locking because each write is
// keyed independently.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the key namespace, e.g. to share one Redis
// database between environments.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed replay buffer store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	if client == nil {
		panic("replaybuffer: redis client cannot be nil")
	}
	s := &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(kind ChannelKind, recipient string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, kind, recipient)
}

// Put stores the entry under the composed key with the given TTL,
// replacing any existing value.
func (s *RedisStore) Put(ctx context.Context, kind ChannelKind, recipient string, entry Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if err := s.client.Set(ctx, s.key(kind, recipient), data, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Get retrieves the live entry for the key. Expired keys are absent by the
// time Redis answers, so expiry needs no handling here.
func (s *RedisStore) Get(ctx context.Context, kind ChannelKind, recipient string) (Entry, error) {
	data, err := s.client.Get(ctx, s.key(kind, recipient)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, errors.Join(ErrStoreUnavailable, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, errors.Join(ErrStoreUnavailable, err)
	}
	return entry, nil
}

// Delete removes the entry for the key. Deleting an absent key is not an
// error.
func (s *RedisStore) Delete(ctx context.Context, kind ChannelKind, recipient string) error {
	if err := s.client.Del(ctx, s.key(kind, recipient)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
