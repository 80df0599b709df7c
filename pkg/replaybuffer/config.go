package replaybuffer

import "time"

// Config holds replay-buffer settings loaded from the environment.
type Config struct {
	// TTL is the entry lifetime. Keep it short: the buffer bridges a
	// reconnect gap, it is not a message queue.
	TTL time.Duration `env:"REPLAY_BUFFER_TTL" envDefault:"2m"`
	// KeyPrefix namespaces Redis keys when one instance is shared.
	KeyPrefix string `env:"REPLAY_BUFFER_KEY_PREFIX" envDefault:"pending"`
}

// Options converts the config into buffer options.
func (c Config) Options() []BufferOption {
	return []BufferOption{WithTTL(c.TTL)}
}

// StoreOptions converts the config into Redis store options.
func (c Config) StoreOptions() []RedisStoreOption {
	return []RedisStoreOption{WithKeyPrefix(c.KeyPrefix)}
}
