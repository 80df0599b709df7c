package relay

import (
	"errors"
	"time"

	"github.com/nats-io/nats.go"
)

// Config controls the broker connection used for cross-process relay.
type Config struct {
	// URL of the NATS server, e.g. "nats://localhost:4222".
	URL string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	// Name identifies this client in broker monitoring.
	Name string `env:"NATS_CLIENT_NAME" envDefault:"notifykit"`
	// ConnectTimeout bounds the initial connection attempt.
	ConnectTimeout time.Duration `env:"NATS_CONNECT_TIMEOUT" envDefault:"10s"`
	// MaxReconnects limits reconnection attempts; -1 retries forever.
	MaxReconnects int `env:"NATS_MAX_RECONNECTS" envDefault:"-1"`
	// ReconnectWait is the pause between reconnection attempts.
	ReconnectWait time.Duration `env:"NATS_RECONNECT_WAIT" envDefault:"2s"`
}

// Connect establishes the broker connection. The client keeps reconnecting
// in the background per cfg; while disconnected the relay skips events
// rather than queue them.
func Connect(cfg Config) (*nats.Conn, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.Timeout(cfg.ConnectTimeout),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
	)
	if err != nil {
		return nil, errors.Join(ErrConnectFailed, err)
	}
	return conn, nil
}
