package relay

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/realtime"
)

// AdminGroup is the real-time group admin dashboards join to observe relayed
// events from every process instance.
const AdminGroup = "Admins"

// Listener subscribes to the relay subjects and republishes inbound messages
// to the local real-time hub, so admins connected to this instance observe
// events that originated on any other instance.
type Listener struct {
	conn *nats.Conn
	b    realtime.Broadcaster
	log  *slog.Logger
	sub  *nats.Subscription
}

// NewListener creates a listener over the broker connection.
func NewListener(conn *nats.Conn, b realtime.Broadcaster, log *slog.Logger) *Listener {
	if log == nil {
		log = slog.Default()
	}
	return &Listener{conn: conn, b: b, log: log}
}

// Start subscribes to every relay subject. Delivery to the hub is best
// effort; push failures are logged and dropped.
func (l *Listener) Start() error {
	sub, err := l.conn.Subscribe(SubjectWildcard, func(msg *nats.Msg) {
		ctx := context.Background()
		if err := l.b.SendToGroup(ctx, AdminGroup, msg.Subject, json.RawMessage(msg.Data)); err != nil {
			l.log.LogAttrs(ctx, slog.LevelWarn, "failed to push relayed event to hub",
				logger.Channel(msg.Subject),
				logger.Error(err),
			)
		}
	})
	if err != nil {
		return err
	}
	l.sub = sub
	return nil
}

// Stop unsubscribes from the relay subjects.
func (l *Listener) Stop() error {
	if l.sub == nil {
		return nil
	}
	return l.sub.Unsubscribe()
}
