package realtime

import (
	"context"
	"encoding/json"
	"time"
)

// Envelope is a named message pushed to connected clients.
type Envelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
	SentAt  time.Time       `json:"sent_at"`
}

// Broadcaster pushes named messages to transport targets: every connected
// client, a single authenticated user, or a named group. Implementations
// must be safe for concurrent use and must not block on slow consumers.
type Broadcaster interface {
	SendToAll(ctx context.Context, name string, payload any) error
	SendToUser(ctx context.Context, userID, name string, payload any) error
	SendToGroup(ctx context.Context, group, name string, payload any) error
}

// UserGroup returns the group name a user's connections join on connect.
func UserGroup(userID string) string {
	return "User_" + userID
}

// EmailGroup returns the group name keyed by a recipient email address.
func EmailGroup(email string) string {
	return "Email_" + email
}
