package events

import "time"

// UserRegistered is published after a new account has been created.
type UserRegistered struct {
	UserID        string
	Email         string
	UserName      string
	RegisteredAt  time.Time
	IPAddress     string
	CorrelationID string
}

func (UserRegistered) EventName() string { return "user.registered" }

// UserLoggedIn is published after a successful authentication.
type UserLoggedIn struct {
	UserID        string
	Email         string
	SessionID     string
	LoggedInAt    time.Time
	IPAddress     string
	CorrelationID string
}

func (UserLoggedIn) EventName() string { return "user.loggedin" }

// UserLoggedOut is published when a user ends their own session.
type UserLoggedOut struct {
	UserID        string
	SessionID     string
	LoggedOutAt   time.Time
	CorrelationID string
}

func (UserLoggedOut) EventName() string { return "user.loggedout" }

// SessionCreated is published when a new authenticated session is issued.
type SessionCreated struct {
	SessionID     string
	UserID        string
	CreatedAt     time.Time
	IPAddress     string
	UserAgent     string
	CorrelationID string
}

func (SessionCreated) EventName() string { return "session.created" }

// SessionRevoked is published when a session is terminated by someone other
// than its owner, typically an administrator. The affected user is pushed a
// revocation notice and a forced logout over the real-time channel.
type SessionRevoked struct {
	SessionID     string
	UserID        string
	RevokedAt     time.Time
	Reason        string
	RevokedBy     string
	CorrelationID string
}

func (SessionRevoked) EventName() string { return "session.revoked" }

// APIKeyCreated is published when a user issues a new API key.
type APIKeyCreated struct {
	KeyID         string
	UserID        string
	Name          string
	CreatedAt     time.Time
	CorrelationID string
}

func (APIKeyCreated) EventName() string { return "apikey.created" }

// APIKeyRevoked is published when an API key is invalidated.
type APIKeyRevoked struct {
	KeyID         string
	UserID        string
	RevokedAt     time.Time
	RevokedBy     string
	CorrelationID string
}

func (APIKeyRevoked) EventName() string { return "apikey.revoked" }

// UserRoleChanged is published when a role is granted to or removed from a
// user. Added reports the direction of the change.
type UserRoleChanged struct {
	UserID        string
	Role          string
	Added         bool
	ChangedBy     string
	ChangedAt     time.Time
	CorrelationID string
}

func (UserRoleChanged) EventName() string { return "user.rolechanged" }

// UserClaimChanged is published when a claim is granted to or removed from a
// user.
type UserClaimChanged struct {
	UserID        string
	ClaimType     string
	ClaimValue    string
	Added         bool
	ChangedBy     string
	ChangedAt     time.Time
	CorrelationID string
}

func (UserClaimChanged) EventName() string { return "user.claimchanged" }
