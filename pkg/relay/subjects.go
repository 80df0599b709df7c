package relay

import "time"

// Broker subjects are fixed per event type. The table is static on purpose:
// subjects are part of the cross-process contract and must never be derived
// at runtime.
const (
	SubjectUserRegistered   = "admin.user.registered"
	SubjectUserLoggedIn     = "admin.user.loggedin"
	SubjectUserLoggedOut    = "admin.user.loggedout"
	SubjectSessionCreated   = "admin.session.created"
	SubjectAPIKeyCreated    = "admin.apikey.created"
	SubjectAPIKeyRevoked    = "admin.apikey.revoked"
	SubjectUserRoleChanged  = "admin.user.rolechanged"
	SubjectUserClaimChanged = "admin.user.claimchanged"
)

// SubjectWildcard matches every relay subject; the listener side subscribes
// to it.
const SubjectWildcard = "admin.>"

// Wire messages carry a whitelisted subset of event fields. Field names are
// PascalCase for compatibility with the clients already consuming these
// subjects.

type UserRegisteredMessage struct {
	UserID       string    `json:"UserId"`
	Email        string    `json:"Email"`
	UserName     string    `json:"UserName"`
	RegisteredAt time.Time `json:"RegisteredAt"`
	IPAddress    string    `json:"IpAddress"`
}

type UserLoggedInMessage struct {
	UserID     string    `json:"UserId"`
	Email      string    `json:"Email"`
	SessionID  string    `json:"SessionId"`
	LoggedInAt time.Time `json:"LoggedInAt"`
	IPAddress  string    `json:"IpAddress"`
}

type UserLoggedOutMessage struct {
	UserID      string    `json:"UserId"`
	SessionID   string    `json:"SessionId"`
	LoggedOutAt time.Time `json:"LoggedOutAt"`
}

type SessionCreatedMessage struct {
	SessionID string    `json:"SessionId"`
	UserID    string    `json:"UserId"`
	CreatedAt time.Time `json:"CreatedAt"`
	IPAddress string    `json:"IpAddress"`
	UserAgent string    `json:"UserAgent"`
}

type APIKeyCreatedMessage struct {
	KeyID     string    `json:"KeyId"`
	UserID    string    `json:"UserId"`
	Name      string    `json:"Name"`
	CreatedAt time.Time `json:"CreatedAt"`
}

type APIKeyRevokedMessage struct {
	KeyID     string    `json:"KeyId"`
	UserID    string    `json:"UserId"`
	RevokedAt time.Time `json:"RevokedAt"`
	RevokedBy string    `json:"RevokedBy"`
}

type UserRoleChangedMessage struct {
	UserID    string    `json:"UserId"`
	Role      string    `json:"Role"`
	Added     bool      `json:"Added"`
	ChangedBy string    `json:"ChangedBy"`
	ChangedAt time.Time `json:"ChangedAt"`
}

type UserClaimChangedMessage struct {
	UserID     string    `json:"UserId"`
	ClaimType  string    `json:"ClaimType"`
	ClaimValue string    `json:"ClaimValue"`
	Added      bool      `json:"Added"`
	ChangedBy  string    `json:"ChangedBy"`
	ChangedAt  time.Time `json:"ChangedAt"`
}
