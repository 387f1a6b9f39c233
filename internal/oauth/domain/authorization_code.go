package domain

import "time"

// AuthorizationCode represents a single-use OAuth2 authorization code
// issuance. Only the SHA-256 fingerprint of the opaque code is persisted;
// the raw value travels to the client exactly once.
type AuthorizationCode struct {
	ID          string
	UserID      string
	ClientID    string
	CodeHash    string
	RedirectURI string // the redirect URI presented at issuance
	ExpiresAt   time.Time
	CreatedAt   time.Time
}
