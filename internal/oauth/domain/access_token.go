package domain

import "time"

// AccessToken models the stored bearer token record. As with authorization
// codes, only the token fingerprint is kept at rest.
type AccessToken struct {
	ID        string
	UserID    string
	ClientID  string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AccessTokenGrant is what the token service returns on a successful
// authorization-code exchange. The HTTP layer maps it to the wire format.
type AccessTokenGrant struct {
	AccessToken string
	TokenType   string // always "Bearer"
	ExpiresIn   time.Duration
}
