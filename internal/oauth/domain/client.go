package domain

import "time"

// Client is a registered OAuth2 consumer. The registry is maintained by an
// administrative process; this service only ever reads it.
type Client struct {
	ID               string // ULID primary key
	ClientID         string // stable public identifier presented by the client
	ClientSecretHash string // argon2id PHC string of the client secret
	RedirectURI      string // exact-match absolute callback URL
	LoginTitle       string // presentation string for the external login UI
	LoginForm        string // presentation string for the external login UI
	Enabled          bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
