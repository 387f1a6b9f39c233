package store

import (
	"context"
	"errors"
	"time"

	"github.com/greyhollow/gatekeep/internal/oauth/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Clients() Clients
	AuthorizationCodes() AuthorizationCodes
	AccessTokens() AccessTokens
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Clients interface {
	// GetClientByClientID fetches a client by its public client_id.
	GetClientByClientID(ctx context.Context, clientID string) (domain.Client, error)

	// CreateClient inserts a new client (id is provided via ULID). Used by
	// the administrative seeding path and tests; the OAuth core never writes.
	CreateClient(ctx context.Context, c domain.Client) error

	// SetClientEnabled toggles the enabled flag and bumps updated_at.
	SetClientEnabled(ctx context.Context, clientID string, enabled bool) error
}

type AuthorizationCodes interface {
	// CreateAuthorizationCode stores a freshly minted authorization code.
	CreateAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error

	// ConsumeAuthorizationCode atomically deletes the live code identified by
	// (codeHash, clientID) and returns its user id. The delete and the
	// expiry check are a single conditional statement, so at most one caller
	// can ever succeed for a given code. Expired or unknown codes return
	// ErrNotFound and expired rows are left in place for housekeeping.
	ConsumeAuthorizationCode(ctx context.Context, codeHash, clientID string, now time.Time) (string, error)

	// DeleteExpiredAuthorizationCodes removes codes past their expiry.
	DeleteExpiredAuthorizationCodes(ctx context.Context) error
}

type AccessTokens interface {
	// CreateAccessToken stores a new bearer token record.
	CreateAccessToken(ctx context.Context, t domain.AccessToken) error

	// GetAccessTokenByHash returns the token record by its fingerprint.
	// Expiry is checked by the caller; tokens are not consumed on read.
	GetAccessTokenByHash(ctx context.Context, hash string) (domain.AccessToken, error)

	// DeleteExpiredAccessTokens removes tokens past their expiry.
	DeleteExpiredAccessTokens(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns the profile fields needed by the userinfo endpoint.
	GetUserByID(ctx context.Context, id string) (domain.UserProfile, error)

	// CreateUser inserts a profile row. Account management proper is owned
	// by the host system; this exists for seeding and tests.
	CreateUser(ctx context.Context, u domain.UserProfile) error
}
