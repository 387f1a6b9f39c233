package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/greyhollow/gatekeep/internal/oauth/domain"
	"github.com/greyhollow/gatekeep/internal/oauth/store/drivers/sqlite"
	"github.com/greyhollow/gatekeep/pkg/cryptox"
	"github.com/greyhollow/gatekeep/pkg/idx"
)

// newTestStore opens a temp-file sqlite store with migrations applied. A
// file DSN rather than :memory: so concurrent tests share one database
// across pooled connections.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "oauth_test.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// seedClient registers a client whose secret hashes to plainSecret.
func seedClient(t *testing.T, st *sqlite.Store, clientID, plainSecret, redirectURI string, enabled bool) domain.Client {
	t.Helper()

	hash, err := cryptox.HashSecret(plainSecret)
	require.NoError(t, err)

	now := time.Now().UTC()
	client := domain.Client{
		ID:               idx.New().String(),
		ClientID:         clientID,
		ClientSecretHash: hash,
		RedirectURI:      redirectURI,
		LoginTitle:       "Sign in to Example",
		LoginForm:        "default",
		Enabled:          enabled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, st.Clients().CreateClient(context.Background(), client))
	return client
}

// seedUser inserts a profile row for the userinfo endpoint.
func seedUser(t *testing.T, st *sqlite.Store, id, first, last, email string) domain.UserProfile {
	t.Helper()

	user := domain.UserProfile{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

// seedCode stores a raw authorization code directly, bypassing the
// authorize service, so expiry can be controlled.
func seedCode(t *testing.T, st *sqlite.Store, rawCode, clientID, userID string, expiresAt time.Time) {
	t.Helper()

	require.NoError(t, st.AuthorizationCodes().CreateAuthorizationCode(context.Background(), domain.AuthorizationCode{
		ID:          idx.New().String(),
		UserID:      userID,
		ClientID:    clientID,
		CodeHash:    cryptox.FingerprintToken(rawCode),
		RedirectURI: "https://app.example/callback",
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now().UTC(),
	}))
}
