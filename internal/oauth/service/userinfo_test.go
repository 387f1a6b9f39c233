package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/greyhollow/gatekeep/pkg/cryptox"
)

func TestUserInfoLookup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	registry := &ClientService{Store: st}
	tokens := &TokenService{Store: st, Registry: registry, AccessTTL: time.Hour}
	authorize := &AuthorizeService{Store: st, Registry: registry}
	userinfo := &UserInfoService{Tokens: tokens, Store: st}

	seedClient(t, st, "webapp", "s3cret", "https://app.example/callback", true)
	seedUser(t, st, "u42", "Ada", "Lovelace", "ada@example.com")

	code, err := authorize.IssueAuthorizationCode(ctx, "webapp", "https://app.example/callback", "u42")
	require.NoError(t, err)

	grant, err := tokens.Exchange(ctx, ExchangeRequest{
		ClientID:     "webapp",
		ClientSecret: "s3cret",
		GrantType:    GrantTypeAuthorizationCode,
		Code:         code,
	})
	require.NoError(t, err)

	t.Run("returns profile for valid token", func(t *testing.T) {
		info, err := userinfo.Lookup(ctx, grant.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "u42", info.Sub)
		require.Equal(t, "Ada Lovelace", info.Name)
		require.Equal(t, "ada@example.com", info.Email)
	})

	t.Run("rejects bogus token", func(t *testing.T) {
		_, err := userinfo.Lookup(ctx, cryptox.MustGenerateToken(cryptox.TokenSize256))
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user row maps to invalid token", func(t *testing.T) {
		orphanCode, err := authorize.IssueAuthorizationCode(ctx, "webapp", "https://app.example/callback", "gone-user")
		require.NoError(t, err)

		orphanGrant, err := tokens.Exchange(ctx, ExchangeRequest{
			ClientID:     "webapp",
			ClientSecret: "s3cret",
			GrantType:    GrantTypeAuthorizationCode,
			Code:         orphanCode,
		})
		require.NoError(t, err)

		_, err = userinfo.Lookup(ctx, orphanGrant.AccessToken)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
