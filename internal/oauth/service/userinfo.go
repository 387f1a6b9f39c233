package service

import (
	"context"
	"errors"
	"strings"

	"github.com/greyhollow/gatekeep/internal/oauth/store"
)

// UserInfo is the profile payload the userinfo endpoint returns.
type UserInfo struct {
	Sub   string
	Name  string
	Email string
}

// UserInfoService resolves a bearer token into the profile of the user it
// was issued for.
type UserInfoService struct {
	Tokens *TokenService
	Store  store.Store
}

// Lookup validates the token and fetches the user's profile. A token whose
// user row has since vanished is treated the same as an invalid token.
func (s *UserInfoService) Lookup(ctx context.Context, token string) (UserInfo, error) {
	userID, err := s.Tokens.Validate(ctx, token)
	if err != nil {
		return UserInfo{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return UserInfo{}, ErrInvalidToken
		}
		return UserInfo{}, err
	}

	return UserInfo{
		Sub:   user.ID,
		Name:  strings.TrimSpace(user.FirstName + " " + user.LastName),
		Email: user.Email,
	}, nil
}
