package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/greyhollow/gatekeep/internal/oauth/service"
	"github.com/greyhollow/gatekeep/pkg/httpx"
	"github.com/greyhollow/gatekeep/pkg/oauthsdk"
	"github.com/greyhollow/gatekeep/pkg/slogx"
)

// UserInfoHandler serves GET /oauth/userinfo. Authenticates via a Bearer
// token in the Authorization header.
type UserInfoHandler struct {
	UserInfoService *service.UserInfoService
}

func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, ok := bearerToken(r)
	if !ok {
		oauthsdk.ErrInvalidToken.WriteError(w)
		return
	}

	info, err := h.UserInfoService.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			oauthsdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("userinfo lookup failed", "err", err)
		oauthsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, oauthsdk.UserInfoResponse{
		Sub:   info.Sub,
		Name:  info.Name,
		Email: info.Email,
	})
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
