package oauth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greyhollow/gatekeep/pkg/oauthsdk"
)

func TestLivez(t *testing.T) {
	env := setupServer(t)

	resp, err := http.Get(env.Server.URL + "/livez")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health oauthsdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "e2e-test", health.Version)
	require.NotEmpty(t, health.Uptime)
}

func TestReadyz(t *testing.T) {
	env := setupServer(t)

	health, err := env.SDK.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}

func TestReadyzDegradedWhenDatabaseDown(t *testing.T) {
	env := setupServer(t)

	// Closing the store makes the ping fail.
	require.NoError(t, env.Store.Close())

	resp, err := http.Get(env.Server.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var health oauthsdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "degraded", health.Status)
}
