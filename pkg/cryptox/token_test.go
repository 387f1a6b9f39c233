package cryptox

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
		wantErr bool
	}{
		{name: "authorization code size", size: TokenSize128, wantLen: 32},
		{name: "access token size", size: TokenSize256, wantLen: 64},
		{name: "zero size", size: 0, wantErr: true},
		{name: "negative size", size: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, token, tt.wantLen)

			// Must be valid lowercase hex.
			raw, err := hex.DecodeString(token)
			require.NoError(t, err)
			assert.Len(t, raw, tt.size)
		})
	}
}

func TestGenerateTokenUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		token, err := GenerateToken(TokenSize128)
		require.NoError(t, err)

		_, dup := seen[token]
		require.False(t, dup, "duplicate token generated: %s", token)
		seen[token] = struct{}{}
	}
}

func TestMustGenerateToken(t *testing.T) {
	token := MustGenerateToken(TokenSize256)
	assert.Len(t, token, 64)

	assert.Panics(t, func() {
		MustGenerateToken(-1)
	})
}

func TestFingerprintToken(t *testing.T) {
	token := MustGenerateToken(TokenSize256)

	fp1 := FingerprintToken(token)
	fp2 := FingerprintToken(token)

	assert.Equal(t, fp1, fp2, "fingerprint must be deterministic")
	assert.Len(t, fp1, 43, "base64url-encoded sha256 is 43 chars")
	assert.NotEqual(t, token, fp1)

	other := FingerprintToken(MustGenerateToken(TokenSize256))
	assert.NotEqual(t, fp1, other)
}
