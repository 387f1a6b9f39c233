package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := HashSecret("super-secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifySecret("super-secret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifySecret("wrong-secret", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashSecretUniqueSalts(t *testing.T) {
	h1, err := HashSecret("same-input")
	require.NoError(t, err)
	h2, err := HashSecret("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "salted hashes of the same input must differ")
}

func TestVerifySecretMalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "not phc", hash: "plainly-not-a-hash"},
		{name: "wrong algorithm", hash: "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$a2V5"},
		{name: "truncated", hash: "$argon2id$v=19$m=65536,t=3,p=2"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=3,p=2$!!!$a2V5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifySecret("anything", tt.hash)
			assert.Error(t, err)
		})
	}
}
