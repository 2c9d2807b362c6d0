package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("senha123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "senha123", digest)

	ok, err := VerifyPassword("senha123", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordMismatch(t *testing.T) {
	digest, err := HashPassword("senha123", bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := VerifyPassword("senha_errada", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordForeignDigest(t *testing.T) {
	ok, err := VerifyPassword("senha123", "invalid_hash_format")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnrecognizedHash)
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	a, err := HashPassword("senha123", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("senha123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
