package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("kachcha-nimbu", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword(hash, "kachcha-nimbu"))
	assert.False(t, VerifyPassword(hash, "pakka-nimbu"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "kachcha-nimbu"))
}

func TestHashPasswordSalts(t *testing.T) {
	a, err := HashPassword("kachcha-nimbu", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("kachcha-nimbu", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "each hash carries its own salt")
}
