package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword([]byte("secret-password"))
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", string(hash))

	require.NoError(t, CheckPassword(hash, []byte("secret-password")))
	require.ErrorIs(t, CheckPassword(hash, []byte("other")), ErrPasswordMismatch)
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword([]byte("same"))
	require.NoError(t, err)
	h2, err := HashPassword([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestCheckPassword_CorruptHash(t *testing.T) {
	err := CheckPassword([]byte("not-a-bcrypt-hash"), []byte("x"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}

func TestResetToken(t *testing.T) {
	token, digest, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, token, ResetTokenSize*2)
	assert.Equal(t, HashToken(token), digest)
	assert.True(t, TokenMatches(token, digest))
	assert.False(t, TokenMatches(token+"x", digest))

	other, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
