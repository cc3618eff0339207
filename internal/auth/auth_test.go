package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeAndParseToken(t *testing.T) {
	raw, err := MakeToken(42, true, "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(raw, "s3cret")

	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.True(t, claims.Admin)
}

func TestParseToken_WrongSecret(t *testing.T) {
	raw, err := MakeToken(42, false, "s3cret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(raw, "other")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	raw, err := MakeToken(42, false, "s3cret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(raw, "s3cret")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "admin"))
	assert.False(t, CheckPassword(hash, "nope"))
}
