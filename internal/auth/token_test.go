package auth_test

import (
	"testing"
	"time"

	"boardify-backend/internal/apperr"
	"boardify-backend/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	token, err := auth.IssueToken("secret", userID, time.Hour)
	require.NoError(t, err)

	got, err := auth.ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := auth.IssueToken("secret", uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken("other-secret", token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestTokenExpired(t *testing.T) {
	token, err := auth.IssueToken("secret", uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken("secret", token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestTokenGarbage(t *testing.T) {
	_, err := auth.ParseToken("secret", "not.a.token")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, auth.CheckPassword(hash, "s3cret"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
