package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", time.Hour)
	require.NoError(t, err)

	subject, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other-secret"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "user-1", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
