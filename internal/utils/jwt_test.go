package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, 72)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	uid, err := ParseUserID("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestParseUserIDWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, 72)
	require.NoError(t, err)

	_, err = ParseUserID("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseUserIDExpired(t *testing.T) {
	// A negative TTL puts exp in the past.
	tok, err := NewAccessToken("secret", 42, -1)
	require.NoError(t, err)

	_, err = ParseUserID("secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseUserIDMalformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := ParseUserID("secret", raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "raw=%q", raw)
	}
}
