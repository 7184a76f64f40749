package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("session-123", secret, time.Hour)
	require.NoError(t, err)

	sessionID, err := ParseSessionToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "session-123", sessionID)
}

func TestParseSessionToken_Rejects(t *testing.T) {
	expired, err := GenerateSessionToken("session-123", secret, -time.Minute)
	require.NoError(t, err)
	foreign, err := GenerateSessionToken("session-123", []byte("other-secret"), time.Hour)
	require.NoError(t, err)
	noSubject, err := GenerateSessionToken("", secret, time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":    expired,
		"bad secret": foreign,
		"no subject": noSubject,
		"garbage":    "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSessionToken(token, secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
