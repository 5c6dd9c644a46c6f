package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCookieRoundTrip(t *testing.T) {
	value, err := SignSessionCookie("upstream-tok", "csrf-secret", "mario@example.it", time.Hour)
	require.NoError(t, err)

	claims, err := ParseSessionCookie(value)
	require.NoError(t, err)
	assert.Equal(t, "upstream-tok", claims.UpstreamToken)
	assert.Equal(t, "csrf-secret", claims.CSRFSecret)
	assert.Equal(t, "mario@example.it", claims.Email)
}

func TestParseSessionCookieRejectsExpired(t *testing.T) {
	value, err := SignSessionCookie("tok", "csrf", "a@b.it", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionCookie(value)
	assert.Error(t, err)
}

func TestParseSessionCookieRejectsTampering(t *testing.T) {
	value, err := SignSessionCookie("tok", "csrf", "a@b.it", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionCookie(value + "x")
	assert.Error(t, err)
}

func TestNewCSRFSecretIsUnique(t *testing.T) {
	a, err := NewCSRFSecret()
	require.NoError(t, err)
	b, err := NewCSRFSecret()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 32)
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
