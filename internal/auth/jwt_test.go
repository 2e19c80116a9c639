package auth

import (
	"testing"
	"time"

	"bazaar/internal/domain/rolegate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", "bazaar", "bazaar-api")

	access, refresh, err := a.GenerateTokens(42, rolegate.Business)
	require.NoError(t, err)

	sub, err := a.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, Subject{UserID: 42, Role: rolegate.Business}, sub)

	rsub, err := a.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), rsub.UserID)

	_, err = a.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh token is signed with another secret")
}

func TestExpiredToken(t *testing.T) {
	a := NewJWTAuthenticator("access-secret", "refresh-secret", "bazaar", "bazaar-api")
	a.now = func() time.Time { return time.Now().Add(-4 * 24 * time.Hour) }
	access, _, err := a.GenerateTokens(1, rolegate.Customer)
	require.NoError(t, err)

	a.now = time.Now
	_, err = a.ParseAccessToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongIssuer(t *testing.T) {
	a := NewJWTAuthenticator("s", "r", "bazaar", "bazaar-api")
	b := NewJWTAuthenticator("s", "r", "bazaar", "someone-else")

	access, _, err := b.GenerateTokens(1, rolegate.Admin)
	require.NoError(t, err)
	_, err = a.ParseAccessToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
