package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens(testSecret, time.Hour)
	tok, exp, err := tokens.Issue(Identity{UserID: "u-1", Username: "alice"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	id, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u-1", Username: "alice"}, id)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens(testSecret, time.Minute)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return base }

	tok, _, err := tokens.Issue(Identity{UserID: "u-1"})
	require.NoError(t, err)

	tokens.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = tokens.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokens_WrongSecret(t *testing.T) {
	tok, _, err := NewTokens(testSecret, 0).Issue(Identity{UserID: "u-1"})
	require.NoError(t, err)

	_, err = NewTokens(strings.Repeat("x", 32), 0).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_RejectsOtherAlgorithms(t *testing.T) {
	c := claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokens(testSecret, 0).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Garbage(t *testing.T) {
	_, err := NewTokens(testSecret, 0).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: "u-1", Username: "alice"})
	id, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-1", id.UserID)

	_, ok = IdentityFromContext(WithIdentity(context.Background(), Identity{}))
	assert.False(t, ok)
}
