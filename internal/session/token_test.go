package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenMaker_RoundTrip(t *testing.T) {
	tm := NewTokenMaker(testSecret)

	tok, err := tm.New("ABCD2345", time.Hour)
	require.NoError(t, err)

	c, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "ABCD2345", c.UserID)
	assert.Equal(t, "ABCD2345", c.Subject)
	assert.Equal(t, issuer, c.Issuer)
}

func TestTokenMaker_Rejects(t *testing.T) {
	tm := NewTokenMaker(testSecret)

	expired, err := tm.New("ABCD2345", -time.Minute)
	require.NoError(t, err)

	other, err := NewTokenMaker("another-secret-another-secret-xx").New("ABCD2345", time.Hour)
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "ABCD2345",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	anonymous, err := tm.New("", time.Hour)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":      expired,
		"wrong secret": other,
		"wrong issuer": foreign,
		"empty user":   anonymous,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Parse(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
