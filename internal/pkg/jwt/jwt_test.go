package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	now := time.Now()
	token, err := GenerateSessionToken("sid-1", 7, "admin", "secret", now, now.Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	now := time.Now()
	token, err := GenerateSessionToken("sid-1", 7, "admin", "secret", now, now.Add(time.Hour))
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "other")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionToken_Expired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	token, err := GenerateSessionToken("sid-1", 7, "admin", "secret", issued, issued.Add(time.Hour))
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSessionToken_RejectsNoneAlg(t *testing.T) {
	claims := SessionClaims{
		SessionID: "sid-1",
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionToken_Garbage(t *testing.T) {
	_, err := ValidateSessionToken("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
