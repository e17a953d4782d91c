package auth

import (
	"testing"
	"time"

	"github.com/RoyKeane94/toad/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *Issuer {
	return NewIssuer(config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, Issuer: "toad"})
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss := newTestIssuer()

	token, err := iss.Issue("u1", true)
	require.NoError(t, err)

	id, err := iss.Parse(token)
	require.NoError(t, err)
	require.Equal(t, Identity{UserID: "u1", Staff: true}, id)
}

func TestIssuer_RejectsExpired(t *testing.T) {
	iss := newTestIssuer()
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := iss.Issue("u1", false)
	require.NoError(t, err)

	_, err = newTestIssuer().Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsOtherSecret(t *testing.T) {
	other := NewIssuer(config.AuthConfig{JWTSecret: "other", TokenTTL: time.Hour, Issuer: "toad"})
	token, err := other.Issue("u1", false)
	require.NoError(t, err)

	_, err = newTestIssuer().Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsOtherIssuer(t *testing.T) {
	other := NewIssuer(config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, Issuer: "someone"})
	token, err := other.Issue("u1", false)
	require.NoError(t, err)

	_, err = newTestIssuer().Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsNoneAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestIssuer().Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_EmptySubject(t *testing.T) {
	_, err := newTestIssuer().Issue("", false)
	require.ErrorIs(t, err, ErrInvalidToken)
}
