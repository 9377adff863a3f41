package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret-0123456789"

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec(testSecret, 24*time.Hour)

	authorities := []string{"user:read", "bug:read", "bug:create"}
	token, err := codec.Issue("dev@example.com", authorities)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", claims.Subject)
	assert.ElementsMatch(t, authorities, claims.Authorities)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.Contains(t, claims.Audience, TokenAudience)
	assert.False(t, codec.IsExpired(claims))
}

func TestTokenCodec_TamperedSignatureIsInvalid(t *testing.T) {
	codec := NewTokenCodec(testSecret, 24*time.Hour)

	token, err := codec.Issue("dev@example.com", []string{"user:read"})
	require.NoError(t, err)

	// Flip the last byte of the signature segment
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = codec.Verify(string(tampered))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodec_GarbageIsInvalid(t *testing.T) {
	codec := NewTokenCodec(testSecret, 24*time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(tokenString)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	}
}

func TestTokenCodec_WrongSecretIsInvalid(t *testing.T) {
	codec := NewTokenCodec(testSecret, 24*time.Hour)
	other := NewTokenCodec("a-different-secret-9876543210fedcba", 24*time.Hour)

	token, err := codec.Issue("dev@example.com", nil)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodec_ForeignIssuerIsInvalid(t *testing.T) {
	codec := NewTokenCodec(testSecret, 24*time.Hour)

	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "dev@example.com",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = codec.Verify(foreign)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodec_WeakerSigningMethodIsRejected(t *testing.T) {
	codec := NewTokenCodec(testSecret, 24*time.Hour)

	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   "dev@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = codec.Verify(hs256)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodec_ExpiryIsSeparateFromValidity(t *testing.T) {
	// Lifetime already elapsed at issuance
	codec := NewTokenCodec(testSecret, -time.Second)

	token, err := codec.Issue("dev@example.com", []string{"user:read"})
	require.NoError(t, err)

	// Signature verification still succeeds; only IsExpired reports the lapse
	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.True(t, codec.IsExpired(claims))
	assert.Equal(t, "dev@example.com", claims.Subject)
}

func TestTokenCodec_FreshTokenNotExpired(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	token, err := codec.Issue("dev@example.com", nil)
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.False(t, codec.IsExpired(claims))
}

func TestTokenCodec_MissingExpiryCountsAsExpired(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	claims := &TokenClaims{}
	assert.True(t, codec.IsExpired(claims))
}

func TestTokenCodec_GetSubjectAndAuthorities(t *testing.T) {
	codec := NewTokenCodec(testSecret, 24*time.Hour)

	token, err := codec.Issue("dev@example.com", []string{"bug:read", "bug:update"})
	require.NoError(t, err)

	subject, err := codec.GetSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", subject)

	authorities, err := codec.GetAuthorities(token)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bug:read", "bug:update"}, authorities)

	_, err = codec.GetSubject("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = codec.GetAuthorities("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
