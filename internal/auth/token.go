package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenIssuer and TokenAudience are stamped into every issued token.
	// Verification rejects tokens from any other issuer.
	TokenIssuer   = "bugtrail"
	TokenAudience = "bugtrail-clients"

	// AuthoritiesClaim is the payload key carrying the authority strings.
	AuthoritiesClaim = "authorities"
)

var (
	// ErrTokenInvalid covers signature and structural verification failures.
	ErrTokenInvalid = errors.New("token cannot be verified")
	// ErrTokenExpired is a structurally valid, correctly signed token past
	// its expiry. Kept separate so callers can degrade to anonymous instead
	// of treating it as a forgery.
	ErrTokenExpired = errors.New("token has expired")
)

// TokenClaims is the payload of an issued token
type TokenClaims struct {
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies the access tokens carrying a user's
// identity and authority set. It holds no state beyond the signing secret.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenCodec creates a TokenCodec signing with secret. Issued tokens
// expire lifetime after issuance.
func NewTokenCodec(secret string, lifetime time.Duration) *TokenCodec {
	return &TokenCodec{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Issue creates a signed token for subject carrying the given authorities.
// A signing failure here is a configuration problem, not a request problem.
func (c *TokenCodec) Issue(subject string, authorities []string) (string, error) {
	now := time.Now()

	claims := &TokenClaims{
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature, structure and issuer of tokenString and
// returns its claims. It deliberately does NOT check expiry; callers pair
// it with IsExpired so an expired token can be handled differently from a
// forged one.
func (c *TokenCodec) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithoutClaimsValidation())

	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Issuer != TokenIssuer {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// IsExpired reports whether claims are past their expiry. A token with no
// expiry claim is treated as expired.
func (c *TokenCodec) IsExpired(claims *TokenClaims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Before(time.Now())
}

// GetSubject re-verifies tokenString and returns its subject
func (c *TokenCodec) GetSubject(tokenString string) (string, error) {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// GetAuthorities re-verifies tokenString and returns its authorities claim
func (c *TokenCodec) GetAuthorities(tokenString string) ([]string, error) {
	claims, err := c.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	return claims.Authorities, nil
}
