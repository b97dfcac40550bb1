// Package auth provides the authentication boundary: JWT issuance and
// verification, bcrypt password hashing, and the middleware that guards
// protected routes.
//
// Tokens are stateless HS256 JWTs. The signed payload carries the athlete's
// internal ID in the "sub" claim plus an expiry; no session state is kept
// server-side and there is no revocation list — expiry is the only lifetime
// bound.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "athlete-platform"

// Sentinel errors returned by Validate. Handlers must NOT surface the
// distinction to clients — both map to the same generic 401 — but tests
// and logs can tell them apart.
var (
	ErrTokenExpired = errors.New("auth: token expired")
	ErrTokenInvalid = errors.New("auth: invalid token")
)

// TokenService signs and verifies bearer tokens.
//
// It holds the HMAC secret and the token lifetime, both loaded once at
// startup and read-only afterwards. The same secret signs and verifies;
// generate one with `openssl rand -hex 32`.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given secret and token
// lifetime. The secret should be at least 32 bytes of random data in
// production; anything under 16 characters is rejected outright.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token lifetime must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload. The athlete's internal ID goes in the standard
// "sub" (Subject) claim.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a token for the given athlete ID using the
// configured lifetime.
func (s *TokenService) Generate(athleteID string) (string, error) {
	return s.GenerateWithDuration(athleteID, s.ttl)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Used by tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(athleteID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   athleteID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the athlete ID
// from its "sub" claim.
//
// Returns ErrTokenExpired if the signature is valid but the expiry has
// passed, and ErrTokenInvalid for everything else (malformed, tampered,
// wrong algorithm, wrong issuer, missing subject).
//
// jwt.WithValidMethods pins the algorithm to HS256 so a token claiming
// alg "none" — or an RS256 token abusing the secret as a public key —
// is rejected before any claim is trusted.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}

	if c.Subject == "" {
		return "", fmt.Errorf("%w: no subject", ErrTokenInvalid)
	}

	return c.Subject, nil
}
