package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL bounds capability tokens that request no explicit
// lifetime.
const DefaultTokenTTL = 30 * time.Minute

// Claims are the capability-token claims. Subject carries the digest of
// the credential that authenticated, never the credential itself.
type Claims struct {
	TokenDigest string `json:"token_digest"`
	jwt.RegisteredClaims
}

// ErrInvalidToken rejects any capability token that fails validation.
// The reason is deliberately not distinguished for the caller.
var ErrInvalidToken = errors.New("invalid capability token")

// TokenService mints and validates short-lived HS256 capability tokens.
type TokenService struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// NewTokenService creates a token service. A non-positive ttl selects
// DefaultTokenTTL.
func NewTokenService(signingKey, issuer string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}
}

// Issue mints a capability token bound to the digest of the
// authenticated credential. It returns the signed token and its expiry.
func (s *TokenService) Issue(credential string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TokenDigest: DigestToken(credential),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign capability token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a capability token, returning its
// claims. Expired, malformed, and wrongly signed tokens all map to
// ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
