package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/digistore/digistore/internal/model"
)

// ErrInvalidToken covers every token rejection: bad signature, wrong
// algorithm, malformed claims, or expiry. Callers must not distinguish
// these to the end user.
var ErrInvalidToken = errors.New("invalid or expired session token")

// SessionClaims are the signed claims carried by a session token.
// The identity is reconstructed purely from these on each request;
// the user store is not consulted again until re-authentication.
type SessionClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"adm"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies time-bounded session tokens.
// Stateless and safe for concurrent use.
type TokenIssuer struct {
	signKey []byte
	ttl     time.Duration
}

// NewTokenIssuer constructs a TokenIssuer with the process-wide signing
// secret and token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{signKey: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue creates a signed HS256 session token for the given identity.
func (i *TokenIssuer) Issue(identity *model.Identity) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email:   identity.Email,
		Name:    identity.Name,
		IsAdmin: identity.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.signKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Resolve verifies the token's signature and expiry and reconstructs the
// identity from its claims. Returns ErrInvalidToken on any failure.
func (i *TokenIssuer) Resolve(token string) (*model.Identity, error) {
	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &model.Identity{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		IsAdmin: claims.IsAdmin,
	}, nil
}
