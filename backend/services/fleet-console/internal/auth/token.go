package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned by ParseTokenInfo for an empty token.
var ErrNoToken = errors.New("auth: no token")

// TokenInfo is what the console can tell about a bearer token without the signing key.
type TokenInfo struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry before now. Informational only;
// the backend decides validity.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// ParseTokenInfo reads JWT claims without verifying the signature. Opaque tokens
// return an error.
func ParseTokenInfo(token string) (*TokenInfo, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("auth: token is not a readable JWT: %w", err)
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	for _, key := range []string{"role", "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"} {
		if role, ok := claims[key].(string); ok && role != "" {
			info.Role = role
			break
		}
	}
	return info, nil
}
