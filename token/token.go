// Package token inspects bearer tokens issued by the platform. The
// platform signs JWT access tokens, but the client holds no verification
// key: claims are read unverified and used only for advisory purposes such
// as reporting expiry. Opaque non-JWT tokens are valid credentials too and
// simply carry no readable claims.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaque reports a token that is not a parseable JWT.
var ErrOpaque = errors.New("token is not a parseable JWT")

// Info is the advisory claim set read from a bearer token.
type Info struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Introspect reads the claims of raw without verifying its signature.
func Introspect(raw string) (Info, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return Info{}, ErrOpaque
	}

	var info Info
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// Expired reports whether raw is a JWT whose expiry claim lies before now.
// Opaque tokens and tokens without an expiry claim are never reported
// expired; only the platform can judge those.
func Expired(raw string, now time.Time) bool {
	info, err := Introspect(raw)
	if err != nil || info.ExpiresAt.IsZero() {
		return false
	}
	return now.After(info.ExpiresAt)
}
