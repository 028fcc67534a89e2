package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/journly/internal/common"
)

// TokenSource supplies the bearer token for authenticated transports. The
// token is an opaque capability; how it was obtained (interactive sign-in,
// a stored session) is the caller's concern.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource serves one fixed token.
type StaticTokenSource struct {
	token string
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) Token(_ context.Context) (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("%w: no bearer token configured", common.ErrAuthInvalid)
	}
	return s.token, nil
}

// TokenExpiry extracts the exp claim from a JWT-shaped token without
// verifying its signature. It reports false for opaque tokens and for any
// parse failure; the probe never errors.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// StoredTokenUsable reports whether a previously stored token is worth
// trying. A missing token is unusable; a JWT-shaped token is unusable once
// its exp claim has passed; an opaque token is assumed usable and a real
// auth failure surfaces on the first request instead.
func StoredTokenUsable(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	exp, ok := TokenExpiry(token)
	if !ok {
		return true
	}
	return exp.After(now)
}
