// Package tokenx decodes bearer tokens on the client side.
//
// Decoding never verifies the signature; that is the backend's job. The
// decoded subject and expiry are hints used to skip doomed requests and to
// look up the current user, never an authorization decision.
package tokenx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed = errors.New("malformed token")
	ErrExpired   = errors.New("token expired")
	ErrNoSubject = errors.New("token has no usable subject")
)

type Inspector struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewInspector returns an Inspector using now as its clock; nil means time.Now.
func NewInspector(now func() time.Time) *Inspector {
	if now == nil {
		now = time.Now
	}
	return &Inspector{parser: jwt.NewParser(), now: now}
}

// Decode extracts the payload of token without checking its signature.
func (i *Inspector) Decode(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMalformed
	}
	claims := &Claims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}

// Expired reports whether claims are past their expiry. A token without an
// exp claim is treated as expired.
func (i *Inspector) Expired(c *Claims) bool {
	if c == nil || c.ExpiresAt == nil {
		return true
	}
	return !c.ExpiresAt.After(i.now())
}

// Check decodes token and fails with ErrExpired when it is no longer usable.
func (i *Inspector) Check(token string) (*Claims, error) {
	c, err := i.Decode(token)
	if err != nil {
		return nil, err
	}
	if i.Expired(c) {
		return c, ErrExpired
	}
	return c, nil
}

// ExpiresIn returns how long token stays usable; zero for expired tokens.
func (i *Inspector) ExpiresIn(token string) (time.Duration, error) {
	c, err := i.Check(token)
	if err != nil {
		if errors.Is(err, ErrExpired) {
			return 0, nil
		}
		return 0, err
	}
	return c.ExpiresAt.Sub(i.now()), nil
}
