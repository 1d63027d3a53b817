package tokenx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Subject is the "sub" claim. The backend issues it as a JSON number, but
// string subjects are accepted as well.
type Subject string

func (s *Subject) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*s = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Subject(v)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("sub: %w", err)
		}
		*s = Subject(n.String())
		return nil
	}
}

// ID parses the subject as a numeric user id.
func (s Subject) ID() (int64, error) {
	if s == "" {
		return 0, ErrNoSubject
	}
	id, err := strconv.ParseInt(string(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoSubject, string(s))
	}
	return id, nil
}

// Claims is the payload the backend embeds in access tokens. Email and Role
// are informational only; authorization uses the fetched user record.
type Claims struct {
	Subject   Subject          `json:"sub"`
	Email     string           `json:"email,omitempty"`
	Role      string           `json:"role,omitempty"`
	IssuedAt  *jwt.NumericDate `json:"iat,omitempty"`
	ExpiresAt *jwt.NumericDate `json:"exp,omitempty"`
}

func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }
func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error) { return c.IssuedAt, nil }
func (c *Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c *Claims) GetIssuer() (string, error) { return "", nil }
func (c *Claims) GetSubject() (string, error) { return string(c.Subject), nil }
func (c *Claims) GetAudience() (jwt.ClaimStrings, error) { return nil, nil }
