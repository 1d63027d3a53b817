// Package models defines the backend resources the console works with:
// users and their role hierarchy, departments, coupon request categories,
// coupons, coupon requests, and the paginated list envelope.
package models

import (
	"errors"
	"strings"
)

// Role is a privilege level. Higher roles satisfy lower role requirements.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

var roleRank = map[Role]int{
	RoleUser:    1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Rank returns the position of r in the hierarchy, or 0 for unknown roles.
func (r Role) Rank() int {
	return roleRank[r]
}

func (r Role) Valid() bool {
	return r.Rank() > 0
}

// AtLeast reports whether r satisfies a requirement of required. This is a
// superset check: an admin satisfies a manager requirement. Unknown roles on
// either side never satisfy anything.
func (r Role) AtLeast(required Role) bool {
	have, need := r.Rank(), required.Rank()
	if have == 0 || need == 0 {
		return false
	}
	return have >= need
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}
