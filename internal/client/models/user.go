package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Ref is the short form of a related record embedded in list responses.
type Ref struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
}

type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name,omitempty"`
	Username      string     `json:"username,omitempty"`
	Email         string     `json:"email"`
	Role          Role       `json:"role"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	DepartmentID  *int64     `json:"departmentId,omitempty"`
	Department    *Ref       `json:"department,omitempty"`
	DeactivatedAt *time.Time `json:"deactivatedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt,omitzero"`
	UpdatedAt     time.Time  `json:"updatedAt,omitzero"`
}

// Validate checks the identity fields a cached snapshot must carry to be
// trusted: id, email and role.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required),
		validation.Field(&u.Email, validation.Required),
		validation.Field(&u.Role, validation.Required),
	)
}

// IsActive is false for a nil user or one with a deactivation timestamp.
func (u *User) IsActive() bool {
	return u != nil && u.DeactivatedAt == nil
}

// Clone returns a deep copy so callers cannot mutate shared snapshots.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.LastLogin = clonePtr(u.LastLogin)
	c.DepartmentID = clonePtr(u.DepartmentID)
	c.Department = clonePtr(u.Department)
	c.DeactivatedAt = clonePtr(u.DeactivatedAt)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(0, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 50)),
	)
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
