// Package credentials persists the session token and the cached user
// snapshot. The two values are always written and cleared together.
package credentials

import (
	"context"
	"errors"
)

const (
	TokenKey = "coupon_management_token"
	UserKey  = "coupon_management_user"
)

var ErrIncomplete = errors.New("token and user snapshot must be stored together")

// Entry is the persisted pair. User holds the serialized user snapshot as
// written by the session manager.
type Entry struct {
	Token string
	User  []byte
}

// Complete is true when both halves of the pair are present.
func (e Entry) Complete() bool {
	return e.Token != "" && len(e.User) > 0
}

type Repository interface {
	// Load returns whatever is stored. Missing keys leave the matching field
	// empty; it is not an error.
	Load(ctx context.Context) (Entry, error)
	// Save replaces both values atomically. An incomplete entry is rejected.
	Save(ctx context.Context, e Entry) error
	// SaveUser rewrites the user snapshot, keeping the token. It fails with
	// ErrIncomplete when no token is stored.
	SaveUser(ctx context.Context, user []byte) error
	// Clear removes both values. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
