// Package guard decides whether protected content may be shown for the
// current session. It keeps no state of its own; every decision is a pure
// function of the session state and an optional required role.
package guard

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/couponadmin/internal/client/models"
	"github.com/dmitrijs2005/couponadmin/internal/client/session"
)

type Status int

const (
	// StatusChecking means the session is not resolved yet.
	StatusChecking Status = iota
	StatusUnauthenticated
	StatusForbidden
	StatusAllowed
)

func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "CHECKING"
	case StatusUnauthenticated:
		return "UNAUTHENTICATED"
	case StatusForbidden:
		return "FORBIDDEN"
	case StatusAllowed:
		return "ALLOWED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Reason tells the two FORBIDDEN cases apart.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonDeactivated
	ReasonRole
)

const (
	MsgChecking        = "Loading..."
	MsgUnauthenticated = "Please log in to continue."
	MsgDeactivated     = "Your account has been deactivated. Please contact an administrator."
	MsgRoleDenied      = "You don't have permission to access this page."
)

type Decision struct {
	Status  Status
	Reason  Reason
	Message string
}

// Evaluate maps a session state to a decision. An empty required role only
// asks for an active, authenticated session. The deactivation check comes
// before the role check.
func Evaluate(st session.State, required models.Role) Decision {
	if !st.Resolved || st.IsLoading {
		return Decision{Status: StatusChecking, Message: MsgChecking}
	}
	if !st.IsAuthenticated || st.User == nil {
		return Decision{Status: StatusUnauthenticated, Message: MsgUnauthenticated}
	}
	if !st.User.IsActive() {
		return Decision{Status: StatusForbidden, Reason: ReasonDeactivated, Message: MsgDeactivated}
	}
	if required != "" && !st.User.Role.AtLeast(required) {
		return Decision{
			Status:  StatusForbidden,
			Reason:  ReasonRole,
			Message: fmt.Sprintf("%s Required role: %s | Your role: %s", MsgRoleDenied, required, st.User.Role),
		}
	}
	return Decision{Status: StatusAllowed}
}

type Guard struct {
	store    *session.Store
	required models.Role
}

func New(store *session.Store, required models.Role) *Guard {
	return &Guard{store: store, required: required}
}

func (g *Guard) Decide() Decision {
	return Evaluate(g.store.State(), g.required)
}

// Wait blocks until the decision leaves CHECKING or ctx is done.
func (g *Guard) Wait(ctx context.Context) (Decision, error) {
	changed := make(chan struct{}, 1)
	unsubscribe := g.store.Subscribe(func(session.State) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		if d := g.Decide(); d.Status != StatusChecking {
			return d, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return g.Decide(), ctx.Err()
		}
	}
}
