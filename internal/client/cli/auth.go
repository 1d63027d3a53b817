package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/couponadmin/internal/client/guard"
	"github.com/dmitrijs2005/couponadmin/internal/client/models"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in")

// Login authenticates with the email from args, or prompts for it. The
// session manager reports failures to the user itself.
func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = getSimpleText(a.in, "Enter email", a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	u, err := a.manager.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", displayName(u), u.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.manager.Logout(ctx)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.manager.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return errNotLoggedIn
	}
	printUser(a.out, u)
	return nil
}

// Refresh reloads the current user from the backend. A failed refresh ends
// the session.
func (a *App) Refresh(ctx context.Context) error {
	u, err := a.manager.RefreshUser(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Refresh failed:", err)
		return err
	}
	printUser(a.out, u)
	return nil
}

// Access prints the guard decision for the optional role argument.
func (a *App) Access(ctx context.Context, args []string) error {
	var required models.Role
	if len(args) > 0 {
		r, err := models.ParseRole(args[0])
		if err != nil {
			fmt.Fprintln(a.out, err)
			return err
		}
		required = r
	}

	d := guard.New(a.manager.Store(), required).Decide()
	if d.Message != "" {
		fmt.Fprintf(a.out, "%s: %s\n", d.Status, d.Message)
	} else {
		fmt.Fprintln(a.out, d.Status)
	}
	return nil
}
