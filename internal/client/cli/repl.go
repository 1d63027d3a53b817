package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error
	Access(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Count(ctx context.Context, args []string) error
}

// runREPL reads commands line by line from in and dispatches them to a.
// It returns on EOF, on "exit"/"quit", or when ctx is done.
//
//	Logged out:
//	  login [email]              authenticate
//	  access [role]              show what the guard decides
//	  help, exit | quit
//
//	Logged in:
//	  whoami                     show the cached user
//	  refresh                    reload the user from the backend
//	  access [role]              show what the guard decides
//	  list <resource> [k=v ...]  list a page of a resource
//	  show <resource> <id>       show a single item
//	  count <resource>           show resource statistics
//	  logout, help, exit | quit
//
// Handlers report their own errors; the loop only keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ca %s > ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, refresh, access [role], (l)ist <resource>, show <resource> <id>, count <resource>, logout, exit")
				printlnFn("Resources: " + strings.Join(resourceNames(), ", "))
			} else {
				printlnFn("Available commands: login [email], access [role], exit")
			}

		case "login":
			_ = a.Login(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "access":
			_ = a.Access(ctx, args)

		case "l", "list":
			_ = a.List(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "count":
			_ = a.Count(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
