package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/couponadmin/internal/client/client"
	"github.com/dmitrijs2005/couponadmin/internal/client/config"
	"github.com/dmitrijs2005/couponadmin/internal/client/notify"
	"github.com/dmitrijs2005/couponadmin/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/couponadmin/internal/client/services"
	"github.com/dmitrijs2005/couponadmin/internal/client/session"
	"github.com/dmitrijs2005/couponadmin/internal/client/storage"
	"github.com/dmitrijs2005/couponadmin/internal/logging"
	"github.com/dmitrijs2005/couponadmin/internal/tokenx"
)

type App struct {
	config    *config.Config
	db        *sql.DB
	manager   *session.Manager
	catalog   *services.Catalog
	inspector *tokenx.Inspector
	notifier  notify.Notifier
	log       logging.Logger
	in        *bufio.Reader
	out       io.Writer
}

// NewApp wires the console against the real terminal.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	return newApp(ctx, c, log, notify.NewConsole(os.Stderr), os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, notifier notify.Notifier, in io.Reader, out io.Writer) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	inspector := tokenx.NewInspector(nil)
	store := session.NewStore()

	pipe := client.NewPipeline(store, inspector, notifier, log)
	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, pipe, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	mgr := session.NewManager(store, credentials.NewSQLiteRepository(db), api, inspector, notifier, log)
	pipe.BindSession(mgr)

	return &App{
		config:    c,
		db:        db,
		manager:   mgr,
		catalog:   services.NewCatalog(api),
		inspector: inspector,
		notifier:  notifier,
		log:       log,
		in:        bufio.NewReader(in),
		out:       out,
	}, nil
}

// Run restores the persisted session, starts the session watcher and
// blocks in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.manager.Restore(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartSessionWatcher(watchCtx, a.config.SessionCheckInterval)

	fmt.Fprintln(a.out, "Coupon admin console (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.in)
}

func (a *App) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.manager.IsAuthenticated()
}

func (a *App) getStatus() string {
	u := a.manager.CurrentUser()
	if u == nil {
		return "(logged out)"
	}
	name := u.Username
	if name == "" {
		name = u.Email
	}
	return fmt.Sprintf("(%s %s)", name, u.Role)
}

// StartSessionWatcher ends the held session once its token expires, so an
// idle console does not keep showing a dead session as active.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkSession(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkSession(ctx context.Context) {
	token := a.manager.CurrentToken()
	if token == "" {
		return
	}

	_, err := a.inspector.Check(token)
	if err == nil {
		return
	}

	msg := notify.MsgInvalidSession
	if errors.Is(err, tokenx.ErrExpired) {
		msg = notify.MsgSessionExpired
	}
	if a.manager.EndSession(ctx, token) {
		a.notifier.Notify(ctx, notify.Warning(msg))
	}
}
