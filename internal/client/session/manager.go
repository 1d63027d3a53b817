package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/couponadmin/internal/client/client"
	"github.com/dmitrijs2005/couponadmin/internal/client/models"
	"github.com/dmitrijs2005/couponadmin/internal/client/notify"
	"github.com/dmitrijs2005/couponadmin/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/couponadmin/internal/logging"
	"github.com/dmitrijs2005/couponadmin/internal/tokenx"
)

var (
	ErrAuth      = errors.New("authentication failed")
	ErrNoSession = fmt.Errorf("%w: no active session", ErrAuth)
)

// API is the part of the backend the manager needs.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// Manager is the only writer of the session Store and the credential
// repository. Network calls run without locks; each commit of the in-memory
// state and the persisted pair happens under commitMu, so the last
// operation to complete wins and no half-applied state is ever observable.
type Manager struct {
	store     *Store
	creds     credentials.Repository
	api       API
	inspector *tokenx.Inspector
	notifier  notify.Notifier
	log       logging.Logger

	commitMu sync.Mutex
	loadMu   sync.Mutex
	inFlight int
}

func NewManager(store *Store, creds credentials.Repository, api API, inspector *tokenx.Inspector, notifier notify.Notifier, log logging.Logger) *Manager {
	return &Manager{
		store:     store,
		creds:     creds,
		api:       api,
		inspector: inspector,
		notifier:  notifier,
		log:       log.With("component", "session"),
	}
}

// Login authenticates against the backend, fetches the user named by the
// token's subject and installs both as the session. On any failure the
// session and the persisted credentials end up empty.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := (models.LoginRequest{Email: email, Password: password}).Validate(); err != nil {
		return nil, m.failLogin(ctx, err.Error(), fmt.Errorf("%w: %w", ErrAuth, err))
	}

	m.beginLoading()
	defer m.endLoading()

	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		msg := notify.MsgLoginFailed
		if errors.Is(err, client.ErrUnauthorized) {
			msg = notify.MsgInvalidCredentials
		}
		return nil, m.failLogin(ctx, msg, fmt.Errorf("%w: %w", ErrAuth, err))
	}
	if token == "" {
		return nil, m.failLogin(ctx, notify.MsgAuthFailed, fmt.Errorf("%w: no token in response", ErrAuth))
	}

	claims, err := m.inspector.Decode(token)
	if err != nil {
		return nil, m.failLogin(ctx, notify.MsgInvalidAuthToken, fmt.Errorf("%w: %w", ErrAuth, err))
	}
	id, err := claims.Subject.ID()
	if err != nil {
		return nil, m.failLogin(ctx, notify.MsgInvalidAuthToken, fmt.Errorf("%w: %w", ErrAuth, err))
	}
	if m.inspector.Expired(claims) {
		return nil, m.failLogin(ctx, notify.MsgInvalidAuthToken, fmt.Errorf("%w: issued token is already expired", ErrAuth))
	}

	user, err := m.api.GetUser(client.WithBearer(ctx, token), id)
	if err != nil {
		return nil, m.failLogin(ctx, notify.MsgLoginFailed, fmt.Errorf("%w: fetch user %d: %w", ErrAuth, id, err))
	}
	if err := user.Validate(); err != nil {
		return nil, m.failLogin(ctx, notify.MsgLoginFailed, fmt.Errorf("%w: malformed user record: %w", ErrAuth, err))
	}

	if err := m.install(ctx, token, user); err != nil {
		return nil, m.failLogin(ctx, notify.MsgLoginFailed, fmt.Errorf("%w: %w", ErrAuth, err))
	}

	m.log.Info(ctx, "login succeeded", "user_id", user.ID, "role", user.Role)
	m.notifier.Notify(ctx, notify.Success(notify.MsgLoginSuccess))
	return user.Clone(), nil
}

// Logout ends the session. It always succeeds and is idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.commitMu.Lock()
	had := m.store.Token() != ""
	m.teardown(ctx)
	m.commitMu.Unlock()

	if had {
		m.log.Info(ctx, "logged out")
		m.notifier.Notify(ctx, notify.Success(notify.MsgLogoutSuccess))
	}
}

// EndSession silently tears the session down if it still holds token.
// It reports whether it did, so callers can notify exactly once.
func (m *Manager) EndSession(ctx context.Context, token string) bool {
	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	current := m.store.Token()
	if current == "" || current != token {
		return false
	}
	m.teardown(ctx)
	m.log.Warn(ctx, "session ended")
	return true
}

// Restore rebuilds the session from the credential repository. It never
// fails: anything unusable is cleared and the session ends logged out.
func (m *Manager) Restore(ctx context.Context) {
	m.beginLoading()
	defer m.endLoading()

	m.commitMu.Lock()
	defer m.commitMu.Unlock()
	defer m.store.update(func(s *State) { s.Resolved = true })

	entry, err := m.creds.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "restore: cannot read credentials", "error", err)
		m.teardown(ctx)
		return
	}
	if !entry.Complete() {
		if entry.Token != "" || len(entry.User) > 0 {
			m.log.Warn(ctx, "restore: incomplete credentials discarded")
		}
		m.teardown(ctx)
		return
	}

	if _, err := m.inspector.Check(entry.Token); err != nil {
		m.log.Info(ctx, "restore: stored token unusable", "error", err)
		m.teardown(ctx)
		return
	}

	var user models.User
	if err := json.Unmarshal(entry.User, &user); err != nil {
		m.log.Warn(ctx, "restore: corrupt user snapshot", "error", err)
		m.teardown(ctx)
		return
	}
	if err := user.Validate(); err != nil {
		m.log.Warn(ctx, "restore: invalid user snapshot", "error", err)
		m.teardown(ctx)
		return
	}

	m.store.update(func(s *State) {
		s.User = &user
		s.Token = entry.Token
		s.IsAuthenticated = true
	})
	m.log.Info(ctx, "session restored", "user_id", user.ID)
}

// RefreshUser replaces the cached user with the backend's canonical record.
// A failed refresh ends the session and returns the failure.
func (m *Manager) RefreshUser(ctx context.Context) (*models.User, error) {
	st := m.store.State()
	if !st.IsAuthenticated || st.User == nil {
		return nil, ErrNoSession
	}

	m.beginLoading()
	defer m.endLoading()

	user, err := m.api.GetUser(ctx, st.User.ID)
	if err == nil {
		err = user.Validate()
	}
	if err != nil {
		m.EndSession(ctx, st.Token)
		m.log.Warn(ctx, "refresh failed, session ended", "user_id", st.User.ID, "error", err)
		return nil, fmt.Errorf("refresh user: %w", err)
	}

	if err := m.replaceUser(ctx, st.Token, user); err != nil {
		return nil, err
	}
	return user.Clone(), nil
}

// UpdateCurrentUser applies fn to a copy of the cached user and stores the
// result. The backend is not contacted.
func (m *Manager) UpdateCurrentUser(ctx context.Context, fn func(*models.User)) (*models.User, error) {
	st := m.store.State()
	if !st.IsAuthenticated || st.User == nil {
		return nil, ErrNoSession
	}

	updated := st.User.Clone()
	fn(updated)
	if updated.ID != st.User.ID {
		return nil, fmt.Errorf("%w: user id cannot change", ErrAuth)
	}
	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuth, err)
	}

	if err := m.replaceUser(ctx, st.Token, updated); err != nil {
		return nil, err
	}
	m.notifier.Notify(ctx, notify.Success(notify.MsgProfileUpdated))
	return updated.Clone(), nil
}

// HasRole compares the current user's role against required in the
// hierarchy user < manager < admin. Higher roles satisfy lower requirements.
func (m *Manager) HasRole(required models.Role) bool {
	st := m.store.State()
	return st.User != nil && st.User.Role.AtLeast(required)
}

func (m *Manager) IsUserActive() bool {
	return m.store.State().User.IsActive()
}

func (m *Manager) CurrentUser() *models.User {
	return m.store.State().User
}

func (m *Manager) CurrentToken() string {
	return m.store.Token()
}

func (m *Manager) IsAuthenticated() bool {
	return m.store.State().IsAuthenticated
}

func (m *Manager) State() State {
	return m.store.State()
}

func (m *Manager) Store() *Store {
	return m.store
}

func (m *Manager) install(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	if err := m.creds.Save(ctx, credentials.Entry{Token: token, User: data}); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	snapshot := user.Clone()
	m.store.update(func(s *State) {
		s.User = snapshot
		s.Token = token
		s.IsAuthenticated = true
		s.Resolved = true
	})
	return nil
}

// replaceUser swaps the user of the session that holds token. It fails with
// ErrNoSession when that session has ended in the meantime.
func (m *Manager) replaceUser(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	m.commitMu.Lock()
	defer m.commitMu.Unlock()

	if m.store.Token() != token {
		return ErrNoSession
	}
	if err := m.creds.SaveUser(ctx, data); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	snapshot := user.Clone()
	m.store.update(func(s *State) { s.User = snapshot })
	return nil
}

func (m *Manager) failLogin(ctx context.Context, msg string, err error) error {
	m.commitMu.Lock()
	m.teardown(ctx)
	m.commitMu.Unlock()

	m.log.Warn(ctx, "login failed", "error", err)
	m.notifier.Notify(ctx, notify.Error(msg))
	return err
}

// teardown empties the persisted pair and the in-memory session. Callers
// hold commitMu.
func (m *Manager) teardown(ctx context.Context) {
	if err := m.creds.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear credentials", "error", err)
	}
	m.store.update(func(s *State) {
		s.User = nil
		s.Token = ""
		s.IsAuthenticated = false
	})
}

func (m *Manager) beginLoading() {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()
	m.inFlight++
	if m.inFlight == 1 {
		m.store.update(func(s *State) { s.IsLoading = true })
	}
}

func (m *Manager) endLoading() {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()
	m.inFlight--
	if m.inFlight == 0 {
		m.store.update(func(s *State) { s.IsLoading = false })
	}
}
