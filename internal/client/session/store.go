package session

import (
	"sync"

	"github.com/dmitrijs2005/couponadmin/internal/client/models"
)

// State is a snapshot of the session. Resolved turns true once startup
// restoration has finished and never turns false again.
type State struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Resolved        bool
}

func (s State) clone() State {
	s.User = s.User.Clone()
	return s
}

// Store holds the process-wide session state. Reads are open to everyone;
// only the Manager writes.
type Store struct {
	mu     sync.RWMutex
	state  State
	nextID int
	subs   map[int]func(State)
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(State))}
}

// State returns a copy of the current state. Mutating it has no effect on
// the store.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Subscribe registers fn to be called with the new state after every
// change, and returns a function that removes it. Callbacks run on the
// writer's goroutine and must not block.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// update applies fn under the write lock and then notifies subscribers.
func (s *Store) update(fn func(*State)) State {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	for _, f := range subs {
		f(snapshot.clone())
	}
	return snapshot
}
