package session

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/employee-desk/v2/internal/auth"
)

// State is the session as seen by the views.
type State struct {
	User    *auth.User
	Token   string
	Error   string
	Loading bool
}

// Authenticated reports whether both a user and a token are present.
func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Action is a session transition.
type Action interface {
	name() string
}

type LoginPending struct{}

type LoginFulfilled struct {
	User  *auth.User
	Token string
}

type LoginRejected struct {
	Err error
}

// SessionRestored is dispatched at startup when a persisted token is still usable.
type SessionRestored struct {
	User  *auth.User
	Token string
}

type LoggedOut struct{}

func (LoginPending) name() string    { return "login/pending" }
func (LoginFulfilled) name() string  { return "login/fulfilled" }
func (LoginRejected) name() string   { return "login/rejected" }
func (SessionRestored) name() string { return "session/restored" }
func (LoggedOut) name() string       { return "session/logged-out" }

// Reduce is the only function that computes a new State.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoginPending:
		return State{Loading: true}
	case LoginFulfilled:
		if a.User == nil || a.Token == "" {
			return State{Error: "login response is missing the user or token"}
		}
		return State{User: a.User, Token: a.Token}
	case LoginRejected:
		msg := "login failed"
		if a.Err != nil {
			msg = a.Err.Error()
		}
		return State{Error: msg}
	case SessionRestored:
		return State{User: a.User, Token: a.Token}
	case LoggedOut:
		return State{}
	default:
		return s
	}
}

// Listener observes every committed transition.
type Listener func(prev, next State)

// Store owns the session state. Dispatches are serialized; listeners run after the
// new state is committed, outside the lock, in subscription order. Listeners must not
// dispatch.
type Store struct {
	mu        sync.Mutex
	dispatch  sync.Mutex
	state     State
	listeners map[int]Listener
	order     []int
	nextID    int
}

func NewStore() *Store {
	return &Store{
		listeners: make(map[int]Listener),
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) Dispatch(a Action) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, a)
	s.state = next
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"action":        a.name(),
		"loading":       next.Loading,
		"authenticated": next.Authenticated(),
	}).Debug("session transition")

	for _, l := range listeners {
		l(prev, next)
	}
}

// Subscribe registers l and returns a function that removes it. Calling the returned
// function more than once is harmless.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}
