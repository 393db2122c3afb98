package usecase

import (
	"sync"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
)

// AppState is everything a client session shows: who is signed in, where
// they are and the toast currently on screen.
type AppState struct {
	User         *model.User         `json:"user"`
	Location     *model.UserLocation `json:"location,omitempty"`
	Notification *model.Notification `json:"notification,omitempty"`
}

// StateEventKind tells subscribers which part of a session changed
type StateEventKind string

const (
	StateEventUser         StateEventKind = "user"
	StateEventLocation     StateEventKind = "location"
	StateEventNotification StateEventKind = "notification"
	StateEventCleared      StateEventKind = "cleared"
)

// StateEvent is published after every mutation
type StateEvent struct {
	Kind      StateEventKind
	SessionID types.SessionID
	State     AppState
}

// State is the single owner of per-session application state. All mutation
// goes through it and is published to subscribers.
type State struct {
	mu          sync.RWMutex
	sessions    map[types.SessionID]*AppState
	subscribers map[int]func(StateEvent)
	nextID      int
}

// NewState creates an empty State
func NewState() *State {
	return &State{
		sessions:    make(map[types.SessionID]*AppState),
		subscribers: make(map[int]func(StateEvent)),
	}
}

// Get returns a snapshot of a session's state
func (s *State) Get(sessionID types.SessionID) (AppState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return AppState{}, false
	}
	return *st, true
}

// SetUser starts tracking a session for user
func (s *State) SetUser(sessionID types.SessionID, user *model.User) {
	s.update(sessionID, StateEventUser, true, func(st *AppState) {
		st.User = user
	})
}

// SetLocation records the last known location. Unknown sessions are ignored.
func (s *State) SetLocation(sessionID types.SessionID, loc *model.UserLocation) {
	s.update(sessionID, StateEventLocation, false, func(st *AppState) {
		st.Location = loc
	})
}

// SetNotification replaces the current toast. Unknown sessions are ignored.
func (s *State) SetNotification(sessionID types.SessionID, n *model.Notification) {
	s.update(sessionID, StateEventNotification, false, func(st *AppState) {
		st.Notification = n
	})
}

// Clear forgets a session
func (s *State) Clear(sessionID types.SessionID) {
	s.mu.Lock()
	if _, ok := s.sessions[sessionID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.sessions, sessionID)
	subscribers := s.snapshotSubscribers()
	s.mu.Unlock()

	publish(subscribers, StateEvent{Kind: StateEventCleared, SessionID: sessionID})
}

// Subscribe registers fn for every state change. Subscribers run
// synchronously after the lock is released. The returned function removes
// the subscription.
func (s *State) Subscribe(fn func(StateEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *State) update(sessionID types.SessionID, kind StateEventKind, create bool, fn func(*AppState)) {
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if !ok {
		if !create {
			s.mu.Unlock()
			return
		}
		st = &AppState{}
		s.sessions[sessionID] = st
	}
	fn(st)
	event := StateEvent{Kind: kind, SessionID: sessionID, State: *st}
	subscribers := s.snapshotSubscribers()
	s.mu.Unlock()

	publish(subscribers, event)
}

func (s *State) snapshotSubscribers() []func(StateEvent) {
	subscribers := make([]func(StateEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	return subscribers
}

func publish(subscribers []func(StateEvent), event StateEvent) {
	for _, fn := range subscribers {
		fn(event)
	}
}
