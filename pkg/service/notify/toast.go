package notify

import (
	"context"
	"sync"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
)

// ToastSink keeps the latest notification per session. A newer notification
// replaces the previous one; there is no queue.
type ToastSink struct {
	mu          sync.RWMutex
	latest      map[types.SessionID]*model.Notification
	subscribers map[int]func(*model.Notification)
	nextID      int
}

var _ interfaces.Notifier = (*ToastSink)(nil)

// NewToastSink creates an empty ToastSink
func NewToastSink() *ToastSink {
	return &ToastSink{
		latest:      make(map[types.SessionID]*model.Notification),
		subscribers: make(map[int]func(*model.Notification)),
	}
}

// Notify records n for the session bound to ctx, or for n.SessionID when it
// is already set.
func (s *ToastSink) Notify(ctx context.Context, n *model.Notification) {
	if n == nil {
		return
	}

	stored := *n
	if stored.SessionID == "" {
		stored.SessionID = model.SessionIDFrom(ctx)
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.latest[stored.SessionID] = &stored
	subscribers := make([]func(*model.Notification), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	ctxlog.From(ctx).Debug("Toast notification",
		"session_id", stored.SessionID,
		"title", stored.Title,
		"severity", stored.Severity,
	)

	for _, fn := range subscribers {
		copied := stored
		fn(&copied)
	}
}

// Latest returns the most recent notification for a session
func (s *ToastSink) Latest(sessionID types.SessionID) (*model.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.latest[sessionID]
	if !ok {
		return nil, false
	}
	copied := *n
	return &copied, true
}

// Clear drops the stored notification for a session
func (s *ToastSink) Clear(sessionID types.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.latest, sessionID)
}

// Subscribe registers fn for every notification. The returned function
// removes the subscription.
func (s *ToastSink) Subscribe(fn func(*model.Notification)) func() {
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
