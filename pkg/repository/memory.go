package repository

import (
	"context"
	"sync"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu        sync.RWMutex
	users     map[types.UserID]*model.User
	sessions  map[types.SessionID]*model.Session
	incidents map[types.IncidentID]*model.Incident
	// order holds incident IDs, newest first
	order    []types.IncidentID
	requests map[types.UserID][]model.SupportRequest
}

var _ interfaces.Repository = (*Memory)(nil)

// NewMemory creates a new memory repository
func NewMemory() *Memory {
	return &Memory{
		users:     make(map[types.UserID]*model.User),
		sessions:  make(map[types.SessionID]*model.Session),
		incidents: make(map[types.IncidentID]*model.Incident),
		requests:  make(map[types.UserID][]model.SupportRequest),
	}
}

// SaveUser saves a user to memory
func (m *Memory) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return goerr.New("user is nil")
	}
	if user.ID == "" {
		return goerr.New("user ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	userCopy := *user
	m.users[user.ID] = &userCopy

	return nil
}

// GetUser retrieves a user by ID
func (m *Memory) GetUser(ctx context.Context, id types.UserID) (*model.User, error) {
	if id == "" {
		return nil, goerr.New("user ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrUserNotFound, "failed to get user", goerr.V("userID", id))
	}

	userCopy := *user
	return &userCopy, nil
}

// DeleteUser removes a user and the support requests they submitted
func (m *Memory) DeleteUser(ctx context.Context, id types.UserID) error {
	if id == "" {
		return goerr.New("user ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[id]; !exists {
		return goerr.Wrap(model.ErrUserNotFound, "failed to delete user", goerr.V("userID", id))
	}

	delete(m.users, id)
	delete(m.requests, id)
	return nil
}

// SaveSession saves a session to memory
func (m *Memory) SaveSession(ctx context.Context, session *model.Session) error {
	if session == nil {
		return goerr.New("session is nil")
	}
	if session.ID == "" {
		return goerr.New("session ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sessionCopy := *session
	m.sessions[session.ID] = &sessionCopy

	return nil
}

// GetSession retrieves a session by ID
func (m *Memory) GetSession(ctx context.Context, id types.SessionID) (*model.Session, error) {
	if id == "" {
		return nil, goerr.New("session ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "failed to get session", goerr.V("sessionID", id))
	}

	sessionCopy := *session
	return &sessionCopy, nil
}

// DeleteSession deletes a session from memory
func (m *Memory) DeleteSession(ctx context.Context, id types.SessionID) error {
	if id == "" {
		return goerr.New("session ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return goerr.Wrap(model.ErrSessionNotFound, "failed to delete session", goerr.V("sessionID", id))
	}

	delete(m.sessions, id)
	return nil
}

// ListExpiredSessions returns the sessions that expired before now
func (m *Memory) ListExpiredSessions(ctx context.Context, now time.Time) ([]*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var expired []*model.Session
	for _, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			sessionCopy := *session
			expired = append(expired, &sessionCopy)
		}
	}

	return expired, nil
}

// PutIncident inserts or replaces an incident. A new incident goes to the
// front of the list; a replaced one keeps its position.
func (m *Memory) PutIncident(ctx context.Context, incident *model.Incident) error {
	if incident == nil {
		return goerr.New("incident is nil")
	}
	if incident.ID == "" {
		return goerr.New("incident ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.incidents[incident.ID]; !exists {
		m.order = append([]types.IncidentID{incident.ID}, m.order...)
	}

	incidentCopy := copyIncident(incident)
	m.incidents[incident.ID] = incidentCopy

	return nil
}

// AddIncidents inserts new incidents only. The first element of the batch
// ends up at the front of the list.
func (m *Memory) AddIncidents(ctx context.Context, incidents []*model.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[types.IncidentID]struct{}, len(incidents))
	for _, incident := range incidents {
		if incident == nil {
			return goerr.New("incident is nil")
		}
		if incident.ID == "" {
			return goerr.New("incident ID is empty")
		}
		if _, dup := seen[incident.ID]; dup {
			return goerr.Wrap(model.ErrIncidentExists, "duplicate incident in batch", goerr.V("incidentID", incident.ID))
		}
		if _, exists := m.incidents[incident.ID]; exists {
			return goerr.Wrap(model.ErrIncidentExists, "incident already stored", goerr.V("incidentID", incident.ID))
		}
		seen[incident.ID] = struct{}{}
	}

	ids := make([]types.IncidentID, 0, len(incidents)+len(m.order))
	for _, incident := range incidents {
		m.incidents[incident.ID] = copyIncident(incident)
		ids = append(ids, incident.ID)
	}
	m.order = append(ids, m.order...)

	return nil
}

// GetIncident retrieves an incident by ID
func (m *Memory) GetIncident(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	if id == "" {
		return nil, goerr.New("incident ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	incident, exists := m.incidents[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrIncidentNotFound, "failed to get incident", goerr.V("incidentID", id))
	}

	return copyIncident(incident), nil
}

// ListIncidents returns all incidents in insertion order, newest first
func (m *Memory) ListIncidents(ctx context.Context) ([]*model.Incident, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	incidents := make([]*model.Incident, 0, len(m.order))
	for _, id := range m.order {
		incidents = append(incidents, copyIncident(m.incidents[id]))
	}

	return incidents, nil
}

// PutSupportRequest stores a support request under its submitter
func (m *Memory) PutSupportRequest(ctx context.Context, req model.SupportRequest) error {
	if req == nil {
		return goerr.New("support request is nil")
	}
	h := req.Header()
	if h.ID == "" {
		return goerr.New("support request ID is empty")
	}
	if h.UserID == "" {
		return goerr.New("support request user ID is empty", goerr.V("requestID", h.ID))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests[h.UserID] = append(m.requests[h.UserID], req)
	return nil
}

// ListSupportRequests lists a user's requests, newest first
func (m *Memory) ListSupportRequests(ctx context.Context, userID types.UserID) ([]model.SupportRequest, error) {
	if userID == "" {
		return nil, goerr.New("user ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.requests[userID]
	reqs := make([]model.SupportRequest, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		reqs = append(reqs, stored[i])
	}

	return reqs, nil
}

// Close does nothing for memory repository
func (m *Memory) Close() error {
	return nil
}

// Clear clears all data (useful for testing)
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make(map[types.UserID]*model.User)
	m.sessions = make(map[types.SessionID]*model.Session)
	m.incidents = make(map[types.IncidentID]*model.Incident)
	m.order = nil
	m.requests = make(map[types.UserID][]model.SupportRequest)
}

func copyIncident(incident *model.Incident) *model.Incident {
	incidentCopy := *incident
	if incident.Images != nil {
		incidentCopy.Images = append([]string(nil), incident.Images...)
	}
	return &incidentCopy
}
