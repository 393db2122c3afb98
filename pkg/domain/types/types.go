package types

import (
	"github.com/google/uuid"
)

// UserID represents a user identifier
type UserID string

// String returns the string representation
func (id UserID) String() string {
	return string(id)
}

// NewUserID creates a new UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// SessionID represents a session identifier
type SessionID string

// String returns the string representation
func (id SessionID) String() string {
	return string(id)
}

// NewSessionID creates a new SessionID using UUID v7
func NewSessionID() (SessionID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return SessionID(id.String()), nil
}

// SessionSecret represents a session secret token
type SessionSecret string

// String returns the string representation
func (s SessionSecret) String() string {
	return string(s)
}

// IncidentID represents an incident identifier
type IncidentID string

// String returns the string representation
func (id IncidentID) String() string {
	return string(id)
}

// NewIncidentID creates a new IncidentID
func NewIncidentID() IncidentID {
	return IncidentID(uuid.New().String())
}

// RequestID identifies a support request of any kind
type RequestID string

// String returns the string representation
func (id RequestID) String() string {
	return string(id)
}

// NewRequestID creates a new RequestID
func NewRequestID() RequestID {
	return RequestID(uuid.New().String())
}
