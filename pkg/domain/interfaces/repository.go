package interfaces

import (
	"context"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
)

// Repository holds the process-lifetime mock state. Nothing here is durable.
type Repository interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id types.UserID) (*model.User, error)
	DeleteUser(ctx context.Context, id types.UserID) error

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id types.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id types.SessionID) error
	ListExpiredSessions(ctx context.Context, now time.Time) ([]*model.Session, error)

	// Incident operations. Incidents are listed newest first.
	PutIncident(ctx context.Context, incident *model.Incident) error
	// AddIncidents inserts all or nothing. Any ID that is already stored or
	// repeated in the batch fails with model.ErrIncidentExists.
	AddIncidents(ctx context.Context, incidents []*model.Incident) error
	GetIncident(ctx context.Context, id types.IncidentID) (*model.Incident, error)
	ListIncidents(ctx context.Context) ([]*model.Incident, error)

	// Support request operations
	PutSupportRequest(ctx context.Context, req model.SupportRequest) error
	ListSupportRequests(ctx context.Context, userID types.UserID) ([]model.SupportRequest, error)

	// Close releases the repository
	Close() error
}
