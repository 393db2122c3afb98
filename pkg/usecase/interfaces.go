package usecase

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
)

// SessionUseCase defines the interface for mock sign-in operations
type SessionUseCase interface {
	// Login fabricates a user and opens a session. No credential is checked.
	Login(ctx context.Context, in LoginInput) (*model.Session, *model.User, error)

	// Authenticate validates a session by ID and secret
	Authenticate(ctx context.Context, sessionID types.SessionID, secret types.SessionSecret) (*model.Session, *model.User, error)

	// Logout discards the session, the user and the last location
	Logout(ctx context.Context, sessionID types.SessionID) (*model.Notification, error)

	// Me returns the current state of a session
	Me(ctx context.Context, sessionID types.SessionID) (*AppState, error)

	// LatestNotification returns the toast currently shown to a session
	LatestNotification(ctx context.Context, sessionID types.SessionID) (*model.Notification, error)
}

// LocationUseCase defines the interface for device geolocation
type LocationUseCase interface {
	// UpdateLocation asks the locator once. Failure degrades to the default
	// coordinate instead of returning an error.
	UpdateLocation(ctx context.Context, sessionID types.SessionID, locator interfaces.Locator) (*LocationResult, error)
}

// IncidentUseCase defines the interface for incident reporting
type IncidentUseCase interface {
	Report(ctx context.Context, sessionID types.SessionID, in *model.ReportIncidentInput) (*model.Incident, error)
	List(ctx context.Context) ([]*model.Incident, error)
	Get(ctx context.Context, id types.IncidentID) (*model.Incident, error)
	Nearby(ctx context.Context, ref model.Coordinate) ([]*model.Incident, error)
	Verify(ctx context.Context, sessionID types.SessionID, id types.IncidentID) (*model.Incident, error)
	SeedSamples(ctx context.Context) error
	ImportLegacy(ctx context.Context, sessionID types.SessionID, data []byte) ([]*model.Incident, error)
	GeoJSON(ctx context.Context) (*FeatureCollection, error)
}

// SupportUseCase defines the interface for victim support requests
type SupportUseCase interface {
	SubmitEmergency(ctx context.Context, sessionID types.SessionID, r model.EmergencyRequest) (*model.EmergencyRequest, error)
	SubmitResource(ctx context.Context, sessionID types.SessionID, r model.ResourceRequest) (*model.ResourceRequest, error)
	SubmitSafeZone(ctx context.Context, sessionID types.SessionID, r model.SafeZoneRequest) (*model.SafeZoneRequest, error)
	List(ctx context.Context, sessionID types.SessionID) ([]model.SupportRequest, error)
}

// MapUseCase defines the interface for the map view
type MapUseCase interface {
	// View renders the map for a session. An empty session ID gives the
	// anonymous view.
	View(ctx context.Context, sessionID types.SessionID) (*model.MapView, error)

	// Project places a coordinate on the map and reports whether it lies in
	// the bounding box
	Project(c model.Coordinate) (model.Position, bool)

	// Regions returns the region table sorted by name
	Regions() []model.Region

	// Region resolves a name, falling back when unknown
	Region(name string) (model.Region, bool)
}
