package usecase

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/caucaconecta/caucaconecta/pkg/service/mapview"
	"github.com/m-mizutani/goerr/v2"
)

// Map implements MapUseCase
type Map struct {
	*deps
	viewer *mapview.Viewer
}

var _ MapUseCase = (*Map)(nil)

// View renders the map with every incident. A signed-in session centers the
// map on its region and flags incidents near its last location.
func (m *Map) View(ctx context.Context, sessionID types.SessionID) (*model.MapView, error) {
	incidents, err := m.repo.ListIncidents(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}

	in := mapview.ViewInput{Incidents: incidents}
	if st, ok := m.state.Get(sessionID); ok && sessionID != "" {
		in.User = st.User
		in.Location = st.Location
	}

	return m.viewer.View(ctx, in)
}

// Project places a coordinate on the configured map
func (m *Map) Project(c model.Coordinate) (model.Position, bool) {
	return m.geography.Projector.Project(c), m.geography.Projector.Contains(c)
}

// Regions returns the region table sorted by name
func (m *Map) Regions() []model.Region {
	return m.geography.Regions.All()
}

// Region resolves a region name, falling back when unknown
func (m *Map) Region(name string) (model.Region, bool) {
	return m.geography.Regions.Lookup(name)
}
