package geo_test

import (
	"math"
	"testing"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
	"github.com/m-mizutani/gt"
)

func TestPopayanIncidentOnMap(t *testing.T) {
	g := geo.Default()
	incident := incidentAt("1", 2.4448, -76.6147)

	region, found := g.Regions.Lookup("Popayán")
	gt.True(t, found)
	gt.Equal(t, region.Coordinate, model.Coordinate{Lat: 2.4448, Lng: -76.6147})
	gt.Equal(t, region.Zoom, 12)

	near := g.Filter.Filter(region.Coordinate, []*model.Incident{incident})
	gt.A(t, near).Length(1)
	gt.Equal(t, near[0].ID, incident.ID)
	approx(t, geo.Distance(region.Coordinate, incident.Location.Coordinate), 0)

	c := near[0].Location.Coordinate
	gt.True(t, g.Projector.Contains(c))
	pos := g.Projector.Project(c)
	approx(t, pos.X, (-76.6147+77.95)/2.2*100)
	approx(t, pos.Y, (3.35-2.4448)/2.2*100)
	gt.True(t, math.Abs(pos.X-50) < 15)
	gt.True(t, math.Abs(pos.Y-50) < 15)
}
