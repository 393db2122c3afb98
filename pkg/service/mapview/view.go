package mapview

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
	"github.com/m-mizutani/goerr/v2"
)

// Viewer composes a rendering backend with the projector and the relevance
// filter. The backend only draws the background; overlays are placed here so
// every backend shows the same markers.
type Viewer struct {
	renderer  interfaces.MapRenderer
	geography *geo.Geography
}

// NewViewer creates a Viewer
func NewViewer(renderer interfaces.MapRenderer, geography *geo.Geography) *Viewer {
	return &Viewer{
		renderer:  renderer,
		geography: geography,
	}
}

// ViewInput is what a map view is built from. User and Location are optional.
type ViewInput struct {
	User      *model.User
	Location  *model.UserLocation
	Incidents []*model.Incident
}

// View renders the map and places one marker per incident, plus the user's
// own marker when a location is known. The center is the user's region, or
// the fallback region when there is no user or the region is unknown.
func (v *Viewer) View(ctx context.Context, in ViewInput) (*model.MapView, error) {
	regionName := ""
	if in.User != nil {
		regionName = in.User.Region
	}
	region, _ := v.geography.Regions.Lookup(regionName)

	surface, err := v.renderer.Render(ctx, v.geography.Projector.Box(), region.Coordinate, region.Zoom)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render map", goerr.V("region", region.Name))
	}

	markers := make([]*model.Marker, 0, len(in.Incidents)+1)
	for _, inc := range in.Incidents {
		marker := &model.Marker{
			Kind:       model.MarkerIncident,
			IncidentID: inc.ID,
			Label:      inc.Title,
			Coordinate: inc.Location.Coordinate,
			Position:   v.geography.Projector.Project(inc.Location.Coordinate),
			Color:      IncidentColor(inc.Type, inc.Severity),
			Icon:       IncidentIcon(inc.Type),
		}
		if in.Location != nil {
			marker.Nearby = v.geography.Filter.Near(in.Location.Coordinate, inc.Location.Coordinate)
		}
		markers = append(markers, marker)
	}

	if in.Location != nil {
		label := "Tu ubicación"
		if in.User != nil {
			label = in.User.Name
		}
		markers = append(markers, &model.Marker{
			Kind:       model.MarkerUser,
			Label:      label,
			Coordinate: in.Location.Coordinate,
			Position:   v.geography.Projector.Project(in.Location.Coordinate),
			Color:      userMarkerColor,
		})
	}

	return &model.MapView{
		Surface: surface,
		Region:  region,
		Markers: markers,
	}, nil
}
