package usecase

import (
	"context"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/service/mapview"
)

// FeatureCollection is a GeoJSON (RFC 7946) feature collection of points
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

// Feature is a GeoJSON point feature
type Feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Geometry   Point          `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Point is a GeoJSON point. Coordinates are [lng, lat].
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// GeoJSON exports every incident for external map viewers, newest first.
// The marker color and icon are included so viewers can style points the
// same way as the built-in map.
func (u *Incident) GeoJSON(ctx context.Context) (*FeatureCollection, error) {
	incidents, err := u.List(ctx)
	if err != nil {
		return nil, err
	}

	fc := &FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]*Feature, 0, len(incidents)),
	}
	for _, inc := range incidents {
		fc.Features = append(fc.Features, &Feature{
			Type: "Feature",
			ID:   inc.ID.String(),
			Geometry: Point{
				Type:        "Point",
				Coordinates: [2]float64{inc.Location.Lng, inc.Location.Lat},
			},
			Properties: map[string]any{
				"title":           inc.Title,
				"description":     inc.Description,
				"type":            inc.Type,
				"severity":        inc.Severity,
				"status":          inc.Status,
				"verified":        inc.Verified,
				"affected_people": inc.AffectedPeople,
				"address":         inc.Location.Address,
				"municipality":    inc.Location.Municipality,
				"reported_at":     inc.ReportedAt.Format(time.RFC3339),
				"marker-color":    mapview.IncidentColor(inc.Type, inc.Severity),
				"marker-symbol":   mapview.IncidentIcon(inc.Type),
			},
		})
	}

	return fc, nil
}
