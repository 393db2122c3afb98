package model

import "github.com/caucaconecta/caucaconecta/pkg/domain/types"

// Surface is what a map rendering backend returns for display
type Surface struct {
	Backend     string      `json:"backend"`
	URL         string      `json:"url"`
	Attribution string      `json:"attribution,omitempty"`
	Box         BoundingBox `json:"bbox"`
	Center      Coordinate  `json:"center"`
	Zoom        int         `json:"zoom"`
	Tile        *Tile       `json:"tile,omitempty"`
}

// Tile is a slippy-map tile address
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// MarkerKind distinguishes what a marker points at
type MarkerKind string

const (
	MarkerIncident MarkerKind = "incident"
	MarkerUser     MarkerKind = "user"
	MarkerRegion   MarkerKind = "region"
)

// Marker is an overlay placed on top of a Surface
type Marker struct {
	Kind       MarkerKind       `json:"kind"`
	IncidentID types.IncidentID `json:"incident_id,omitempty"`
	Label      string           `json:"label"`
	Coordinate Coordinate       `json:"coordinate"`
	Position   Position         `json:"position"`
	Color      string           `json:"color,omitempty"`
	Icon       string           `json:"icon,omitempty"`
	Nearby     bool             `json:"nearby,omitempty"`
}

// MapView is a rendered map plus its overlays
type MapView struct {
	Surface *Surface  `json:"surface"`
	Region  Region    `json:"region"`
	Markers []*Marker `json:"markers"`
}
