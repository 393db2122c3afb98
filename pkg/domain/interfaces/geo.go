package interfaces

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
)

// Locator is a one-shot device geolocation request
type Locator interface {
	Locate(ctx context.Context) (*model.UserLocation, error)
}

// Geocoder resolves a free-text address to a coordinate. A nil result with a
// nil error means nothing was found.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*model.Coordinate, error)
}

// MapRenderer produces a displayable map surface. Overlay placement is done
// separately by the projector so any backend can be swapped in.
type MapRenderer interface {
	Render(ctx context.Context, box model.BoundingBox, center model.Coordinate, zoom int) (*model.Surface, error)
}
