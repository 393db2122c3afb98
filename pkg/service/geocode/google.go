package geocode

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"googlemaps.github.io/maps"
)

// MapsClient is the subset of the Google Maps client used for geocoding
type MapsClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Google resolves addresses with the Google Maps Geocoding API, biased to
// Colombia and suffixed with the department name.
type Google struct {
	client MapsClient
	suffix string
}

var _ interfaces.Geocoder = (*Google)(nil)

// GoogleOption configures a Google geocoder
type GoogleOption func(*Google)

// WithSuffix appends suffix to every address, e.g. ", Cauca, Colombia"
func WithSuffix(suffix string) GoogleOption {
	return func(g *Google) {
		g.suffix = suffix
	}
}

// NewGoogle creates a Google geocoder from an API key
func NewGoogle(apiKey string, opts ...GoogleOption) (*Google, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Google Maps client")
	}
	return NewGoogleWithClient(client, opts...), nil
}

// NewGoogleWithClient creates a Google geocoder around an existing client
func NewGoogleWithClient(client MapsClient, opts ...GoogleOption) *Google {
	g := &Google{
		client: client,
		suffix: ", Cauca, Colombia",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geocode implements interfaces.Geocoder. No result is (nil, nil).
func (g *Google) Geocode(ctx context.Context, address string) (*model.Coordinate, error) {
	if address == "" {
		return nil, nil
	}

	req := &maps.GeocodingRequest{
		Address: address + g.suffix,
		Region:  "co",
	}

	resp, err := g.client.Geocode(ctx, req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to geocode address", goerr.V("address", address))
	}
	if len(resp) == 0 {
		return nil, nil
	}

	loc := resp[0].Geometry.Location
	return &model.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}
