package config

import (
	"context"
	"log/slog"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
	"github.com/caucaconecta/caucaconecta/pkg/service/geocode"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Geocoder holds address geocoding configuration
type Geocoder struct {
	GoogleMapsAPIKey string
	Disabled         bool
}

// Flags returns CLI flags for Geocoder configuration
func (g *Geocoder) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "google-maps-api-key",
			Usage:       "Google Maps API key for address geocoding",
			Category:    "Geocoding",
			Sources:     cli.EnvVars("CAUCA_GOOGLE_MAPS_API_KEY"),
			Destination: &g.GoogleMapsAPIKey,
		},
		&cli.BoolFlag{
			Name:        "no-geocode",
			Usage:       "Disable address geocoding entirely",
			Category:    "Geocoding",
			Sources:     cli.EnvVars("CAUCA_NO_GEOCODE"),
			Destination: &g.Disabled,
		},
	}
}

// Configure builds the geocoder chain: Google when a key is set, then the
// municipality table. Returns nil when geocoding is disabled.
func (g *Geocoder) Configure(ctx context.Context, regions *geo.RegionTable) (interfaces.Geocoder, error) {
	if g.Disabled {
		return nil, nil
	}

	var chain geocode.Chain
	if g.GoogleMapsAPIKey != "" {
		google, err := geocode.NewGoogle(g.GoogleMapsAPIKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure Google geocoder")
		}
		chain = append(chain, google)
		ctxlog.From(ctx).Info("Geocoding addresses with Google Maps")
	}
	chain = append(chain, geocode.NewRegions(regions))

	return chain, nil
}

// LogValue returns structured log value
func (g Geocoder) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_google_maps_api_key", g.GoogleMapsAPIKey != ""),
		slog.Bool("disabled", g.Disabled),
	)
}
