package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Geo holds the geography settings: an optional YAML file plus flag
// overrides for the margin and relevance threshold
type Geo struct {
	ConfigPath string

	// Set only when the flag is given, so the file value survives
	margin    *float64
	threshold *float64
}

// Flags returns CLI flags for Geo configuration
func (g *Geo) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "geo-config",
			Usage:       "YAML file overriding the bounding box, margin, threshold and regions",
			Category:    "Geography",
			Sources:     cli.EnvVars("CAUCA_GEO_CONFIG"),
			Destination: &g.ConfigPath,
		},
		&cli.FloatFlag{
			Name:     "bbox-margin",
			Usage:    "Clamp projected positions to [margin, 100-margin] percent",
			Category: "Geography",
			Sources:  cli.EnvVars("CAUCA_BBOX_MARGIN"),
			Action: func(_ context.Context, _ *cli.Command, v float64) error {
				g.margin = &v
				return nil
			},
		},
		&cli.FloatFlag{
			Name:     "relevance-threshold",
			Usage:    "Distance in degrees below which an incident counts as nearby",
			Category: "Geography",
			Sources:  cli.EnvVars("CAUCA_RELEVANCE_THRESHOLD"),
			Action: func(_ context.Context, _ *cli.Command, v float64) error {
				g.threshold = &v
				return nil
			},
		},
	}
}

// Load reads the YAML file, if any, and applies the flag overrides
func (g *Geo) Load() (*model.GeoConfig, error) {
	cfg := &model.GeoConfig{}

	if g.ConfigPath != "" {
		data, err := os.ReadFile(g.ConfigPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read geography configuration",
				goerr.V("path", g.ConfigPath))
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, goerr.Wrap(err, "failed to parse geography configuration",
				goerr.V("path", g.ConfigPath))
		}
	}

	if g.margin != nil {
		cfg.Margin = g.margin
	}
	if g.threshold != nil {
		cfg.RelevanceThreshold = g.threshold
	}
	return cfg, nil
}

// Configure builds the geography
func (g *Geo) Configure() (*geo.Geography, error) {
	cfg, err := g.Load()
	if err != nil {
		return nil, err
	}

	geography, err := geo.New(cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid geography configuration", goerr.V("path", g.ConfigPath))
	}
	return geography, nil
}

// LogValue returns structured log value
func (g Geo) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("config_path", g.ConfigPath)}
	if g.margin != nil {
		attrs = append(attrs, slog.Float64("margin", *g.margin))
	}
	if g.threshold != nil {
		attrs = append(attrs, slog.Float64("relevance_threshold", *g.threshold))
	}
	return slog.GroupValue(attrs...)
}
