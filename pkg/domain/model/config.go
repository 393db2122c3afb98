package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// GeoConfig is the optional YAML geography override
type GeoConfig struct {
	BoundingBox        *BoundingBox `yaml:"bounding_box,omitempty"`
	Margin             *float64     `yaml:"margin,omitempty"`
	RelevanceThreshold *float64     `yaml:"relevance_threshold,omitempty"`
	Regions            []Region     `yaml:"regions,omitempty"`
}

// Validate validates the geography configuration
func (c *GeoConfig) Validate() error {
	if c.BoundingBox != nil {
		if err := c.BoundingBox.Validate(); err != nil {
			return goerr.Wrap(err, "invalid bounding box")
		}
	}

	if c.Margin != nil && (*c.Margin < 0 || *c.Margin >= 50) {
		return goerr.New("margin must be in [0, 50)", goerr.V("margin", *c.Margin))
	}

	if c.RelevanceThreshold != nil && *c.RelevanceThreshold <= 0 {
		return goerr.New("relevance threshold must be positive",
			goerr.V("threshold", *c.RelevanceThreshold))
	}

	names := make(map[string]bool)
	for i, r := range c.Regions {
		if r.Name == "" {
			return goerr.New("region name is required", goerr.V("index", i))
		}
		if err := r.Coordinate.Validate(); err != nil {
			return goerr.Wrap(err, "invalid region coordinate",
				goerr.V("index", i),
				goerr.V("name", r.Name))
		}
		if r.Zoom < 0 || r.Zoom > 19 {
			return goerr.New("region zoom must be between 0 and 19",
				goerr.V("name", r.Name),
				goerr.V("zoom", r.Zoom))
		}
		if names[r.Name] {
			return goerr.New("duplicate region name", goerr.V("name", r.Name))
		}
		names[r.Name] = true
	}

	return nil
}
