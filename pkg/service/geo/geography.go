package geo

import (
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Geography bundles the projector, region table and relevance filter built
// from one configuration.
type Geography struct {
	Projector *Projector
	Regions   *RegionTable
	Filter    *RelevanceFilter
}

// New builds a Geography. A nil config yields the Cauca defaults.
func New(cfg *model.GeoConfig) (*Geography, error) {
	if cfg == nil {
		cfg = &model.GeoConfig{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid geography configuration")
	}

	box := model.CaucaBoundingBox
	if cfg.BoundingBox != nil {
		box = *cfg.BoundingBox
	}

	var opts []ProjectorOption
	if cfg.Margin != nil {
		opts = append(opts, WithMargin(*cfg.Margin))
	}

	projector, err := NewProjector(box, opts...)
	if err != nil {
		return nil, err
	}

	threshold := DefaultRelevanceThreshold
	if cfg.RelevanceThreshold != nil {
		threshold = *cfg.RelevanceThreshold
	}

	return &Geography{
		Projector: projector,
		Regions:   NewRegionTable(cfg.Regions...),
		Filter:    NewRelevanceFilter(threshold),
	}, nil
}

// Default returns the Cauca geography with the default margin and threshold
func Default() *Geography {
	g, err := New(nil)
	if err != nil {
		panic(err)
	}
	return g
}
