package geo

import (
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Projector maps geographic points linearly onto a viewport representing a
// fixed bounding box. There is no curvature correction; the boxes used here
// span two to three degrees and the map is illustrative, not navigational.
type Projector struct {
	box    model.BoundingBox
	margin float64
}

// ProjectorOption configures a Projector
type ProjectorOption func(*Projector)

// WithMargin keeps projected positions within [margin, 100-margin]
func WithMargin(margin float64) ProjectorOption {
	return func(p *Projector) {
		p.margin = margin
	}
}

// NewProjector creates a Projector for box. The default clamp is [0,100].
func NewProjector(box model.BoundingBox, opts ...ProjectorOption) (*Projector, error) {
	if err := box.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid projector bounding box")
	}

	p := &Projector{box: box}
	for _, opt := range opts {
		opt(p)
	}

	if p.margin < 0 || p.margin >= 50 {
		return nil, goerr.New("projector margin must be in [0, 50)", goerr.V("margin", p.margin))
	}

	return p, nil
}

// Box returns the projector's bounding box
func (p *Projector) Box() model.BoundingBox {
	return p.box
}

// Margin returns the clamp margin in percent
func (p *Projector) Margin() float64 {
	return p.margin
}

// ProjectRaw returns the unclamped position. Points outside the box land
// outside [0,100].
func (p *Projector) ProjectRaw(c model.Coordinate) model.Position {
	return model.Position{
		X: (c.Lng - p.box.West) / (p.box.East - p.box.West) * 100,
		Y: (p.box.North - c.Lat) / (p.box.North - p.box.South) * 100,
	}
}

// Project returns the position clamped to [margin, 100-margin] so markers for
// points outside the box are pinned to the nearest edge.
func (p *Projector) Project(c model.Coordinate) model.Position {
	raw := p.ProjectRaw(c)
	return model.Position{
		X: clamp(raw.X, p.margin, 100-p.margin),
		Y: clamp(raw.Y, p.margin, 100-p.margin),
	}
}

// Contains reports whether c lies in the projector's box
func (p *Projector) Contains(c model.Coordinate) bool {
	return p.box.Contains(c)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
