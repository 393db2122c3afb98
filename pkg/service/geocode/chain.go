package geocode

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/utils/apperr"
)

// Chain tries geocoders in order and returns the first hit. Backend errors
// are logged and the next backend is tried.
type Chain []interfaces.Geocoder

var _ interfaces.Geocoder = Chain(nil)

// Geocode implements interfaces.Geocoder
func (c Chain) Geocode(ctx context.Context, address string) (*model.Coordinate, error) {
	for _, g := range c {
		coord, err := g.Geocode(ctx, address)
		if err != nil {
			apperr.Handle(ctx, err)
			continue
		}
		if coord != nil {
			return coord, nil
		}
	}
	return nil, nil
}
