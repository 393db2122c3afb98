package geocode

import (
	"context"
	"strings"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
)

// Regions resolves an address by finding a known municipality name in it.
// It needs no network and is the offline fallback for Google.
type Regions struct {
	table *geo.RegionTable
}

var _ interfaces.Geocoder = (*Regions)(nil)

// NewRegions creates a region-table geocoder
func NewRegions(table *geo.RegionTable) *Regions {
	return &Regions{table: table}
}

// Geocode returns the center of the longest municipality name contained in
// address, ignoring case.
func (r *Regions) Geocode(ctx context.Context, address string) (*model.Coordinate, error) {
	needle := strings.ToLower(address)

	var best *model.Region
	for _, region := range r.table.All() {
		if !strings.Contains(needle, strings.ToLower(region.Name)) {
			continue
		}
		if best == nil || len(region.Name) > len(best.Name) {
			found := region
			best = &found
		}
	}

	if best == nil {
		return nil, nil
	}
	c := best.Coordinate
	return &c, nil
}
