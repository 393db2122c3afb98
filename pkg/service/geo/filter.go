package geo

import (
	"math"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
)

// DefaultRelevanceThreshold is the proximity radius in raw degrees
const DefaultRelevanceThreshold = 0.5

// Distance is the Euclidean distance between a and b in degree space. It is
// not a geographic distance: a degree of longitude shrinks with latitude.
func Distance(a, b model.Coordinate) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// RelevanceFilter keeps incidents close to a reference coordinate
type RelevanceFilter struct {
	threshold float64
}

// NewRelevanceFilter creates a filter. A non-positive threshold falls back to
// DefaultRelevanceThreshold.
func NewRelevanceFilter(threshold float64) *RelevanceFilter {
	if threshold <= 0 {
		threshold = DefaultRelevanceThreshold
	}
	return &RelevanceFilter{threshold: threshold}
}

// Threshold returns the configured radius in degrees
func (f *RelevanceFilter) Threshold() float64 {
	return f.threshold
}

// Near reports whether c is strictly closer than the threshold to ref
func (f *RelevanceFilter) Near(ref, c model.Coordinate) bool {
	return Distance(ref, c) < f.threshold
}

// Filter returns the incidents near ref, preserving input order
func (f *RelevanceFilter) Filter(ref model.Coordinate, incidents []*model.Incident) []*model.Incident {
	result := make([]*model.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if f.Near(ref, inc.Location.Coordinate) {
			result = append(result, inc)
		}
	}
	return result
}
