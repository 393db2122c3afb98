package locator

import (
	"context"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Report is the result of a browser geolocation request as posted by the
// client. Error carries the browser's failure reason (denied, timeout,
// unavailable) and takes precedence over the coordinate.
type Report struct {
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	Accuracy float64  `json:"accuracy,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Reported is a Locator that answers with a client-side report
type Reported struct {
	report Report
	now    func() time.Time
}

var _ interfaces.Locator = (*Reported)(nil)

// FromReport creates a Locator for a report
func FromReport(r Report) *Reported {
	return &Reported{report: r, now: time.Now}
}

// Locate implements interfaces.Locator
func (r *Reported) Locate(ctx context.Context) (*model.UserLocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "geolocation cancelled")
	}
	if r.report.Error != "" {
		return nil, goerr.New("geolocation failed on device", goerr.V("reason", r.report.Error))
	}
	if r.report.Lat == nil || r.report.Lng == nil {
		return nil, goerr.New("geolocation report has no coordinate")
	}

	loc := &model.UserLocation{
		Coordinate: model.Coordinate{Lat: *r.report.Lat, Lng: *r.report.Lng},
		Accuracy:   r.report.Accuracy,
		Timestamp:  r.now(),
	}
	if err := loc.Coordinate.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid geolocation report")
	}
	return loc, nil
}

// Fixed always returns the same location, or the same error
type Fixed struct {
	Location *model.UserLocation
	Err      error
}

var _ interfaces.Locator = (*Fixed)(nil)

// Locate implements interfaces.Locator
func (f *Fixed) Locate(ctx context.Context) (*model.UserLocation, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Location == nil {
		return nil, nil
	}
	loc := *f.Location
	return &loc, nil
}
