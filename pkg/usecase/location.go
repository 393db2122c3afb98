package usecase

import (
	"context"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// LocationResult is the outcome of one geolocation request. When Degraded is
// set the locator failed, nothing was stored and Location is the default
// coordinate.
type LocationResult struct {
	Location *model.UserLocation `json:"location"`
	Degraded bool                `json:"degraded"`
}

// Location implements LocationUseCase
type Location struct {
	*deps
}

var _ LocationUseCase = (*Location)(nil)

// UpdateLocation asks the locator once and stores the fix. There is no retry.
func (l *Location) UpdateLocation(ctx context.Context, sessionID types.SessionID, locator interfaces.Locator) (*LocationResult, error) {
	st, err := l.currentState(sessionID)
	if err != nil {
		return nil, err
	}
	ctx = withSession(ctx, sessionID, st.User.ID)
	logger := ctxlog.From(ctx)

	loc, err := locator.Locate(ctx)
	if err == nil && loc != nil {
		if vErr := loc.Coordinate.Validate(); vErr != nil {
			err = goerr.Wrap(vErr, "locator returned an invalid coordinate")
		}
	} else if err == nil {
		err = goerr.New("locator returned no location")
	}

	if err != nil {
		logger.Warn("Failed to get device location, using default",
			"error", err,
			"sessionID", sessionID,
		)
		l.notify(ctx, sessionID, locationFailedNotification())
		return &LocationResult{
			Location: &model.UserLocation{
				Coordinate: geo.FallbackRegion.Coordinate,
				Timestamp:  time.Now(),
			},
			Degraded: true,
		}, nil
	}

	if loc.Timestamp.IsZero() {
		loc.Timestamp = time.Now()
	}
	l.state.SetLocation(sessionID, loc)

	logger.Info("Location updated",
		"sessionID", sessionID,
		"coordinate", loc.Coordinate.String(),
		"accuracy", loc.Accuracy,
		"inBox", l.geography.Projector.Contains(loc.Coordinate),
	)
	l.notify(ctx, sessionID, locationUpdatedNotification())

	return &LocationResult{Location: loc}, nil
}
