package model_test

import (
	"testing"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func validInput() *model.ReportIncidentInput {
	return &model.ReportIncidentInput{
		Title:       "Bloqueo de vía principal",
		Description: "Manifestación bloqueando la vía Popayán-Cali",
		Type:        types.IncidentTypeOther,
		Severity:    types.SeverityMedium,
	}
}

func TestNewIncident(t *testing.T) {
	t.Run("Creates an unverified active incident", func(t *testing.T) {
		loc := model.Location{
			Coordinate: model.Coordinate{Lat: 2.4448, Lng: -76.6147},
			Address:    "Popayán",
		}
		inc, err := model.NewIncident(validInput(), loc, "user-1")
		gt.NoError(t, err).Required()

		gt.NotEqual(t, types.IncidentID(""), inc.ID)
		gt.Equal(t, types.IncidentStatusActive, inc.Status)
		gt.False(t, inc.Verified)
		gt.Equal(t, types.UserID("user-1"), inc.ReportedBy)
		gt.Equal(t, 2.4448, inc.Location.Lat)
		gt.False(t, inc.ReportedAt.IsZero())
	})

	t.Run("Trims title and description", func(t *testing.T) {
		in := validInput()
		in.Title = "  Amenaza  "
		inc, err := model.NewIncident(in, model.Location{}, "user-1")
		gt.NoError(t, err).Required()
		gt.Equal(t, "Amenaza", inc.Title)
	})

	t.Run("Lists every missing field", func(t *testing.T) {
		in := &model.ReportIncidentInput{Title: " "}
		_, err := model.NewIncident(in, model.Location{}, "user-1")
		gt.Error(t, err)

		vErr, ok := model.AsValidationError(err)
		gt.True(t, ok)
		gt.Equal(t, []string{"title", "description", "type", "severity"}, vErr.Fields)
	})

	t.Run("Rejects coordinates off the globe", func(t *testing.T) {
		in := validInput()
		in.Coordinate = &model.Coordinate{Lat: 120, Lng: 0}
		_, err := model.NewIncident(in, model.Location{}, "user-1")
		vErr, ok := model.AsValidationError(err)
		gt.True(t, ok)
		gt.Equal(t, []string{"coordinate"}, vErr.Fields)
	})
}
