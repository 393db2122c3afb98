package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

type stubGeocoder struct {
	coord *model.Coordinate
	err   error
	calls []string
}

func (s *stubGeocoder) Geocode(ctx context.Context, address string) (*model.Coordinate, error) {
	s.calls = append(s.calls, address)
	return s.coord, s.err
}

func reportInput() *model.ReportIncidentInput {
	return &model.ReportIncidentInput{
		Title:       "Bloqueo en la vía Panamericana",
		Description: "Comunidad bloquea el paso a la altura de El Bordo",
		Type:        types.IncidentTypeOther,
		Severity:    types.SeverityMedium,
	}
}

func TestIncidentReport(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields are listed", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleCitizen, "Popayán")

		_, err := uc.Incident.Report(ctx, session.ID, &model.ReportIncidentInput{})
		gt.Equal(t, validationFields(t, err), []string{"title", "description", "type", "severity"})

		incidents, err := uc.Incident.List(ctx)
		gt.NoError(t, err)
		gt.A(t, incidents).Length(0)
	})

	t.Run("explicit coordinate wins", func(t *testing.T) {
		uc := newUseCases(t)
		session, user := login(t, uc, types.RoleCitizen, "Patía")
		uc.State.SetLocation(session.ID, &model.UserLocation{Coordinate: model.Coordinate{Lat: 2.0, Lng: -77.0}})

		in := reportInput()
		in.Coordinate = &model.Coordinate{Lat: 2.1, Lng: -77.1}
		inc, err := uc.Incident.Report(ctx, session.ID, in)
		gt.NoError(t, err).Required()
		gt.Equal(t, inc.Location.Coordinate, *in.Coordinate)
		gt.Equal(t, inc.Location.Address, "Patía")
		gt.Equal(t, inc.Location.Municipality, "Patía")
		gt.Equal(t, inc.ReportedBy, user.ID)
		gt.False(t, inc.Verified)
		gt.Equal(t, inc.Status, types.IncidentStatusActive)
		gt.Equal(t, latestTitle(t, uc, session.ID), "Incidente reportado")
	})

	t.Run("last location is used next", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleCitizen, "Patía")
		uc.State.SetLocation(session.ID, &model.UserLocation{Coordinate: model.Coordinate{Lat: 2.0, Lng: -77.0}})

		inc, err := uc.Incident.Report(ctx, session.ID, reportInput())
		gt.NoError(t, err).Required()
		gt.Equal(t, inc.Location.Coordinate, model.Coordinate{Lat: 2.0, Lng: -77.0})
	})

	t.Run("geocoded address before region", func(t *testing.T) {
		g := &stubGeocoder{coord: &model.Coordinate{Lat: 2.07, Lng: -77.04}}
		uc := newUseCases(t, usecase.WithGeocoder(g))
		session, _ := login(t, uc, types.RoleCitizen, "Patía")

		in := reportInput()
		in.Address = "Parque principal de El Bordo"
		inc, err := uc.Incident.Report(ctx, session.ID, in)
		gt.NoError(t, err).Required()
		gt.Equal(t, inc.Location.Coordinate, *g.coord)
		gt.Equal(t, inc.Location.Address, "Parque principal de El Bordo")
		gt.Equal(t, g.calls, []string{"Parque principal de El Bordo"})
	})

	t.Run("geocoder failure falls back to region", func(t *testing.T) {
		g := &stubGeocoder{err: goerr.New("quota exceeded")}
		uc := newUseCases(t, usecase.WithGeocoder(g))
		session, _ := login(t, uc, types.RoleCitizen, "Guapi")

		in := reportInput()
		in.Address = "Muelle"
		inc, err := uc.Incident.Report(ctx, session.ID, in)
		gt.NoError(t, err).Required()
		gt.Equal(t, inc.Location.Coordinate, model.Coordinate{Lat: 2.5667, Lng: -77.8833})
	})

	t.Run("no address skips the geocoder", func(t *testing.T) {
		g := &stubGeocoder{coord: &model.Coordinate{Lat: 1, Lng: 1}}
		uc := newUseCases(t, usecase.WithGeocoder(g))
		session, _ := login(t, uc, types.RoleCitizen, "Guapi")

		inc, err := uc.Incident.Report(ctx, session.ID, reportInput())
		gt.NoError(t, err).Required()
		gt.A(t, g.calls).Length(0)
		gt.Equal(t, inc.Location.Coordinate, model.Coordinate{Lat: 2.5667, Lng: -77.8833})
	})

	t.Run("unknown region uses the default", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleCitizen, "Atlántida")

		inc, err := uc.Incident.Report(ctx, session.ID, reportInput())
		gt.NoError(t, err).Required()
		gt.Equal(t, inc.Location.Coordinate, geo.FallbackRegion.Coordinate)
		gt.Equal(t, inc.Location.Municipality, "")
		gt.Equal(t, inc.Location.Address, "Atlántida")
	})

	t.Run("stored newest first", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleCitizen, "Popayán")

		first, err := uc.Incident.Report(ctx, session.ID, reportInput())
		gt.NoError(t, err).Required()
		second, err := uc.Incident.Report(ctx, session.ID, reportInput())
		gt.NoError(t, err).Required()

		incidents, err := uc.Incident.List(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, incidents).Length(2)
		gt.Equal(t, incidents[0].ID, second.ID)
		gt.Equal(t, incidents[1].ID, first.ID)
	})

	t.Run("review follow-up arrives", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleCitizen, "Popayán")

		_, err := uc.Incident.Report(ctx, session.ID, reportInput())
		gt.NoError(t, err).Required()
		waitForTitle(t, uc, session.ID, "Reporte en revisión")
	})

	t.Run("requires a signed-in session", func(t *testing.T) {
		uc := newUseCases(t)
		_, err := uc.Incident.Report(ctx, "missing", reportInput())
		gt.True(t, errors.Is(err, model.ErrUnauthenticated))
	})
}

func TestIncidentGet(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t)
	gt.NoError(t, uc.Incident.SeedSamples(ctx)).Required()

	inc, err := uc.Incident.Get(ctx, "2")
	gt.NoError(t, err).Required()
	gt.Equal(t, inc.Title, "Deslizamiento en zona rural")
	gt.Equal(t, inc.AffectedPeople, 15)

	_, err = uc.Incident.Get(ctx, "missing")
	gt.True(t, errors.Is(err, model.ErrIncidentNotFound))
}

func TestIncidentSeedSamples(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t)

	gt.NoError(t, uc.Incident.SeedSamples(ctx)).Required()
	gt.NoError(t, uc.Incident.SeedSamples(ctx)).Required()

	incidents, err := uc.Incident.List(ctx)
	gt.NoError(t, err).Required()
	gt.A(t, incidents).Length(3)
	gt.Equal(t, incidents[0].ID, types.IncidentID("1"))
	gt.Equal(t, incidents[1].ID, types.IncidentID("2"))
	gt.Equal(t, incidents[2].ID, types.IncidentID("3"))
	gt.Equal(t, incidents[2].Status, types.IncidentStatusInvestigating)
}

func TestIncidentNearby(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t)
	gt.NoError(t, uc.Incident.SeedSamples(ctx)).Required()

	near, err := uc.Incident.Nearby(ctx, model.Coordinate{Lat: 2.4448, Lng: -76.6147})
	gt.NoError(t, err).Required()
	gt.A(t, near).Length(3)

	near, err = uc.Incident.Nearby(ctx, model.Coordinate{Lat: 2.3444, Lng: -76.6847})
	gt.NoError(t, err).Required()
	gt.A(t, near).Length(2)
	gt.Equal(t, near[0].ID, types.IncidentID("1"))
	gt.Equal(t, near[1].ID, types.IncidentID("2"))

	near, err = uc.Incident.Nearby(ctx, model.Coordinate{Lat: 1.2833, Lng: -77.1167})
	gt.NoError(t, err).Required()
	gt.A(t, near).Length(0)
}

func TestIncidentVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("citizens cannot verify", func(t *testing.T) {
		uc := newUseCases(t)
		gt.NoError(t, uc.Incident.SeedSamples(ctx)).Required()
		session, _ := login(t, uc, types.RoleCitizen, "Popayán")

		_, err := uc.Incident.Verify(ctx, session.ID, "2")
		gt.True(t, errors.Is(err, model.ErrForbidden))

		inc, err := uc.Incident.Get(ctx, "2")
		gt.NoError(t, err).Required()
		gt.False(t, inc.Verified)
	})

	t.Run("leaders verify", func(t *testing.T) {
		uc := newUseCases(t)
		gt.NoError(t, uc.Incident.SeedSamples(ctx)).Required()
		session, leader := login(t, uc, types.RoleLeader, "Timbío")

		inc, err := uc.Incident.Verify(ctx, session.ID, "2")
		gt.NoError(t, err).Required()
		gt.True(t, inc.Verified)
		gt.Equal(t, inc.VerifiedBy, leader.ID)

		stored, err := uc.Incident.Get(ctx, "2")
		gt.NoError(t, err).Required()
		gt.True(t, stored.Verified)

		incidents, err := uc.Incident.List(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, incidents[1].ID, types.IncidentID("2"))
	})

	t.Run("already verified is unchanged", func(t *testing.T) {
		uc := newUseCases(t)
		gt.NoError(t, uc.Incident.SeedSamples(ctx)).Required()
		session, _ := login(t, uc, types.RoleAdmin, "Popayán")

		inc, err := uc.Incident.Verify(ctx, session.ID, "1")
		gt.NoError(t, err).Required()
		gt.Equal(t, inc.VerifiedBy, types.UserID("leader-1"))
	})

	t.Run("unknown incident", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleLeader, "Popayán")
		_, err := uc.Incident.Verify(ctx, session.ID, "missing")
		gt.True(t, errors.Is(err, model.ErrIncidentNotFound))
	})
}

func TestIncidentImportLegacy(t *testing.T) {
	ctx := context.Background()

	t.Run("mixed schemas", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleAdmin, "Popayán")
		data := []byte(`[
			{"id":"legacy-1","titulo":"Desplazamiento masivo","descripcion":"Familias salen de la vereda","tipo":"displacement","estado":"active","severidad":"high","ubicacion":{"latitud":2.55,"longitud":-76.05,"direccion":"Vereda Alto","municipio":"Inzá"},"reportadoPor":"user-9","reportadoEn":"2024-06-10T09:00:00Z","verificado":false},
			{"id":"new-1","title":"Inundación","description":"El río Guapi se desbordó","type":"natural_disaster","severity":"critical","location":{"lat":2.5667,"lng":-77.8833,"address":"Guapi"}}
		]`)

		imported, err := uc.Incident.ImportLegacy(ctx, session.ID, data)
		gt.NoError(t, err).Required()
		gt.A(t, imported).Length(2)
		gt.Equal(t, imported[0].Title, "Desplazamiento masivo")
		gt.Equal(t, imported[0].Location.Municipality, "Inzá")

		incidents, err := uc.Incident.List(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, incidents).Length(2)
		gt.Equal(t, incidents[0].ID, types.IncidentID("legacy-1"))
		gt.Equal(t, incidents[1].ID, types.IncidentID("new-1"))
	})

	t.Run("invalid record stores nothing", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleAdmin, "Popayán")
		data := []byte(`[{"titulo":"x","tipo":"bogus","severidad":"high","ubicacion":{"latitud":2,"longitud":-76}}]`)

		_, err := uc.Incident.ImportLegacy(ctx, session.ID, data)
		gt.Error(t, err)
		gt.Equal(t, validationFields(t, err), []string{"incidents"})

		incidents, err := uc.Incident.List(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, incidents).Length(0)
	})
}

func TestIncidentImportNeverOverwrites(t *testing.T) {
	ctx := context.Background()

	t.Run("stored ID", func(t *testing.T) {
		uc := newUseCases(t)
		gt.NoError(t, uc.Incident.SeedSamples(ctx)).Required()
		session, _ := login(t, uc, types.RoleCitizen, "Popayán")

		data := []byte(`[{"id":"1","title":"forged","type":"other","severity":"low","location":{"lat":2.4448,"lng":-76.6147}}]`)
		_, err := uc.Incident.ImportLegacy(ctx, session.ID, data)
		gt.Equal(t, validationFields(t, err), []string{"incidents"})

		original, err := uc.Incident.Get(ctx, "1")
		gt.NoError(t, err).Required()
		gt.Equal(t, original.Title, "Bloqueo de vía principal")
		gt.True(t, original.Verified)

		incidents, err := uc.Incident.List(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, incidents).Length(3)
	})

	t.Run("repeated ID in batch", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleCitizen, "Popayán")

		data := []byte(`[
			{"id":"dup","title":"a","type":"other","severity":"low","location":{"lat":2.4,"lng":-76.6}},
			{"id":"dup","title":"b","type":"other","severity":"low","location":{"lat":2.4,"lng":-76.6}}
		]`)
		_, err := uc.Incident.ImportLegacy(ctx, session.ID, data)
		gt.Equal(t, validationFields(t, err), []string{"incidents"})

		incidents, err := uc.Incident.List(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, incidents).Length(0)
	})

	t.Run("requires session", func(t *testing.T) {
		uc := newUseCases(t)
		_, err := uc.Incident.ImportLegacy(ctx, "missing", []byte(`[]`))
		gt.True(t, errors.Is(err, model.ErrUnauthenticated))
	})
}

func TestIncidentImportVerification(t *testing.T) {
	ctx := context.Background()
	data := []byte(`[{"id":"v-1","titulo":"Retén ilegal","tipo":"threat","estado":"active","severidad":"high","ubicacion":{"latitud":2.6,"longitud":-76.5},"verificado":true,"verificadoPor":"leader-9"}]`)

	t.Run("citizen import drops verification", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleCitizen, "Popayán")

		_, err := uc.Incident.ImportLegacy(ctx, session.ID, data)
		gt.NoError(t, err).Required()

		stored, err := uc.Incident.Get(ctx, "v-1")
		gt.NoError(t, err).Required()
		gt.False(t, stored.Verified)
		gt.Equal(t, stored.VerifiedBy, types.UserID(""))
	})

	t.Run("leader import keeps verification", func(t *testing.T) {
		uc := newUseCases(t)
		session, _ := login(t, uc, types.RoleLeader, "Popayán")

		_, err := uc.Incident.ImportLegacy(ctx, session.ID, data)
		gt.NoError(t, err).Required()

		stored, err := uc.Incident.Get(ctx, "v-1")
		gt.NoError(t, err).Required()
		gt.True(t, stored.Verified)
		gt.Equal(t, stored.VerifiedBy, types.UserID("leader-9"))
	})
}

func TestIncidentGeoJSON(t *testing.T) {
	ctx := context.Background()
	uc := newUseCases(t)
	gt.NoError(t, uc.Incident.SeedSamples(ctx)).Required()

	fc, err := uc.Incident.GeoJSON(ctx)
	gt.NoError(t, err).Required()
	gt.Equal(t, fc.Type, "FeatureCollection")
	gt.A(t, fc.Features).Length(3)

	f := fc.Features[2]
	gt.Equal(t, f.ID, "3")
	gt.Equal(t, f.Geometry.Type, "Point")
	gt.Equal(t, f.Geometry.Coordinates, [2]float64{-76.4147, 2.8448})
	gt.Equal(t, f.Properties["marker-color"], any("#d97706"))

	raw, err := json.Marshal(fc)
	gt.NoError(t, err).Required()
	gt.S(t, string(raw)).Contains(`"type":"FeatureCollection"`)
}
