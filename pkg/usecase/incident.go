package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/caucaconecta/caucaconecta/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Incident implements IncidentUseCase
type Incident struct {
	*deps
}

var _ IncidentUseCase = (*Incident)(nil)

// Report validates and stores a new incident, newest first and unverified
func (u *Incident) Report(ctx context.Context, sessionID types.SessionID, in *model.ReportIncidentInput) (*model.Incident, error) {
	st, err := u.currentState(sessionID)
	if err != nil {
		return nil, err
	}
	ctx = withSession(ctx, sessionID, st.User.ID)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	loc := u.resolveLocation(ctx, st, in)
	incident, err := model.NewIncident(in, loc, st.User.ID)
	if err != nil {
		return nil, err
	}

	if err := u.repo.PutIncident(ctx, incident); err != nil {
		return nil, goerr.Wrap(err, "failed to save incident", goerr.V("incident_id", incident.ID))
	}

	ctxlog.From(ctx).Info("Incident reported",
		"incidentID", incident.ID,
		"type", incident.Type,
		"severity", incident.Severity,
		"coordinate", incident.Location.Coordinate.String(),
		"reportedBy", incident.ReportedBy,
	)

	u.notify(ctx, sessionID, incidentReportedNotification())
	u.notifyLater(ctx, sessionID, u.cfg.reportDelay, reportUnderReviewNotification())

	return incident, nil
}

// resolveLocation picks the incident coordinate: the explicit one, then the
// session's last location, then the geocoded address, then the user's region
// and finally the fallback region. The address defaults to the region name.
func (u *Incident) resolveLocation(ctx context.Context, st AppState, in *model.ReportIncidentInput) model.Location {
	region, known := u.geography.Regions.Lookup(st.User.Region)

	loc := model.Location{
		Address: strings.TrimSpace(in.Address),
		Village: strings.TrimSpace(in.Village),
	}
	if loc.Address == "" {
		loc.Address = st.User.Region
	}
	if known {
		loc.Municipality = region.Name
	}

	switch {
	case in.Coordinate != nil:
		loc.Coordinate = *in.Coordinate
	case st.Location != nil:
		loc.Coordinate = st.Location.Coordinate
	default:
		if c := u.geocode(ctx, strings.TrimSpace(in.Address)); c != nil {
			loc.Coordinate = *c
		} else {
			loc.Coordinate = region.Coordinate
		}
	}

	return loc
}

func (u *Incident) geocode(ctx context.Context, address string) *model.Coordinate {
	if u.cfg.geocoder == nil || address == "" {
		return nil
	}

	c, err := u.cfg.geocoder.Geocode(ctx, address)
	if err != nil {
		apperr.Handle(ctx, goerr.Wrap(err, "geocoding failed, falling back to region", goerr.V("address", address)))
		return nil
	}
	return c
}

// List returns all incidents, newest first
func (u *Incident) List(ctx context.Context) ([]*model.Incident, error) {
	incidents, err := u.repo.ListIncidents(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}
	return incidents, nil
}

// Get returns one incident
func (u *Incident) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	incident, err := u.repo.GetIncident(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V("incident_id", id))
	}
	return incident, nil
}

// Nearby returns the incidents within the relevance threshold of ref,
// newest first
func (u *Incident) Nearby(ctx context.Context, ref model.Coordinate) ([]*model.Incident, error) {
	incidents, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	return u.geography.Filter.Filter(ref, incidents), nil
}

// Verify marks an incident as verified by the session's user. Only leaders
// and admins may verify.
func (u *Incident) Verify(ctx context.Context, sessionID types.SessionID, id types.IncidentID) (*model.Incident, error) {
	st, err := u.currentState(sessionID)
	if err != nil {
		return nil, err
	}
	ctx = withSession(ctx, sessionID, st.User.ID)

	if !st.User.Role.CanVerify() {
		return nil, goerr.Wrap(model.ErrForbidden, "only leaders can verify incidents",
			goerr.V("role", st.User.Role),
			goerr.V("incident_id", id))
	}

	incident, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if incident.Verified {
		return incident, nil
	}

	incident.Verified = true
	incident.VerifiedBy = st.User.ID
	if err := u.repo.PutIncident(ctx, incident); err != nil {
		return nil, goerr.Wrap(err, "failed to save incident", goerr.V("incident_id", id))
	}

	ctxlog.From(ctx).Info("Incident verified",
		"incidentID", id,
		"verifiedBy", st.User.ID,
	)
	u.notify(ctx, sessionID, incidentVerifiedNotification(incident))

	return incident, nil
}

// SeedSamples loads the demonstration incidents. Seeding twice replaces them
// in place.
func (u *Incident) SeedSamples(ctx context.Context) error {
	samples := SampleIncidents()
	// stored newest first, so insert oldest first
	for i := len(samples) - 1; i >= 0; i-- {
		if err := u.repo.PutIncident(ctx, samples[i]); err != nil {
			return goerr.Wrap(err, "failed to seed incident", goerr.V("incident_id", samples[i].ID))
		}
	}

	ctxlog.From(ctx).Info("Sample incidents loaded", "count", len(samples))
	return nil
}

// ImportLegacy stores incidents from a JSON array that may mix the current
// schema with the Spanish-named legacy one. Imports only add: an ID that is
// already stored or repeated in the batch rejects the whole batch. Nothing is
// stored if any record is invalid, and the batch is reported as a validation
// error on "incidents". Verification marks are kept only when the importer
// may verify.
func (u *Incident) ImportLegacy(ctx context.Context, sessionID types.SessionID, data []byte) ([]*model.Incident, error) {
	st, err := u.currentState(sessionID)
	if err != nil {
		return nil, err
	}
	ctx = withSession(ctx, sessionID, st.User.ID)

	incidents, err := model.DecodeIncidents(data)
	if err != nil {
		return nil, rejectImport(ctx, err)
	}

	if !st.User.Role.CanVerify() {
		for _, incident := range incidents {
			incident.Verified = false
			incident.VerifiedBy = ""
		}
	}

	if err := u.repo.AddIncidents(ctx, incidents); err != nil {
		if errors.Is(err, model.ErrIncidentExists) {
			return nil, rejectImport(ctx, err)
		}
		return nil, goerr.Wrap(err, "failed to save imported incidents", goerr.V("count", len(incidents)))
	}

	ctxlog.From(ctx).Info("Incidents imported",
		"count", len(incidents),
		"importedBy", st.User.ID,
	)
	return incidents, nil
}

func rejectImport(ctx context.Context, err error) error {
	ctxlog.From(ctx).Warn("Rejected incident import", "error", err)
	return &model.ValidationError{Fields: []string{"incidents"}}
}

var colombia = time.FixedZone("COT", -5*60*60)

// SampleIncidents returns the demonstration data set, newest first
func SampleIncidents() []*model.Incident {
	return []*model.Incident{
		{
			ID:          "1",
			Title:       "Bloqueo de vía principal",
			Description: "Manifestación pacífica bloqueando la vía Popayán-Cali a la altura del peaje",
			Type:        types.IncidentTypeOther,
			Status:      types.IncidentStatusActive,
			Severity:    types.SeverityMedium,
			Location: model.Location{
				Coordinate:   model.Coordinate{Lat: 2.4448, Lng: -76.6147},
				Municipality: "Popayán",
			},
			ReportedBy: "user-1",
			ReportedAt: time.Date(2024, 6, 14, 10, 30, 0, 0, colombia),
			Verified:   true,
			VerifiedBy: "leader-1",
		},
		{
			ID:          "2",
			Title:       "Deslizamiento en zona rural",
			Description: "Deslizamiento de tierra afecta acceso a veredas en la zona alta de Timbío",
			Type:        types.IncidentTypeNaturalDisaster,
			Status:      types.IncidentStatusActive,
			Severity:    types.SeverityHigh,
			Location: model.Location{
				Coordinate:   model.Coordinate{Lat: 2.3444, Lng: -76.6847},
				Municipality: "Timbío",
			},
			ReportedBy:     "user-2",
			ReportedAt:     time.Date(2024, 6, 14, 8, 15, 0, 0, colombia),
			AffectedPeople: 15,
		},
		{
			ID:          "3",
			Title:       "Amenaza a líder comunitario",
			Description: "Líder social recibe amenazas por WhatsApp en el norte del Cauca",
			Type:        types.IncidentTypeThreat,
			Status:      types.IncidentStatusInvestigating,
			Severity:    types.SeverityCritical,
			Location: model.Location{
				Coordinate: model.Coordinate{Lat: 2.8448, Lng: -76.4147},
			},
			ReportedBy: "user-3",
			ReportedAt: time.Date(2024, 6, 13, 22, 45, 0, 0, colombia),
			Verified:   true,
			VerifiedBy: "leader-2",
		},
	}
}
