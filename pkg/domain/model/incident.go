package model

import (
	"strings"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
)

// Location is where an incident happened
type Location struct {
	Coordinate
	Address      string `json:"address"`
	Municipality string `json:"municipality,omitempty"`
	Village      string `json:"village,omitempty"`
}

// Incident is a community safety report. Incidents are kept in memory only.
type Incident struct {
	ID               types.IncidentID     `json:"id"`
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	Type             types.IncidentType   `json:"type"`
	Status           types.IncidentStatus `json:"status"`
	Severity         types.Severity       `json:"severity"`
	Location         Location             `json:"location"`
	ReportedBy       types.UserID         `json:"reported_by"`
	ReportedAt       time.Time            `json:"reported_at"`
	AffectedPeople   int                  `json:"affected_people,omitempty"`
	Images           []string             `json:"images,omitempty"`
	Verified         bool                 `json:"verified"`
	VerifiedBy       types.UserID         `json:"verified_by,omitempty"`
	EmergencyContact string               `json:"emergency_contact,omitempty"`
}

// ReportIncidentInput is what a user fills in on the report form.
// Coordinate is optional; the use case resolves a location when it is nil.
type ReportIncidentInput struct {
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Type             types.IncidentType `json:"type"`
	Severity         types.Severity     `json:"severity"`
	Coordinate       *Coordinate        `json:"coordinate,omitempty"`
	Address          string             `json:"address,omitempty"`
	Village          string             `json:"village,omitempty"`
	AffectedPeople   int                `json:"affected_people,omitempty"`
	EmergencyContact string             `json:"emergency_contact,omitempty"`
}

// Validate checks required fields
func (in *ReportIncidentInput) Validate() error {
	var c fieldChecker
	c.require(strings.TrimSpace(in.Title) != "", "title")
	c.require(strings.TrimSpace(in.Description) != "", "description")
	c.require(in.Type.IsValid(), "type")
	c.require(in.Severity.IsValid(), "severity")
	c.require(in.AffectedPeople >= 0, "affected_people")
	if in.Coordinate != nil {
		c.require(in.Coordinate.Validate() == nil, "coordinate")
	}
	return c.err()
}

// NewIncident creates an unverified, active incident from validated input
func NewIncident(in *ReportIncidentInput, loc Location, reportedBy types.UserID) (*Incident, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return &Incident{
		ID:               types.NewIncidentID(),
		Title:            strings.TrimSpace(in.Title),
		Description:      strings.TrimSpace(in.Description),
		Type:             in.Type,
		Status:           types.IncidentStatusActive,
		Severity:         in.Severity,
		Location:         loc,
		ReportedBy:       reportedBy,
		ReportedAt:       time.Now(),
		AffectedPeople:   in.AffectedPeople,
		EmergencyContact: in.EmergencyContact,
	}, nil
}
