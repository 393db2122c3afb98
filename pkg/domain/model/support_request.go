package model

import (
	"strings"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
)

// RequestHeader is shared by every support request variant
type RequestHeader struct {
	ID        types.RequestID     `json:"id"`
	Kind      types.RequestKind   `json:"kind"`
	UserID    types.UserID        `json:"user_id"`
	Status    types.RequestStatus `json:"status"`
	Priority  types.Severity      `json:"priority"`
	CreatedAt time.Time           `json:"created_at"`
}

func newRequestHeader(kind types.RequestKind, userID types.UserID, priority types.Severity) RequestHeader {
	return RequestHeader{
		ID:        types.NewRequestID(),
		Kind:      kind,
		UserID:    userID,
		Status:    types.RequestStatusPending,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
}

// SupportRequest is implemented by every request variant
type SupportRequest interface {
	Header() *RequestHeader
	Validate() error
}

// EmergencyRequest asks for immediate help
type EmergencyRequest struct {
	RequestHeader
	Urgency         types.Severity `json:"urgency"`
	RequestType     string         `json:"request_type"`
	PeopleAffected  int            `json:"people_affected"`
	Description     string         `json:"description"`
	ContactMethod   string         `json:"contact_method"`
	HasMinors       bool           `json:"has_minors"`
	HasElderly      bool           `json:"has_elderly"`
	HasDisabilities bool           `json:"has_disabilities"`
	Location        *UserLocation  `json:"location,omitempty"`
}

var (
	emergencyUrgencies = []types.Severity{types.SeverityCritical, types.SeverityHigh, types.SeverityMedium}
	emergencyTypes     = []string{"medical", "evacuation", "shelter", "food", "protection", "other"}
	contactMethods     = []string{"phone", "whatsapp", "sms"}
)

// Header returns the common request fields
func (r *EmergencyRequest) Header() *RequestHeader { return &r.RequestHeader }

// Validate checks required fields
func (r *EmergencyRequest) Validate() error {
	var c fieldChecker
	c.require(contains(emergencyUrgencies, r.Urgency), "urgency")
	c.require(contains(emergencyTypes, r.RequestType), "request_type")
	c.require(r.PeopleAffected > 0, "people_affected")
	c.require(strings.TrimSpace(r.Description) != "", "description")
	c.require(contains(contactMethods, r.ContactMethod), "contact_method")
	return c.err()
}

// NewEmergencyRequest fills defaults and the header. Urgency defaults to high,
// type to medical and contact method to phone, as on the form.
func NewEmergencyRequest(r EmergencyRequest, userID types.UserID) (*EmergencyRequest, error) {
	if r.Urgency == "" {
		r.Urgency = types.SeverityHigh
	}
	if r.RequestType == "" {
		r.RequestType = "medical"
	}
	if r.ContactMethod == "" {
		r.ContactMethod = "phone"
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.RequestHeader = newRequestHeader(types.RequestKindEmergency, userID, r.Urgency)
	return &r, nil
}

// ResourceRequest asks for supplies
type ResourceRequest struct {
	RequestHeader
	Resources       []string `json:"resources"`
	PeopleCount     int      `json:"people_count"`
	Duration        string   `json:"duration,omitempty"`
	SpecificNeeds   string   `json:"specific_needs,omitempty"`
	DeliveryAddress string   `json:"delivery_address"`
	ContactInfo     string   `json:"contact_info,omitempty"`
}

var availableResources = []string{"food", "water", "clothing", "hygiene", "baby", "medicine", "shelter", "tools"}

// Header returns the common request fields
func (r *ResourceRequest) Header() *RequestHeader { return &r.RequestHeader }

// Validate checks required fields
func (r *ResourceRequest) Validate() error {
	var c fieldChecker
	c.require(len(r.Resources) > 0, "resources")
	for _, res := range r.Resources {
		if !contains(availableResources, res) {
			c.require(false, "resources")
			break
		}
	}
	c.require(r.PeopleCount > 0, "people_count")
	c.require(strings.TrimSpace(r.DeliveryAddress) != "", "delivery_address")
	return c.err()
}

// NewResourceRequest validates r and fills the header
func NewResourceRequest(r ResourceRequest, userID types.UserID) (*ResourceRequest, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.RequestHeader = newRequestHeader(types.RequestKindResource, userID, types.SeverityMedium)
	return &r, nil
}

// SafeZoneRequest asks for shelter or relocation
type SafeZoneRequest struct {
	RequestHeader
	ReasonType        string `json:"reason_type"`
	PeopleCount       int    `json:"people_count"`
	HasVulnerable     bool   `json:"has_vulnerable"`
	VulnerableDetails string `json:"vulnerable_details,omitempty"`
	CurrentLocation   string `json:"current_location"`
	Duration          string `json:"duration"`
	Description       string `json:"description"`
	ContactPhone      string `json:"contact_phone"`
}

var (
	safeZoneReasons   = []string{"violence", "disaster", "conflict", "other"}
	safeZoneDurations = []string{"temporary", "extended", "permanent"}
)

// Header returns the common request fields
func (r *SafeZoneRequest) Header() *RequestHeader { return &r.RequestHeader }

// Validate checks required fields
func (r *SafeZoneRequest) Validate() error {
	var c fieldChecker
	c.require(contains(safeZoneReasons, r.ReasonType), "reason_type")
	c.require(r.PeopleCount > 0, "people_count")
	c.require(strings.TrimSpace(r.CurrentLocation) != "", "current_location")
	c.require(contains(safeZoneDurations, r.Duration), "duration")
	c.require(strings.TrimSpace(r.Description) != "", "description")
	c.require(strings.TrimSpace(r.ContactPhone) != "", "contact_phone")
	return c.err()
}

// SafeZonePriority is critical for violence and high otherwise
func SafeZonePriority(reason string) types.Severity {
	if reason == "violence" {
		return types.SeverityCritical
	}
	return types.SeverityHigh
}

// NewSafeZoneRequest fills defaults, validates r and fills the header
func NewSafeZoneRequest(r SafeZoneRequest, userID types.UserID) (*SafeZoneRequest, error) {
	if r.ReasonType == "" {
		r.ReasonType = "violence"
	}
	if r.Duration == "" {
		r.Duration = "temporary"
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.RequestHeader = newRequestHeader(types.RequestKindSafeZone, userID, SafeZonePriority(r.ReasonType))
	return &r, nil
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
