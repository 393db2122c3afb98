package types

// Role is the role a user claims at login
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleLeader  Role = "leader"
	RoleAdmin   Role = "admin"
)

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleCitizen, RoleLeader, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanVerify reports whether the role may verify incident reports
func (r Role) CanVerify() bool {
	return r == RoleLeader || r == RoleAdmin
}

// Label returns the display label used by the community
func (r Role) Label() string {
	switch r {
	case RoleCitizen:
		return "Ciudadano"
	case RoleLeader:
		return "Líder Comunitario"
	case RoleAdmin:
		return "Administrador"
	default:
		return string(r)
	}
}

// IncidentType classifies a reported incident
type IncidentType string

const (
	IncidentTypeAttack          IncidentType = "attack"
	IncidentTypeDisplacement    IncidentType = "displacement"
	IncidentTypeThreat          IncidentType = "threat"
	IncidentTypeNaturalDisaster IncidentType = "natural_disaster"
	IncidentTypeOther           IncidentType = "other"
)

// String returns the string representation
func (t IncidentType) String() string {
	return string(t)
}

// IsValid checks if the incident type is known
func (t IncidentType) IsValid() bool {
	switch t {
	case IncidentTypeAttack, IncidentTypeDisplacement, IncidentTypeThreat, IncidentTypeNaturalDisaster, IncidentTypeOther:
		return true
	default:
		return false
	}
}

// Label returns the display label
func (t IncidentType) Label() string {
	switch t {
	case IncidentTypeAttack:
		return "Ataque armado"
	case IncidentTypeDisplacement:
		return "Desplazamiento forzado"
	case IncidentTypeThreat:
		return "Amenaza"
	case IncidentTypeNaturalDisaster:
		return "Desastre natural"
	default:
		return "Otro"
	}
}

// Severity is the seriousness of an incident. The same scale is used for
// request urgency and priority.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// String returns the string representation
func (s Severity) String() string {
	return string(s)
}

// IsValid checks if the severity is known
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// Level returns an ordering value (low=1 .. critical=4, unknown=0)
func (s Severity) Level() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// Label returns the display label
func (s Severity) Label() string {
	switch s {
	case SeverityLow:
		return "Bajo"
	case SeverityMedium:
		return "Medio"
	case SeverityHigh:
		return "Alto"
	case SeverityCritical:
		return "Crítico"
	default:
		return string(s)
	}
}

// IncidentStatus represents the lifecycle state of a reported incident
type IncidentStatus string

const (
	IncidentStatusActive        IncidentStatus = "active"
	IncidentStatusResolved      IncidentStatus = "resolved"
	IncidentStatusInvestigating IncidentStatus = "investigating"
	IncidentStatusPending       IncidentStatus = "pending"
)

// String returns the string representation of the status
func (s IncidentStatus) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusActive, IncidentStatusResolved, IncidentStatusInvestigating, IncidentStatusPending:
		return true
	default:
		return false
	}
}

// RequestStatus is the status of a support request
type RequestStatus string

const (
	RequestStatusPending RequestStatus = "pending"
)

// RequestKind distinguishes support request variants
type RequestKind string

const (
	RequestKindEmergency RequestKind = "emergency"
	RequestKindResource  RequestKind = "resource_request"
	RequestKindSafeZone  RequestKind = "safe_zone_request"
)

// String returns the string representation
func (k RequestKind) String() string {
	return string(k)
}

// NotificationSeverity controls how a notification is presented
type NotificationSeverity string

const (
	NotificationInfo        NotificationSeverity = "info"
	NotificationWarning     NotificationSeverity = "warning"
	NotificationDestructive NotificationSeverity = "destructive"
)
