package mapview

import "github.com/caucaconecta/caucaconecta/pkg/domain/types"

type markerStyle struct {
	color         string
	criticalColor string
	icon          string
}

var incidentStyles = map[types.IncidentType]markerStyle{
	types.IncidentTypeAttack:          {color: "#ef4444", criticalColor: "#dc2626", icon: "🚨"},
	types.IncidentTypeDisplacement:    {color: "#f97316", criticalColor: "#ea580c", icon: "🏠"},
	types.IncidentTypeThreat:          {color: "#f59e0b", criticalColor: "#d97706", icon: "⚠️"},
	types.IncidentTypeNaturalDisaster: {color: "#3b82f6", criticalColor: "#2563eb", icon: "🌊"},
	types.IncidentTypeOther:           {color: "#64748b", criticalColor: "#475569", icon: "📍"},
}

const userMarkerColor = "#16a34a"

// IncidentColor returns the marker color. Critical incidents use a darker
// shade of their type's color.
func IncidentColor(t types.IncidentType, s types.Severity) string {
	style, ok := incidentStyles[t]
	if !ok {
		style = incidentStyles[types.IncidentTypeOther]
	}
	if s == types.SeverityCritical {
		return style.criticalColor
	}
	return style.color
}

// IncidentIcon returns the marker icon for an incident type
func IncidentIcon(t types.IncidentType) string {
	style, ok := incidentStyles[t]
	if !ok {
		style = incidentStyles[types.IncidentTypeOther]
	}
	return style.icon
}
