package model

import (
	"encoding/json"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// LegacyIncident is the Spanish-named incident shape used by earlier clients.
// Enumeration values are carried over as-is; only field names differ.
type LegacyIncident struct {
	ID                 string         `json:"id"`
	Titulo             string         `json:"titulo"`
	Descripcion        string         `json:"descripcion"`
	Tipo               string         `json:"tipo"`
	Estado             string         `json:"estado"`
	Ubicacion          LegacyLocation `json:"ubicacion"`
	ReportadoPor       string         `json:"reportadoPor"`
	ReportadoEn        time.Time      `json:"reportadoEn"`
	Severidad          string         `json:"severidad"`
	PersonasAfectadas  int            `json:"personasAfectadas,omitempty"`
	Imagenes           []string       `json:"imagenes,omitempty"`
	Verificado         bool           `json:"verificado"`
	VerificadoPor      string         `json:"verificadoPor,omitempty"`
	ContactoEmergencia string         `json:"contactoEmergencia,omitempty"`
}

// LegacyLocation is the Spanish-named location shape
type LegacyLocation struct {
	Latitud   float64 `json:"latitud"`
	Longitud  float64 `json:"longitud"`
	Direccion string  `json:"direccion"`
	Municipio string  `json:"municipio"`
	Vereda    string  `json:"vereda,omitempty"`
}

// ToIncident migrates a legacy record to the canonical Incident
func (l *LegacyIncident) ToIncident() (*Incident, error) {
	inc := &Incident{
		ID:          types.IncidentID(l.ID),
		Title:       l.Titulo,
		Description: l.Descripcion,
		Type:        types.IncidentType(l.Tipo),
		Status:      types.IncidentStatus(l.Estado),
		Severity:    types.Severity(l.Severidad),
		Location: Location{
			Coordinate:   Coordinate{Lat: l.Ubicacion.Latitud, Lng: l.Ubicacion.Longitud},
			Address:      l.Ubicacion.Direccion,
			Municipality: l.Ubicacion.Municipio,
			Village:      l.Ubicacion.Vereda,
		},
		ReportedBy:       types.UserID(l.ReportadoPor),
		ReportedAt:       l.ReportadoEn,
		AffectedPeople:   l.PersonasAfectadas,
		Images:           l.Imagenes,
		Verified:         l.Verificado,
		VerifiedBy:       types.UserID(l.VerificadoPor),
		EmergencyContact: l.ContactoEmergencia,
	}

	if err := inc.normalize(); err != nil {
		return nil, err
	}
	return inc, nil
}

// normalize fills missing identity fields and validates an imported incident
func (inc *Incident) normalize() error {
	if inc.ID == "" {
		inc.ID = types.NewIncidentID()
	}
	if inc.Status == "" {
		inc.Status = types.IncidentStatusActive
	}
	if inc.ReportedAt.IsZero() {
		inc.ReportedAt = time.Now()
	}

	var c fieldChecker
	c.require(inc.Title != "", "title")
	c.require(inc.Type.IsValid(), "type")
	c.require(inc.Severity.IsValid(), "severity")
	c.require(inc.Status.IsValid(), "status")
	c.require(inc.Location.Coordinate.Validate() == nil, "location")
	return c.err()
}

// DecodeIncidents reads a JSON array whose elements may use either the
// canonical or the legacy schema. A record is treated as legacy when it
// carries a "titulo" key.
func DecodeIncidents(data []byte) ([]*Incident, error) {
	var raws []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, goerr.Wrap(err, "failed to decode incident list")
	}

	incidents := make([]*Incident, 0, len(raws))
	for i, raw := range raws {
		buf, err := json.Marshal(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to re-encode incident", goerr.V("index", i))
		}

		var inc *Incident
		if _, legacy := raw["titulo"]; legacy {
			var l LegacyIncident
			if err := json.Unmarshal(buf, &l); err != nil {
				return nil, goerr.Wrap(err, "failed to decode legacy incident", goerr.V("index", i))
			}
			if inc, err = l.ToIncident(); err != nil {
				return nil, goerr.Wrap(err, "invalid legacy incident", goerr.V("index", i))
			}
		} else {
			inc = &Incident{}
			if err := json.Unmarshal(buf, inc); err != nil {
				return nil, goerr.Wrap(err, "failed to decode incident", goerr.V("index", i))
			}
			if err := inc.normalize(); err != nil {
				return nil, goerr.Wrap(err, "invalid incident", goerr.V("index", i))
			}
		}
		incidents = append(incidents, inc)
	}

	return incidents, nil
}
