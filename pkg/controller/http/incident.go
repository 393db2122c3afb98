package http

import (
	"net/http"
	"strconv"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/go-chi/chi/v5"
)

// IncidentHandler handles incident reporting endpoints
type IncidentHandler struct {
	incidentUC usecase.IncidentUseCase
}

// NewIncidentHandler creates a new incident handler
func NewIncidentHandler(incidentUC usecase.IncidentUseCase) *IncidentHandler {
	return &IncidentHandler{incidentUC: incidentUC}
}

// HandleReport files a new incident for the signed-in user
func (h *IncidentHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	var in model.ReportIncidentInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	incident, err := h.incidentUC.Report(r.Context(), model.SessionIDFrom(r.Context()), &in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, incident)
}

// HandleList returns every incident, newest first
func (h *IncidentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	incidents, err := h.incidentUC.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"incidents": nonNil(incidents),
	})
}

// HandleGet returns one incident
func (h *IncidentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	incident, err := h.incidentUC.Get(r.Context(), types.IncidentID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, incident)
}

// HandleNearby returns incidents close to ?lat=&lng=
func (h *IncidentHandler) HandleNearby(w http.ResponseWriter, r *http.Request) {
	ref, err := parseCoordinate(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	incidents, err := h.incidentUC.Nearby(r.Context(), ref)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"incidents": nonNil(incidents),
	})
}

// HandleVerify marks an incident as verified by a leader or authority
func (h *IncidentHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	incident, err := h.incidentUC.Verify(r.Context(), model.SessionIDFrom(r.Context()), types.IncidentID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, incident)
}

// HandleImport loads a JSON array of incidents in the legacy camelCase
// layout
func (h *IncidentHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	imported, err := h.incidentUC.ImportLegacy(r.Context(), model.SessionIDFrom(r.Context()), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"imported": len(imported),
	})
}

// HandleGeoJSON exports every incident as a GeoJSON feature collection
func (h *IncidentHandler) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	fc, err := h.incidentUC.GeoJSON(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	encodeBody(w, r, fc)
}

// parseCoordinate reads ?lat=&lng= from the query string
func parseCoordinate(r *http.Request) (model.Coordinate, error) {
	var fields []string
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		fields = append(fields, "lat")
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		fields = append(fields, "lng")
	}
	if len(fields) > 0 {
		return model.Coordinate{}, &model.ValidationError{Fields: fields}
	}

	c := model.Coordinate{Lat: lat, Lng: lng}
	if err := c.Validate(); err != nil {
		return model.Coordinate{}, &model.ValidationError{Fields: []string{"lat", "lng"}}
	}
	return c, nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
