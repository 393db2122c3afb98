package http

import (
	"net/http"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/go-chi/chi/v5"
)

// MapHandler handles the map view and geography lookups
type MapHandler struct {
	mapUC usecase.MapUseCase
}

// NewMapHandler creates a new map handler
func NewMapHandler(mapUC usecase.MapUseCase) *MapHandler {
	return &MapHandler{mapUC: mapUC}
}

// HandleView renders the map. Signed-in sessions get their region and last
// location; anonymous requests get the fallback region.
func (h *MapHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	view, err := h.mapUC.View(r.Context(), model.SessionIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// HandleRegions lists every known municipality
func (h *MapHandler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"regions": h.mapUC.Regions(),
	})
}

type regionResponse struct {
	Region model.Region `json:"region"`
	Found  bool         `json:"found"`
}

// HandleRegion resolves one municipality. Unknown names answer with the
// fallback region and found=false.
func (h *MapHandler) HandleRegion(w http.ResponseWriter, r *http.Request) {
	region, found := h.mapUC.Region(chi.URLParam(r, "name"))
	writeJSON(w, r, http.StatusOK, regionResponse{Region: region, Found: found})
}

type projectResponse struct {
	Position model.Position `json:"position"`
	Inside   bool           `json:"inside"`
}

// HandleProject places a coordinate on the map surface
func (h *MapHandler) HandleProject(w http.ResponseWriter, r *http.Request) {
	var c model.Coordinate
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.Validate(); err != nil {
		writeError(w, r, &model.ValidationError{Fields: []string{"lat", "lng"}})
		return
	}

	pos, inside := h.mapUC.Project(c)
	writeJSON(w, r, http.StatusOK, projectResponse{Position: pos, Inside: inside})
}
