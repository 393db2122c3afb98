package http

import (
	"net/http"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
)

// SupportHandler handles victim support requests
type SupportHandler struct {
	supportUC usecase.SupportUseCase
}

// NewSupportHandler creates a new support request handler
func NewSupportHandler(supportUC usecase.SupportUseCase) *SupportHandler {
	return &SupportHandler{supportUC: supportUC}
}

// HandleEmergency submits an emergency request
func (h *SupportHandler) HandleEmergency(w http.ResponseWriter, r *http.Request) {
	var req model.EmergencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.supportUC.SubmitEmergency(r.Context(), model.SessionIDFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

// HandleResource submits a resource request
func (h *SupportHandler) HandleResource(w http.ResponseWriter, r *http.Request) {
	var req model.ResourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.supportUC.SubmitResource(r.Context(), model.SessionIDFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

// HandleSafeZone submits a safe zone request
func (h *SupportHandler) HandleSafeZone(w http.ResponseWriter, r *http.Request) {
	var req model.SafeZoneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.supportUC.SubmitSafeZone(r.Context(), model.SessionIDFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

// HandleList returns the requests submitted by the signed-in user
func (h *SupportHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	requests, err := h.supportUC.List(r.Context(), model.SessionIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"requests": nonNil(requests),
	})
}
