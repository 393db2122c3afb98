package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// maxBodySize bounds request bodies, including legacy imports
const maxBodySize = 4 << 20

// errorResponse is the body of every failed API call
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encodeBody(w, r, v)
}

func encodeBody(w http.ResponseWriter, r *http.Request, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// statusOf maps domain errors to HTTP status codes
func statusOf(err error) int {
	if _, ok := model.AsValidationError(err); ok {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrIncidentNotFound),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrSessionNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError writes an error response. Internal errors are logged and their
// details withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	resp := errorResponse{Error: err.Error()}

	if ve, ok := model.AsValidationError(err); ok {
		resp.Error = ve.Error()
		resp.Fields = ve.Fields
	}
	if status == http.StatusInternalServerError {
		apperr.Handle(r.Context(), err)
		resp.Error = http.StatusText(status)
	}

	writeJSON(w, r, status, resp)
}

// decodeJSON reads a JSON body. A malformed body is reported as a
// validation error on the field "body".
func decodeJSON(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		ctxlog.From(r.Context()).Debug("Malformed request body", "error", err)
		return &model.ValidationError{Fields: []string{"body"}}
	}
	return nil
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read request body")
	}
	return body, nil
}
