package http

import (
	"net"
	"net/http"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/service/locator"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
)

// SessionHandler handles sign-in, sign-out and per-session state
type SessionHandler struct {
	sessionUC  usecase.SessionUseCase
	locationUC usecase.LocationUseCase
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionUC usecase.SessionUseCase, locationUC usecase.LocationUseCase) *SessionHandler {
	return &SessionHandler{
		sessionUC:  sessionUC,
		locationUC: locationUC,
	}
}

type loginResponse struct {
	Session      *model.Session      `json:"session"`
	User         *model.User         `json:"user"`
	Notification *model.Notification `json:"notification,omitempty"`
}

// HandleLogin fabricates a user from the sign-in form and sets the session
// cookies
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in usecase.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	session, user, err := h.sessionUC.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	secure := !isLocalhost(r)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieSessionID,
		Value:    string(session.ID),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     cookieSessionSecret,
		Value:    string(session.Secret),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})

	n, err := h.sessionUC.LatestNotification(r.Context(), session.ID)
	if err != nil {
		ctxlog.From(r.Context()).Warn("Failed to read welcome notification", "error", err)
	}

	writeJSON(w, r, http.StatusOK, loginResponse{
		Session:      session,
		User:         user,
		Notification: n,
	})
}

// HandleLogout discards the session and clears the cookies
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	n, err := h.sessionUC.Logout(r.Context(), model.SessionIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	for _, name := range []string{cookieSessionID, cookieSessionSecret} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"notification": n,
	})
}

// HandleMe returns the user, last location and current toast of the session
func (h *SessionHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessionUC.Me(r.Context(), model.SessionIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}

// HandleLatestNotification returns the toast currently shown to the session
func (h *SessionHandler) HandleLatestNotification(w http.ResponseWriter, r *http.Request) {
	n, err := h.sessionUC.LatestNotification(r.Context(), model.SessionIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"notification": n,
	})
}

// HandleLocation stores the result of a browser geolocation request. A
// failed lookup still answers 200 with the degraded default coordinate.
func (h *SessionHandler) HandleLocation(w http.ResponseWriter, r *http.Request) {
	var report locator.Report
	if err := decodeJSON(r, &report); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.locationUC.UpdateLocation(r.Context(), model.SessionIDFrom(r.Context()), locator.FromReport(report))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// isLocalhost checks if the request is from localhost
func isLocalhost(r *http.Request) bool {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
