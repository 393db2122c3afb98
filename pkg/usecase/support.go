package usecase

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Support implements SupportUseCase
type Support struct {
	*deps
}

var _ SupportUseCase = (*Support)(nil)

// SubmitEmergency records an emergency request. The session's last location
// is attached when known.
func (s *Support) SubmitEmergency(ctx context.Context, sessionID types.SessionID, r model.EmergencyRequest) (*model.EmergencyRequest, error) {
	st, err := s.currentState(sessionID)
	if err != nil {
		return nil, err
	}

	req, err := model.NewEmergencyRequest(r, st.User.ID)
	if err != nil {
		return nil, err
	}
	if req.Location == nil && st.Location != nil {
		loc := *st.Location
		req.Location = &loc
	}

	if err := s.submit(withSession(ctx, sessionID, st.User.ID), sessionID, req); err != nil {
		return nil, err
	}
	return req, nil
}

// SubmitResource records a resource request
func (s *Support) SubmitResource(ctx context.Context, sessionID types.SessionID, r model.ResourceRequest) (*model.ResourceRequest, error) {
	st, err := s.currentState(sessionID)
	if err != nil {
		return nil, err
	}

	req, err := model.NewResourceRequest(r, st.User.ID)
	if err != nil {
		return nil, err
	}

	if err := s.submit(withSession(ctx, sessionID, st.User.ID), sessionID, req); err != nil {
		return nil, err
	}
	return req, nil
}

// SubmitSafeZone records a safe-zone request
func (s *Support) SubmitSafeZone(ctx context.Context, sessionID types.SessionID, r model.SafeZoneRequest) (*model.SafeZoneRequest, error) {
	st, err := s.currentState(sessionID)
	if err != nil {
		return nil, err
	}

	req, err := model.NewSafeZoneRequest(r, st.User.ID)
	if err != nil {
		return nil, err
	}

	if err := s.submit(withSession(ctx, sessionID, st.User.ID), sessionID, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Support) submit(ctx context.Context, sessionID types.SessionID, req model.SupportRequest) error {
	h := req.Header()
	if err := s.repo.PutSupportRequest(ctx, req); err != nil {
		return goerr.Wrap(err, "failed to save support request",
			goerr.V("request_id", h.ID),
			goerr.V("kind", h.Kind))
	}

	ctxlog.From(ctx).Info("Support request submitted",
		"requestID", h.ID,
		"kind", h.Kind,
		"priority", h.Priority,
		"userID", h.UserID,
	)
	s.notify(ctx, sessionID, requestSubmittedNotification(h.Kind, h.Priority))
	return nil
}

// List returns the session user's own requests, newest first
func (s *Support) List(ctx context.Context, sessionID types.SessionID) ([]model.SupportRequest, error) {
	st, err := s.currentState(sessionID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.ListSupportRequests(ctx, st.User.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list support requests")
	}
	return requests, nil
}
