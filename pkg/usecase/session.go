package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// LoginInput is the sign-in form
type LoginInput struct {
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Phone  string     `json:"phone,omitempty"`
	Role   types.Role `json:"role"`
	Region string     `json:"region"`
}

// Validate checks required fields. An empty role means citizen; an unknown
// region is accepted and resolved by fallback later.
func (in *LoginInput) Validate() error {
	var fields []string
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, "email")
	}
	if in.Role != "" && !in.Role.IsValid() {
		fields = append(fields, "role")
	}
	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}

// Session implements SessionUseCase
type Session struct {
	*deps
}

var _ SessionUseCase = (*Session)(nil)

// Login fabricates a user and opens a session
func (s *Session) Login(ctx context.Context, in LoginInput) (*model.Session, *model.User, error) {
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}
	if in.Role == "" {
		in.Role = types.RoleCitizen
	}

	user := model.NewUser(strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), in.Phone, in.Role, in.Region)
	if _, known := s.geography.Regions.Lookup(in.Region); known {
		user.Municipality = in.Region
	}
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to save user")
	}

	session, err := model.NewSession(user.ID, s.cfg.sessionTTL)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create session")
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to save session")
	}

	s.state.SetUser(session.ID, user)

	ctx = withSession(ctx, session.ID, user.ID)
	ctxlog.From(ctx).Info("User signed in",
		"userID", user.ID,
		"sessionID", session.ID,
		"role", user.Role,
		"region", user.Region,
	)

	s.notify(ctx, session.ID, welcomeNotification(user))
	if user.Role == types.RoleLeader {
		s.notifyLater(ctx, session.ID, s.cfg.leaderDelay, leaderPendingNotification())
	}

	return session, user, nil
}

// Authenticate validates a session by ID and secret
func (s *Session) Authenticate(ctx context.Context, sessionID types.SessionID, secret types.SessionSecret) (*model.Session, *model.User, error) {
	if sessionID == "" || secret == "" {
		return nil, nil, goerr.Wrap(model.ErrUnauthenticated, "session ID and secret are required")
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, nil, goerr.Wrap(model.ErrUnauthenticated, "session not found",
				goerr.V("session_id", sessionID))
		}
		return nil, nil, goerr.Wrap(err, "failed to get session")
	}

	if session.Secret != secret {
		return nil, nil, goerr.Wrap(model.ErrUnauthenticated, "invalid session secret",
			goerr.V("session_id", sessionID))
	}
	if session.IsExpired() {
		return nil, nil, goerr.Wrap(model.ErrUnauthenticated, "session expired",
			goerr.V("session_id", sessionID),
			goerr.V("expires_at", session.ExpiresAt))
	}

	st, err := s.currentState(sessionID)
	if err != nil {
		return nil, nil, err
	}

	return session, st.User, nil
}

// Logout discards the session, the user and the last location. The farewell
// toast is returned because the session can no longer read it afterwards.
func (s *Session) Logout(ctx context.Context, sessionID types.SessionID) (*model.Notification, error) {
	st, err := s.currentState(sessionID)
	if err != nil {
		return nil, err
	}

	ctx = withSession(ctx, sessionID, st.User.ID)

	farewell := logoutNotification()
	s.notify(ctx, sessionID, farewell)
	if err := s.discard(ctx, sessionID, st.User.ID); err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Info("User signed out",
		"userID", st.User.ID,
		"sessionID", sessionID,
	)

	return farewell, nil
}

// PurgeExpired forgets every expired session together with its user, state
// and toast. It returns how many sessions were purged.
func (s *Session) PurgeExpired(ctx context.Context) (int, error) {
	expired, err := s.repo.ListExpiredSessions(ctx, time.Now())
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list expired sessions")
	}

	for _, session := range expired {
		if err := s.discard(ctx, session.ID, session.UserID); err != nil {
			return 0, err
		}
	}

	if len(expired) > 0 {
		ctxlog.From(ctx).Info("Expired sessions purged", "count", len(expired))
	}
	return len(expired), nil
}

// discard drops everything held for a session. The state goes before the
// toast so a concurrent notify sees the session as gone.
func (s *Session) discard(ctx context.Context, sessionID types.SessionID, userID types.UserID) error {
	if err := s.repo.DeleteSession(ctx, sessionID); err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		return goerr.Wrap(err, "failed to delete session", goerr.V("session_id", sessionID))
	}
	if err := s.repo.DeleteUser(ctx, userID); err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return goerr.Wrap(err, "failed to delete user", goerr.V("user_id", userID))
	}

	s.state.Clear(sessionID)
	s.toasts.Clear(sessionID)
	return nil
}

// Me returns the current state of a session
func (s *Session) Me(ctx context.Context, sessionID types.SessionID) (*AppState, error) {
	st, err := s.currentState(sessionID)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// LatestNotification returns the toast currently shown to a session
func (s *Session) LatestNotification(ctx context.Context, sessionID types.SessionID) (*model.Notification, error) {
	st, err := s.currentState(sessionID)
	if err != nil {
		return nil, err
	}
	return st.Notification, nil
}
