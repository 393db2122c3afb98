package http

import (
	"context"
	"net/http"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	cookieSessionID     = "session_id"
	cookieSessionSecret = "session_secret"
)

// Middleware provides session middleware
type Middleware struct {
	sessionUC usecase.SessionUseCase
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessionUC usecase.SessionUseCase) *Middleware {
	return &Middleware{
		sessionUC: sessionUC,
	}
}

// authenticate resolves the session cookies of a request
func (m *Middleware) authenticate(r *http.Request) (*model.AuthContext, error) {
	sessionIDCookie, err := r.Cookie(cookieSessionID)
	if err != nil {
		return nil, goerr.Wrap(model.ErrUnauthenticated, "missing session_id")
	}
	sessionSecretCookie, err := r.Cookie(cookieSessionSecret)
	if err != nil {
		return nil, goerr.Wrap(model.ErrUnauthenticated, "missing session_secret")
	}

	session, _, err := m.sessionUC.Authenticate(r.Context(),
		types.SessionID(sessionIDCookie.Value),
		types.SessionSecret(sessionSecretCookie.Value),
	)
	if err != nil {
		return nil, err
	}

	return &model.AuthContext{
		UserID:    session.UserID,
		SessionID: session.ID,
	}, nil
}

// withAuth binds an authenticated session to the request context and logger
func withAuth(r *http.Request, authCtx *model.AuthContext) *http.Request {
	ctx := model.WithAuthContext(r.Context(), authCtx)
	ctx = ctxlog.With(ctx, ctxlog.From(ctx).With("sessionID", authCtx.SessionID))
	return r.WithContext(ctx)
}

// OptionalAuth binds the session when valid cookies are present and lets
// anonymous requests through
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := model.GetAuthContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		if _, err := r.Cookie(cookieSessionID); err != nil {
			next.ServeHTTP(w, r)
			return
		}

		authCtx, err := m.authenticate(r)
		if err != nil {
			ctxlog.From(r.Context()).Debug("Ignoring invalid session cookies", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, withAuth(r, authCtx))
	})
}

// RequireAuth rejects requests without a valid session (chi compatible)
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authCtx, ok := model.GetAuthContext(r.Context()); ok && authCtx.SessionID != "" {
			next.ServeHTTP(w, r)
			return
		}

		authCtx, err := m.authenticate(r)
		if err != nil {
			ctxlog.From(r.Context()).Debug("Session validation failed", "error", err)
			writeError(w, r, err)
			return
		}

		ctxlog.From(r.Context()).Debug("Authenticated request",
			"userID", authCtx.UserID,
			"sessionID", authCtx.SessionID,
		)
		next.ServeHTTP(w, withAuth(r, authCtx))
	})
}

// LoggingMiddleware creates a chi-compatible logging middleware
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Embed logger from the initial context into request context
			logger := ctxlog.From(ctx).With("requestID", middleware.GetReqID(r.Context()))
			r = r.WithContext(ctxlog.With(r.Context(), logger))

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}
