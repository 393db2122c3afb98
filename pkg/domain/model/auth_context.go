package model

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
)

type contextKey string

const (
	authContextKey contextKey = "authContext"
)

// AuthContext identifies the session a request or background job acts for.
// It is preserved across async boundaries so delayed notifications reach the
// right session.
type AuthContext struct {
	UserID    types.UserID    `json:"user_id,omitempty"`
	SessionID types.SessionID `json:"session_id,omitempty"`
}

// NewAuthContext creates a new AuthContext
func NewAuthContext() *AuthContext {
	return &AuthContext{}
}

// WithAuthContext adds AuthContext to the context
func WithAuthContext(ctx context.Context, authCtx *AuthContext) context.Context {
	if authCtx == nil {
		return ctx
	}
	return context.WithValue(ctx, authContextKey, authCtx)
}

// GetAuthContext retrieves AuthContext from the context
func GetAuthContext(ctx context.Context) (*AuthContext, bool) {
	authCtx, ok := ctx.Value(authContextKey).(*AuthContext)
	return authCtx, ok
}

// SessionIDFrom returns the session ID bound to ctx, or "" when there is none
func SessionIDFrom(ctx context.Context) types.SessionID {
	if authCtx, ok := GetAuthContext(ctx); ok && authCtx != nil {
		return authCtx.SessionID
	}
	return ""
}

// Clone creates a deep copy of the AuthContext
func (a *AuthContext) Clone() *AuthContext {
	if a == nil {
		return nil
	}
	return &AuthContext{
		UserID:    a.UserID,
		SessionID: a.SessionID,
	}
}
