// Package reqctx carries request-scoped values between the web layer and the
// upstream client: the session id, the path being served, and the resolved
// user. Keys are unexported; use the accessors.
package reqctx

import (
	"context"

	"github.com/studyoverflow/gateway/internal/core/domain"
)

type ctxKey int

const (
	keySessionID ctxKey = iota
	keyPath
	keyUser
)

// WithSessionID tags ctx with the browser session id.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, keySessionID, sid)
}

// SessionID returns the session id, or "" for anonymous requests.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(keySessionID).(string)
	return sid
}

// WithPath tags ctx with the path the browser is currently on. The upstream
// client consults it to decide whether an unauthenticated response should
// redirect to the login page.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, keyPath, path)
}

// Path returns the current request path, or "".
func Path(ctx context.Context) string {
	p, _ := ctx.Value(keyPath).(string)
	return p
}

// WithUser stashes the resolved current user.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, keyUser, u)
}

// User returns the resolved current user, or nil.
func User(ctx context.Context) *domain.User {
	u, _ := ctx.Value(keyUser).(*domain.User)
	return u
}
