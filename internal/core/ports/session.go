package ports

import "context"

// TokenStore holds the upstream bearer token per browser session. It is the
// only cross-component shared mutable state in the gateway: written by
// login/register (set) and logout/unauthenticated-handling (clear), read by
// the upstream client on every request.
type TokenStore interface {
	Set(ctx context.Context, sid, token string) error
	// Get returns the stored token, or "" when none exists.
	Get(ctx context.Context, sid string) (string, error)
	Clear(ctx context.Context, sid string) error
}

// InflightGuard serializes mutating calls per session and operation key. It
// backs the "disable the triggering control while loading" contract: a second
// vote for the same target while one is in flight is refused.
type InflightGuard interface {
	// TryAcquire reports whether the caller won the slot. Losing means an
	// identical operation is already in flight.
	TryAcquire(ctx context.Context, sid, key string) (bool, error)
	Release(ctx context.Context, sid, key string) error
}
