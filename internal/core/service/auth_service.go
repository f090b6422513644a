package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/reqctx"
)

// AuthService owns the session state machine:
// unauthenticated → loading → {authenticated | unauthenticated}.
//
// One instance serves one request. The current-user snapshot lives for the
// instance's lifetime only; durable state is the token in the store.
type AuthService struct {
	hookState
	auth   ports.AuthAPI
	tokens ports.TokenStore
	log    zerolog.Logger

	user     *domain.User
	redirect bool
}

func NewAuthService(auth ports.AuthAPI, tokens ports.TokenStore, log zerolog.Logger) *AuthService {
	return &AuthService{auth: auth, tokens: tokens, log: log}
}

// User returns the current-user snapshot, or nil when unauthenticated.
func (s *AuthService) User() *domain.User { return s.user }

// RedirectToLogin reports whether the user probe found a stale session on a
// page that should bounce the browser to the login form. The upstream client
// decides the "should": it leaves the flag unset on the public entry pages.
func (s *AuthService) RedirectToLogin() bool { return s.redirect }

// CurrentUser resolves the session's user. With no session or no stored
// token the session is simply unauthenticated. When the probe fails:
//
//   - 401/403: the token is stale or revoked — purge it and drop the user.
//   - anything else (5xx, network): keep whatever state existed before the
//     call. A flaky backend must not log people out.
func (s *AuthService) CurrentUser(ctx context.Context) *domain.User {
	sid := reqctx.SessionID(ctx)
	if sid == "" {
		return nil
	}

	token, err := s.tokens.Get(ctx, sid)
	if err != nil {
		s.log.Error().Err(err).Msg("token lookup failed during user probe")
		return s.user
	}
	if token == "" {
		s.user = nil
		return nil
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		apiErr, ok := domain.AsAPIError(err)
		if ok && (apiErr.Status == 401 || apiErr.Status == 403) {
			if err := s.tokens.Clear(ctx, sid); err != nil {
				s.log.Error().Err(err).Msg("token purge failed")
			}
			s.user = nil
			s.redirect = apiErr.RedirectToLogin
			return nil
		}
		// Transient failure: retain prior state.
		s.log.Warn().Err(err).Msg("user probe failed transiently; keeping session state")
		return s.user
	}

	s.user = user
	return user
}

// Login exchanges credentials for a bearer token. On success the token is
// stored under the session and the user snapshot is set. On failure the
// upstream's message lands in Err(); Login never panics through for expected
// validation failures.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	res, err := s.auth.Login(ctx, in)
	if err != nil {
		s.fail(err, loginMessage(err))
		return false
	}

	sid := reqctx.SessionID(ctx)
	if err := s.tokens.Set(ctx, sid, res.Token); err != nil {
		s.log.Error().Err(err).Msg("token store failed after login")
		s.fail(err, "could not establish a session, try again")
		return false
	}

	s.user = res.User
	return true
}

// Register creates an account and logs the user in. Per-field validation
// messages from the upstream are flattened into one readable string.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) bool {
	if !s.begin() {
		return false
	}
	defer s.end()

	res, err := s.auth.Register(ctx, in)
	if err != nil {
		if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Kind == domain.KindValidation {
			s.fail(err, apiErr.FlattenFields())
		} else {
			s.fail(err, loginMessage(err))
		}
		return false
	}

	sid := reqctx.SessionID(ctx)
	if err := s.tokens.Set(ctx, sid, res.Token); err != nil {
		s.log.Error().Err(err).Msg("token store failed after registration")
		s.fail(err, "could not establish a session, try again")
		return false
	}

	s.user = res.User
	return true
}

// Logout invalidates the token upstream on a best-effort basis, then
// unconditionally clears local session state. A backend failure never blocks
// a local logout.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("upstream logout failed; proceeding with local logout")
	}

	if sid := reqctx.SessionID(ctx); sid != "" {
		if err := s.tokens.Clear(ctx, sid); err != nil {
			s.log.Error().Err(err).Msg("token purge failed during logout")
		}
	}
	s.user = nil
}

func loginMessage(err error) string {
	if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Message != "" && !apiErr.Transient() {
		return apiErr.Message
	}
	return "service unavailable, try again later"
}
