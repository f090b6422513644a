package ports

import (
	"context"

	"github.com/studyoverflow/gateway/internal/core/domain"
)

// LoginInput carries the credentials forwarded verbatim to the upstream.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput carries a new account request.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// AuthResult is the upstream's answer to a successful login or registration.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthAPI is the upstream /auth resource family.
type AuthAPI interface {
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	// Me returns the current user for the session's bearer token.
	Me(ctx context.Context) (*domain.User, error)
	// Logout invalidates the bearer token upstream.
	Logout(ctx context.Context) error
}
