package upstream

import (
	"context"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
)

// AuthClient talks to the upstream /auth resource family.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type credentialsPayload struct {
	Name                 string `json:"name,omitempty"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

type authEnvelope struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (a *AuthClient) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	var env authEnvelope
	err := a.c.Post(ctx, "/auth/login", credentialsPayload{Email: in.Email, Password: in.Password}, &env)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: env.Token, User: env.User}, nil
}

func (a *AuthClient) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	payload := credentialsPayload{
		Name:                 in.Name,
		Email:                in.Email,
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
	}
	var env authEnvelope
	if err := a.c.Post(ctx, "/auth/register", payload, &env); err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: env.Token, User: env.User}, nil
}

func (a *AuthClient) Me(ctx context.Context) (*domain.User, error) {
	var env struct {
		User *domain.User `json:"user"`
	}
	if err := a.c.Get(ctx, "/auth/me", &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

func (a *AuthClient) Logout(ctx context.Context) error {
	return a.c.Post(ctx, "/auth/logout", nil, nil)
}
