package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/reqctx"
	"github.com/studyoverflow/gateway/internal/core/service"
	"github.com/studyoverflow/gateway/internal/notify"
)

type stubAuthAPI struct {
	res *ports.AuthResult
	err error
}

func (s *stubAuthAPI) Login(context.Context, ports.LoginInput) (*ports.AuthResult, error) {
	return s.res, s.err
}

func (s *stubAuthAPI) Register(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
	return s.res, s.err
}

func (s *stubAuthAPI) Me(context.Context) (*domain.User, error) { return nil, s.err }
func (s *stubAuthAPI) Logout(context.Context) error             { return nil }

type mapTokenStore struct {
	tokens map[string]string
}

func (m *mapTokenStore) Set(_ context.Context, sid, token string) error {
	m.tokens[sid] = token
	return nil
}

func (m *mapTokenStore) Get(_ context.Context, sid string) (string, error) {
	return m.tokens[sid], nil
}

func (m *mapTokenStore) Clear(_ context.Context, sid string) error {
	delete(m.tokens, sid)
	return nil
}

func loginContext(t *testing.T, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req = req.WithContext(reqctx.WithSessionID(req.Context(), "sid-1"))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogin_TokenOnlyResponse(t *testing.T) {
	// The upstream may answer with the token alone; the welcome toast must
	// not assume a user object.
	auth := &stubAuthAPI{res: &ports.AuthResult{Token: "tok-1"}}
	tokens := &mapTokenStore{tokens: map[string]string{}}
	bus := notify.NewBus()
	hooks := service.NewFactory(service.FactoryDeps{Auth: auth, Tokens: tokens, Log: zerolog.Nop()})
	h := NewAuthHandler(hooks, bus)

	c, rec := loginContext(t, url.Values{
		"email":    {"ada@example.com"},
		"password": {"hunter22"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if tokens.tokens["sid-1"] != "tok-1" {
		t.Fatalf("token not stored for the session")
	}

	toasts := bus.List("sid-1")
	if len(toasts) != 1 || toasts[0].Message != "welcome back" {
		t.Fatalf("unexpected toasts %+v", toasts)
	}
}

func TestLogin_NamedUserGetsPersonalWelcome(t *testing.T) {
	auth := &stubAuthAPI{res: &ports.AuthResult{Token: "tok-1", User: &domain.User{ID: 1, Name: "Ada"}}}
	tokens := &mapTokenStore{tokens: map[string]string{}}
	bus := notify.NewBus()
	hooks := service.NewFactory(service.FactoryDeps{Auth: auth, Tokens: tokens, Log: zerolog.Nop()})
	h := NewAuthHandler(hooks, bus)

	c, rec := loginContext(t, url.Values{
		"email":    {"ada@example.com"},
		"password": {"hunter22"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	toasts := bus.List("sid-1")
	if len(toasts) != 1 || toasts[0].Message != "welcome back, Ada" {
		t.Fatalf("unexpected toasts %+v", toasts)
	}
}
