package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/service"
	"github.com/studyoverflow/gateway/internal/notify"
)

// AuthHandler serves the login/register/logout flow.
type AuthHandler struct {
	hooks *service.Factory
	bus   *notify.Bus
}

func NewAuthHandler(hooks *service.Factory, bus *notify.Bus) *AuthHandler {
	return &AuthHandler{hooks: hooks, bus: bus}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Name                 string `form:"name" validate:"required,min=2"`
	Email                string `form:"email" validate:"required,email"`
	Password             string `form:"password" validate:"required,min=8"`
	PasswordConfirmation string `form:"password_confirmation" validate:"required,eqfield=Password"`
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	if currentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "login", pageData(c, h.bus, "Log in"))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	data := pageData(c, h.bus, "Log in")
	data["Email"] = form.Email

	if err := c.Validate(&form); err != nil {
		data["Error"] = err.Error()
		return c.Render(http.StatusUnprocessableEntity, "login", data)
	}

	auth := h.hooks.Auth()
	if !auth.Login(c.Request().Context(), ports.LoginInput{Email: form.Email, Password: form.Password}) {
		data["Error"] = auth.Err()
		return c.Render(http.StatusUnauthorized, "login", data)
	}

	// The login response may carry the token alone.
	welcome := "welcome back"
	if u := auth.User(); u != nil && u.Name != "" {
		welcome = "welcome back, " + u.Name
	}
	h.bus.Show(sessionID(c), welcome, ports.ToastSuccess, 0)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	if currentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "register", pageData(c, h.bus, "Register"))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	data := pageData(c, h.bus, "Register")
	data["Name"] = form.Name
	data["Email"] = form.Email

	if err := c.Validate(&form); err != nil {
		data["Error"] = err.Error()
		return c.Render(http.StatusUnprocessableEntity, "register", data)
	}

	auth := h.hooks.Auth()
	ok := auth.Register(c.Request().Context(), ports.RegisterInput{
		Name:                 form.Name,
		Email:                form.Email,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
	})
	if !ok {
		data["Error"] = auth.Err()
		return c.Render(http.StatusUnprocessableEntity, "register", data)
	}

	h.bus.Show(sessionID(c), "account created", ports.ToastSuccess, 0)
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout tears the session down locally whatever the upstream says.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.hooks.Auth().Logout(c.Request().Context())
	h.bus.ClearAll(sessionID(c))
	return c.Redirect(http.StatusSeeOther, "/")
}
