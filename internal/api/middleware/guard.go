package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studyoverflow/gateway/internal/api/metrics"
	"github.com/studyoverflow/gateway/internal/core/reqctx"
	"github.com/studyoverflow/gateway/internal/core/service"
)

// LoadUser resolves the session's current user through the auth hook and
// stashes it on the request context. Anonymous and unresolved sessions carry
// no user; a session whose token the probe found stale sends the browser to
// the login page, except on the public entry pages and the JSON surface
// (there the 401 envelope from RequireUserAPI applies instead).
func LoadUser(hooks *service.Factory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			auth := hooks.Auth()
			if user := auth.CurrentUser(ctx); user != nil {
				c.SetRequest(c.Request().WithContext(reqctx.WithUser(ctx, user)))
			} else if auth.RedirectToLogin() && !strings.HasPrefix(c.Request().URL.Path, "/api/") {
				metrics.LoginRedirectsTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// RequireUser is the route guard for authenticated pages: anonymous
// navigation redirects to the login page.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if reqctx.User(c.Request().Context()) == nil {
				metrics.LoginRedirectsTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// RequireRoles guards role-restricted pages: anonymous users go to the login
// page, authenticated users whose role is not permitted go home.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := reqctx.User(c.Request().Context())
			if user == nil {
				metrics.LoginRedirectsTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			if _, ok := allowed[user.Role]; !ok {
				metrics.LoginRedirectsTotal.WithLabelValues("forbidden").Inc()
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}

// RequireUserAPI is the JSON-surface variant of RequireUser: the interactive
// controls expect an envelope, not a redirect.
func RequireUserAPI() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if reqctx.User(c.Request().Context()) == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			return next(c)
		}
	}
}
