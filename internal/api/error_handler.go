package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/studyoverflow/gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for the JSON surface.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Redirects page requests to /login when an upstream call flagged the
//     session as unauthenticated mid-render.
//   - Maps typed upstream errors to their HTTP statuses on the JSON surface.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.RedirectToLogin && !isJSONRoute(c) {
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code, msg := resolveError(err, log, c)
		if isJSONRoute(c) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}
		_ = c.Render(code, "error", map[string]any{
			"Title":   "Something went wrong",
			"Status":  code,
			"Message": msg,
		})
	}
}

func isJSONRoute(c echo.Context) bool {
	return strings.HasPrefix(c.Path(), "/api/") || strings.HasPrefix(c.Request().URL.Path, "/api/")
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Typed upstream errors keep their status; transport failures map to 502.
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			return http.StatusBadGateway, "upstream unavailable"
		}
		return apiErr.Status, apiErr.Message
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
