package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/reqctx"
	"github.com/studyoverflow/gateway/internal/notify"
)

// currentUser returns the user the guard middleware resolved, or nil.
func currentUser(c echo.Context) *domain.User {
	return reqctx.User(c.Request().Context())
}

// sessionID returns the session id the session middleware established.
func sessionID(c echo.Context) string {
	return reqctx.SessionID(c.Request().Context())
}

// pageData assembles the fields every page template expects: the title, the
// resolved user, and the session's pending toasts (drained — a toast is shown
// on exactly one render).
func pageData(c echo.Context, bus *notify.Bus, title string) map[string]any {
	return map[string]any{
		"Title":  title,
		"User":   currentUser(c),
		"Toasts": bus.Drain(sessionID(c)),
	}
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(400, "invalid "+name)
	}
	return id, nil
}
