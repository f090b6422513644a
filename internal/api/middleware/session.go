package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyoverflow/gateway/internal/core/reqctx"
	"github.com/studyoverflow/gateway/internal/infrastructure/session"
)

// Session resolves the signed session cookie into a session id on the request
// context, minting a fresh session for first-time visitors so that a later
// login has somewhere to put its token. It also records the path being
// served, which the upstream client consults for its redirect decision.
func Session(codec *session.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
				sid, _ = codec.Parse(cookie.Value)
			}

			if sid == "" {
				fresh, signed, err := codec.Mint()
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "could not establish session")
				}
				sid = fresh
				c.SetCookie(&http.Cookie{
					Name:     session.CookieName,
					Value:    signed,
					Path:     "/",
					MaxAge:   int(codec.TTL().Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := reqctx.WithSessionID(c.Request().Context(), sid)
			ctx = reqctx.WithPath(ctx, c.Request().URL.Path)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
