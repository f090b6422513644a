package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyoverflow/gateway/internal/core/service"
	"github.com/studyoverflow/gateway/internal/notify"
)

// AccountHandler serves the logged-in user's own pages.
type AccountHandler struct {
	hooks *service.Factory
	bus   *notify.Bus
}

func NewAccountHandler(hooks *service.Factory, bus *notify.Bus) *AccountHandler {
	return &AccountHandler{hooks: hooks, bus: bus}
}

func (h *AccountHandler) Profile(c echo.Context) error {
	return c.Render(http.StatusOK, "profile", pageData(c, h.bus, "Profile"))
}

func (h *AccountHandler) Favorites(c echo.Context) error {
	data := pageData(c, h.bus, "Favorites")
	favorites := h.hooks.Favorites()
	favs, ok := favorites.List(c.Request().Context())
	if !ok {
		data["LoadError"] = favorites.Err()
		return c.Render(http.StatusOK, "favorites", data)
	}
	data["Favorites"] = favs
	return c.Render(http.StatusOK, "favorites", data)
}
