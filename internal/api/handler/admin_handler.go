package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/service"
	"github.com/studyoverflow/gateway/internal/notify"
)

// AdminHandler renders the moderation pages. Routes are mounted behind the
// admin role guard; the upstream enforces the same rule again.
type AdminHandler struct {
	hooks *service.Factory
	bus   *notify.Bus
}

func NewAdminHandler(hooks *service.Factory, bus *notify.Bus) *AdminHandler {
	return &AdminHandler{hooks: hooks, bus: bus}
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	data := pageData(c, h.bus, "Dashboard")

	admin := h.hooks.Admin()
	stats, ok := admin.Stats(c.Request().Context())
	if !ok {
		data["LoadError"] = admin.Err()
		return c.Render(http.StatusOK, "admin_dashboard", data)
	}
	data["Stats"] = stats
	return c.Render(http.StatusOK, "admin_dashboard", data)
}

func (h *AdminHandler) Users(c echo.Context) error {
	data := pageData(c, h.bus, "Users")
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	admin := h.hooks.Admin()
	users, meta, ok := admin.Users(c.Request().Context(), page)
	if !ok {
		data["Error"] = admin.Err()
		return c.Render(http.StatusOK, "admin_users", data)
	}
	data["Users"] = users
	data["Meta"] = meta
	return c.Render(http.StatusOK, "admin_users", data)
}

func (h *AdminHandler) SetUserRole(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	admin := h.hooks.Admin()
	if admin.SetUserRole(c.Request().Context(), id, c.FormValue("role")) {
		h.bus.Show(sessionID(c), "role updated", ports.ToastSuccess, 0)
	} else {
		h.bus.Show(sessionID(c), admin.Err(), ports.ToastError, 0)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	admin := h.hooks.Admin()
	if admin.DeleteUser(c.Request().Context(), id) {
		h.bus.Show(sessionID(c), "user deleted", ports.ToastSuccess, 0)
	} else {
		h.bus.Show(sessionID(c), admin.Err(), ports.ToastError, 0)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/users")
}

func (h *AdminHandler) Reports(c echo.Context) error {
	data := pageData(c, h.bus, "Reports")

	admin := h.hooks.Admin()
	reports, ok := admin.Reports(c.Request().Context(), c.QueryParam("status"))
	if !ok {
		data["Error"] = admin.Err()
		return c.Render(http.StatusOK, "admin_reports", data)
	}
	data["Reports"] = reports
	return c.Render(http.StatusOK, "admin_reports", data)
}

func (h *AdminHandler) ResolveReport(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	admin := h.hooks.Admin()
	if admin.ResolveReport(c.Request().Context(), id, c.FormValue("status")) {
		h.bus.Show(sessionID(c), "report resolved", ports.ToastSuccess, 0)
	} else {
		h.bus.Show(sessionID(c), admin.Err(), ports.ToastError, 0)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/reports")
}

func (h *AdminHandler) Categories(c echo.Context) error {
	data := pageData(c, h.bus, "Manage categories")

	taxonomy := h.hooks.Taxonomy()
	categories, ok := taxonomy.Categories(c.Request().Context())
	if !ok {
		data["Error"] = taxonomy.Err()
		return c.Render(http.StatusOK, "admin_categories", data)
	}
	data["Categories"] = categories
	return c.Render(http.StatusOK, "admin_categories", data)
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	admin := h.hooks.Admin()
	if admin.CreateCategory(c.Request().Context(), c.FormValue("name"), c.FormValue("description")) {
		h.bus.Show(sessionID(c), "category created", ports.ToastSuccess, 0)
	} else {
		h.bus.Show(sessionID(c), admin.Err(), ports.ToastError, 0)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/categories")
}

func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	admin := h.hooks.Admin()
	if admin.UpdateCategory(c.Request().Context(), id, c.FormValue("name"), c.FormValue("description")) {
		h.bus.Show(sessionID(c), "category updated", ports.ToastSuccess, 0)
	} else {
		h.bus.Show(sessionID(c), admin.Err(), ports.ToastError, 0)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/categories")
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	admin := h.hooks.Admin()
	if admin.DeleteCategory(c.Request().Context(), id) {
		h.bus.Show(sessionID(c), "category deleted", ports.ToastSuccess, 0)
	} else {
		h.bus.Show(sessionID(c), admin.Err(), ports.ToastError, 0)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/categories")
}

func (h *AdminHandler) Tags(c echo.Context) error {
	data := pageData(c, h.bus, "Manage tags")

	taxonomy := h.hooks.Taxonomy()
	tags, ok := taxonomy.Tags(c.Request().Context())
	if !ok {
		data["Error"] = taxonomy.Err()
		return c.Render(http.StatusOK, "admin_tags", data)
	}
	data["Tags"] = tags
	return c.Render(http.StatusOK, "admin_tags", data)
}

func (h *AdminHandler) CreateTag(c echo.Context) error {
	admin := h.hooks.Admin()
	if admin.CreateTag(c.Request().Context(), c.FormValue("name")) {
		h.bus.Show(sessionID(c), "tag created", ports.ToastSuccess, 0)
	} else {
		h.bus.Show(sessionID(c), admin.Err(), ports.ToastError, 0)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/tags")
}

func (h *AdminHandler) DeleteTag(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	admin := h.hooks.Admin()
	if admin.DeleteTag(c.Request().Context(), id) {
		h.bus.Show(sessionID(c), "tag deleted", ports.ToastSuccess, 0)
	} else {
		h.bus.Show(sessionID(c), admin.Err(), ports.ToastError, 0)
	}
	return c.Redirect(http.StatusSeeOther, "/admin/tags")
}
