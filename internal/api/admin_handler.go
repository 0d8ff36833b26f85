package api

import (
	"net/http"
	"time"

	"confidencevoice/internal/service"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Summary --> GET /api/admin/summary
func (h *AdminHandler) Summary(c echo.Context) error {
	summary, err := h.adminService.Summary(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, "", echo.Map{"summary": summary})
}

// Health --> GET /api/health
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "confidencevoice",
		"time":    time.Now().Format(time.RFC3339),
	})
}
