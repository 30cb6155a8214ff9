package handler

import (
	"go-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// Get returns the admin overview for a preset range
// Query params: range (7d|14d|1m|6m|all, default 7d)
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	selected := service.ParseDashboardRange(c.Query("range", "7d"))

	dashboard, err := h.service.GetDashboard(selected)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dashboard)
}
