package handlers

import (
	"enercash/internal/core/domain"
	"enercash/internal/core/services"
	"enercash/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetMyDashboard dispatches to the dashboard matching the caller's role
// @Summary My dashboard
// @Description Returns the customer or bank dashboard depending on role
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetMyDashboard(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role == string(domain.RoleBank) {
		return h.GetBankDashboard(c)
	}
	return h.GetCustomerDashboard(c)
}

// GetCustomerDashboard returns the customer view
// @Summary Customer dashboard
// @Description Latest bill, latest cashback and total reward
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/user [get]
func (h *DashboardHandler) GetCustomerDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetCustomerDashboard(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "", data)
}

// GetBankDashboard returns the bank aggregate view
// @Summary Bank dashboard
// @Description Customer count, total cashback and total savings
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/bank [get]
func (h *DashboardHandler) GetBankDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetBankDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "", data)
}
