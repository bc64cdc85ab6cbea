package handlers

import (
	"errors"

	"enercash/internal/core/services"
	"enercash/internal/pkg/period"
	"enercash/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CashbackHandler handles cashback endpoints
type CashbackHandler struct {
	cashbackService *services.CashbackService
}

// NewCashbackHandler creates a new cashback handler
func NewCashbackHandler(cashbackService *services.CashbackService) *CashbackHandler {
	return &CashbackHandler{cashbackService: cashbackService}
}

// List handles cashback history
// @Summary My cashbacks
// @Description Returns the user's cashback history, newest first
// @Tags Cashbacks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /cashbacks [get]
func (h *CashbackHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	cashbacks, err := h.cashbackService.ListCashbacks(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load cashbacks")
	}

	return response.Success(c, "", cashbacks)
}

// ProcessRequest represents a manual cashback processing request
type ProcessRequest struct {
	Period string `json:"period"`
}

// Process handles on-demand cashback computation for a period
// @Summary Process cashback
// @Description Compute (or recompute) cashback for one of my billing periods
// @Tags Cashbacks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ProcessRequest true "Target period"
// @Success 200 {object} response.Response
// @Success 204 "No bill for the period"
// @Failure 400 {object} response.Response
// @Router /cashbacks/process [post]
func (h *CashbackHandler) Process(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if !period.IsValid(req.Period) {
		return response.BadRequest(c, "Invalid period format, expected YYYY-MM")
	}

	cashback, err := h.cashbackService.ProcessCashback(c.Context(), userID, req.Period)
	if err != nil {
		return response.InternalServerError(c, "Failed to process cashback")
	}
	if cashback == nil {
		// No bill for the period yet; nothing to compute.
		return response.NoContent(c)
	}

	return response.Success(c, "Cashback processed", cashback)
}

// Approve handles the bank approval action
// @Summary Approve cashback
// @Description Transition a pending cashback to approved
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cashback ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/cashbacks/{id}/approve [put]
func (h *CashbackHandler) Approve(c *fiber.Ctx) error {
	cashback, err := h.cashbackService.Approve(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCashbackNotFound):
			return response.NotFound(c, "Cashback not found")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.Conflict(c, "Only pending cashbacks can be approved")
		default:
			return response.InternalServerError(c, "Failed to approve cashback")
		}
	}

	return response.Success(c, "Cashback approved", cashback)
}

// Pay handles the bank payout action
// @Summary Mark cashback paid
// @Description Transition an approved cashback to paid
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cashback ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/cashbacks/{id}/pay [put]
func (h *CashbackHandler) Pay(c *fiber.Ctx) error {
	cashback, err := h.cashbackService.MarkPaid(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCashbackNotFound):
			return response.NotFound(c, "Cashback not found")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.Conflict(c, "Only approved cashbacks can be paid")
		default:
			return response.InternalServerError(c, "Failed to mark cashback paid")
		}
	}

	return response.Success(c, "Cashback marked paid", cashback)
}
