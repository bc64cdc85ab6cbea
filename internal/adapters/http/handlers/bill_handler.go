package handlers

import (
	"errors"
	"time"

	"enercash/internal/core/services"
	"enercash/internal/pkg/pagination"
	"enercash/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BillHandler handles bill endpoints
type BillHandler struct {
	billService *services.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *services.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// SubmitBillRequest represents bill submission request body
type SubmitBillRequest struct {
	Period         string  `json:"period"`
	ConsumptionKwh float64 `json:"consumption_kwh"`
	AmountPaid     float64 `json:"amount_paid"`
	BillDate       string  `json:"bill_date"` // YYYY-MM-DD, optional
}

// Submit handles bill submission
// @Summary Submit a bill
// @Description Store a new monthly bill and compute cashback for its period
// @Tags Bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitBillRequest true "Bill data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bills [post]
func (h *BillHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SubmitBillRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.SubmitBillInput{
		Period:         req.Period,
		ConsumptionKwh: req.ConsumptionKwh,
		AmountPaid:     req.AmountPaid,
	}
	if req.BillDate != "" {
		billDate, err := time.Parse("2006-01-02", req.BillDate)
		if err != nil {
			return response.BadRequest(c, "Invalid bill date, expected YYYY-MM-DD")
		}
		input.BillDate = billDate
	}

	result, err := h.billService.SubmitBill(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPeriod):
			return response.BadRequest(c, "Invalid period format, expected YYYY-MM")
		case errors.Is(err, services.ErrInvalidConsumption):
			return response.BadRequest(c, "Consumption must be positive")
		case errors.Is(err, services.ErrBillAlreadyExists):
			return response.Conflict(c, "A bill already exists for this period")
		default:
			return response.InternalServerError(c, "Failed to submit bill")
		}
	}

	return response.Created(c, "Bill submitted successfully", result)
}

// List handles bill history
// @Summary My bills
// @Description Returns the user's bill history, most recent period first
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	bills, total, err := h.billService.ListBills(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load bills")
	}

	return response.Success(c, "", pagination.NewResponse(bills, params, total))
}
