package handlers

import (
	"fmt"

	"enercash/internal/core/services"
	"enercash/internal/pkg/period"
	"enercash/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles bank report exports
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetMonthlyReport exports one period's cashback report
// @Summary Monthly cashback report
// @Description Export a period's cashback summary as XLSX or PDF
// @Tags Admin
// @Produce application/octet-stream
// @Security BearerAuth
// @Param period path string true "Period (YYYY-MM)"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Success 200 {file} binary
// @Failure 400 {object} response.Response
// @Router /admin/reports/cashbacks/{period} [get]
func (h *ReportHandler) GetMonthlyReport(c *fiber.Ctx) error {
	p := c.Params("period")
	if !period.IsValid(p) {
		return response.BadRequest(c, "Invalid period format, expected YYYY-MM")
	}

	report, err := h.reportService.BuildMonthlyReport(c.Context(), p)
	if err != nil {
		return response.InternalServerError(c, "Failed to build report")
	}

	switch c.Query("format", "xlsx") {
	case "pdf":
		data, err := h.reportService.RenderPDF(report)
		if err != nil {
			return response.InternalServerError(c, "Failed to render report")
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="cashbacks-%s.pdf"`, p))
		return c.Send(data)
	case "xlsx":
		data, err := h.reportService.RenderXLSX(report)
		if err != nil {
			return response.InternalServerError(c, "Failed to render report")
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="cashbacks-%s.xlsx"`, p))
		return c.Send(data)
	default:
		return response.BadRequest(c, "Unsupported format, use xlsx or pdf")
	}
}
