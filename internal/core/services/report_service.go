package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"enercash/internal/adapters/persistence/models"
	"enercash/internal/adapters/persistence/repositories"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportService renders monthly cashback reports for bank operators
type ReportService struct {
	cashbackRepo repositories.CashbackRepository
}

// NewReportService creates a new report service
func NewReportService(cashbackRepo repositories.CashbackRepository) *ReportService {
	return &ReportService{cashbackRepo: cashbackRepo}
}

// MonthlyReport holds one period's cashback rows plus totals
type MonthlyReport struct {
	Period          string
	GeneratedAt     time.Time
	TotalSavingsKwh float64
	TotalAmount     float64
	Rows            []*models.Cashback
}

// BuildMonthlyReport collects a period's cashbacks and totals
func (s *ReportService) BuildMonthlyReport(ctx context.Context, p string) (*MonthlyReport, error) {
	rows, err := s.cashbackRepo.GetByPeriod(ctx, p)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		Period:      p,
		GeneratedAt: time.Now(),
		Rows:        rows,
	}
	for _, row := range rows {
		report.TotalSavingsKwh += row.SavingsKwh
		report.TotalAmount += row.CashbackAmount
	}
	return report, nil
}

// RenderXLSX renders a monthly report as an XLSX workbook
func (s *ReportService) RenderXLSX(report *MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	rowsSheet := "cashbacks"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(rowsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Energy Cashback Report")
	_ = f.SetCellValue(summarySheet, "A3", "Period")
	_ = f.SetCellValue(summarySheet, "B3", report.Period)
	_ = f.SetCellValue(summarySheet, "A4", "Generated")
	_ = f.SetCellValue(summarySheet, "B4", report.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A5", "Records")
	_ = f.SetCellValue(summarySheet, "B5", len(report.Rows))
	_ = f.SetCellValue(summarySheet, "A6", "Total Savings (kWh)")
	_ = f.SetCellValue(summarySheet, "B6", report.TotalSavingsKwh)
	_ = f.SetCellValue(summarySheet, "A7", "Total Cashback")
	_ = f.SetCellValue(summarySheet, "B7", report.TotalAmount)

	_ = f.SetCellValue(rowsSheet, "A1", "User")
	_ = f.SetCellValue(rowsSheet, "B1", "Savings (kWh)")
	_ = f.SetCellValue(rowsSheet, "C1", "Savings (%)")
	_ = f.SetCellValue(rowsSheet, "D1", "Amount")
	_ = f.SetCellValue(rowsSheet, "E1", "Status")
	for i, row := range report.Rows {
		r := i + 2
		_ = f.SetCellValue(rowsSheet, fmt.Sprintf("A%d", r), row.UserID)
		_ = f.SetCellValue(rowsSheet, fmt.Sprintf("B%d", r), row.SavingsKwh)
		_ = f.SetCellValue(rowsSheet, fmt.Sprintf("C%d", r), row.SavingsPercentage)
		_ = f.SetCellValue(rowsSheet, fmt.Sprintf("D%d", r), row.CashbackAmount)
		_ = f.SetCellValue(rowsSheet, fmt.Sprintf("E%d", r), row.Status)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPDF renders a monthly report as a PDF document
func (s *ReportService) RenderPDF(report *MonthlyReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Energy Cashback Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", report.Period))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Records: %d", len(report.Rows)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Savings (kWh): %.1f", report.TotalSavingsKwh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Cashback: %.2f", report.TotalAmount))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "User", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Savings (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Savings (%)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Rows {
		pdf.CellFormat(60, 6, row.UserID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", row.SavingsKwh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.1f", row.SavingsPercentage), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.CashbackAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, row.Status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
