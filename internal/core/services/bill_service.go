package services

import (
	"context"
	"errors"
	"time"

	"enercash/internal/adapters/persistence/models"
	"enercash/internal/adapters/persistence/repositories"
	"enercash/internal/pkg/period"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bill service errors
var (
	ErrInvalidPeriod      = errors.New("invalid period format, expected YYYY-MM")
	ErrInvalidConsumption = errors.New("consumption must be positive")
	ErrBillAlreadyExists  = errors.New("a bill already exists for this period")
)

// BillService handles bill submission and history
type BillService struct {
	billRepo        repositories.BillRepository
	cashbackService *CashbackService
}

// NewBillService creates a new bill service
func NewBillService(billRepo repositories.BillRepository, cashbackService *CashbackService) *BillService {
	return &BillService{
		billRepo:        billRepo,
		cashbackService: cashbackService,
	}
}

// SubmitBillInput represents bill submission input
type SubmitBillInput struct {
	Period         string    `json:"period"`
	ConsumptionKwh float64   `json:"consumption_kwh"`
	AmountPaid     float64   `json:"amount_paid"`
	BillDate       time.Time `json:"bill_date"`
}

// SubmitBillOutput carries the created bill and the cashback the engine
// computed for it right away
type SubmitBillOutput struct {
	Bill     *models.Bill     `json:"bill"`
	Cashback *models.Cashback `json:"cashback,omitempty"`
}

// SubmitBill validates and stores a new bill, then immediately runs the
// cashback engine for its period. Bills are immutable and unique per
// (user, period); a duplicate submission is rejected.
func (s *BillService) SubmitBill(ctx context.Context, userID string, input *SubmitBillInput) (*SubmitBillOutput, error) {
	if !period.IsValid(input.Period) {
		return nil, ErrInvalidPeriod
	}
	if input.ConsumptionKwh <= 0 {
		return nil, ErrInvalidConsumption
	}

	_, err := s.billRepo.GetByPeriod(ctx, userID, input.Period)
	if err == nil {
		return nil, ErrBillAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	billDate := input.BillDate
	if billDate.IsZero() {
		billDate = time.Now()
	}

	bill := &models.Bill{
		ID:             uuid.NewString(),
		UserID:         userID,
		Period:         input.Period,
		ConsumptionKwh: input.ConsumptionKwh,
		AmountPaid:     input.AmountPaid,
		BillDate:       billDate,
		CreatedAt:      time.Now(),
	}
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	cashback, err := s.cashbackService.ProcessCashback(ctx, userID, input.Period)
	if err != nil {
		return nil, err
	}

	return &SubmitBillOutput{Bill: bill, Cashback: cashback}, nil
}

// ListBills returns a page of the user's bills, most recent period first
func (s *BillService) ListBills(ctx context.Context, userID string, offset, limit int) ([]*models.Bill, int64, error) {
	return s.billRepo.GetByUserPaged(ctx, userID, offset, limit)
}
