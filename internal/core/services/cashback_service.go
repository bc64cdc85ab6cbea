package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"enercash/internal/adapters/persistence/models"
	"enercash/internal/adapters/persistence/repositories"
	"enercash/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cashback service errors
var (
	ErrCashbackNotFound  = errors.New("cashback not found")
	ErrInvalidBaseline   = errors.New("stored baseline is zero or negative")
	ErrInvalidTransition = errors.New("invalid cashback status transition")
)

// keyedMutex serializes work per string key. The engine's check-compute-upsert
// sequence is not transactional, so concurrent calls for the same
// (user, period) must not interleave; calls for different keys may.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) lock(key string) *sync.Mutex {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m
}

// CashbackService orchestrates baseline retrieval, savings computation and
// the idempotent per-period cashback upsert
type CashbackService struct {
	billRepo        repositories.BillRepository
	baselineRepo    repositories.BaselineRepository
	cashbackRepo    repositories.CashbackRepository
	baselineService *BaselineService
	perKey          *keyedMutex
}

// NewCashbackService creates a new cashback service
func NewCashbackService(
	billRepo repositories.BillRepository,
	baselineRepo repositories.BaselineRepository,
	cashbackRepo repositories.CashbackRepository,
	baselineService *BaselineService,
) *CashbackService {
	return &CashbackService{
		billRepo:        billRepo,
		baselineRepo:    baselineRepo,
		cashbackRepo:    cashbackRepo,
		baselineService: baselineService,
		perKey:          newKeyedMutex(),
	}
}

// RatePerKwh returns the tiered cashback rate for a savings percentage.
// Boundaries are closed-open: exactly 5, 10 or 15 percent selects the
// higher tier.
func RatePerKwh(savingsPercentage float64) float64 {
	switch {
	case savingsPercentage >= 15:
		return 3.0
	case savingsPercentage >= 10:
		return 2.5
	case savingsPercentage >= 5:
		return 2.0
	default:
		return 1.5
	}
}

// CashbackAmount computes the reward for savingsKwh against baselineKwh.
// Non-positive savings always yield zero regardless of tier. The tier is
// selected from the raw savings ratio, not the rounded display percentage,
// so tier and display cannot drift apart at boundaries.
func CashbackAmount(savingsKwh, baselineKwh float64) float64 {
	if savingsKwh <= 0 {
		return 0
	}
	rate := RatePerKwh(savingsKwh / baselineKwh * 100)
	return math.Round(savingsKwh*rate*100) / 100
}

// ProcessCashback computes savings and reward for (user, period) and upserts
// the cashback record. A missing bill for the period is a defined empty
// outcome and returns (nil, nil); store failures propagate unchanged.
func (s *CashbackService) ProcessCashback(ctx context.Context, userID, period string) (*models.Cashback, error) {
	unlock := s.perKey.lock(userID + "|" + period)
	defer unlock.Unlock()

	// 1. The period's bill must exist before cashback can be computed.
	bill, err := s.billRepo.GetByPeriod(ctx, userID, period)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// 2. Reuse the frozen baseline, or compute and persist one.
	baseline, err := s.baselineRepo.GetByUserAndPeriod(ctx, userID, period)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		baselineKwh, cerr := s.baselineService.ComputeBaseline(ctx, userID, period)
		if cerr != nil {
			return nil, cerr
		}
		baseline = &models.Baseline{
			ID:           uuid.NewString(),
			UserID:       userID,
			Period:       period,
			BaselineKwh:  baselineKwh,
			CalculatedAt: time.Now(),
		}
		if err := s.baselineRepo.Create(ctx, baseline); err != nil {
			return nil, err
		}
	}

	// The default-400 floor makes a non-positive baseline impossible in
	// practice; a corrupted row must fail loudly, not divide by zero.
	if baseline.BaselineKwh <= 0 {
		return nil, ErrInvalidBaseline
	}

	// 3-5. Savings, display percentage and tiered reward.
	savingsKwh := baseline.BaselineKwh - bill.ConsumptionKwh
	savingsPercentage := math.Round(savingsKwh/baseline.BaselineKwh*1000) / 10
	cashbackAmount := CashbackAmount(savingsKwh, baseline.BaselineKwh)

	// 6. Idempotent upsert: one record per (user, period).
	existing, err := s.cashbackRepo.GetByUserAndPeriod(ctx, userID, period)
	if err == nil {
		if uerr := s.cashbackRepo.UpdateAmounts(ctx, existing.ID, savingsKwh, savingsPercentage, cashbackAmount); uerr != nil {
			return nil, uerr
		}
		existing.SavingsKwh = savingsKwh
		existing.SavingsPercentage = savingsPercentage
		existing.CashbackAmount = cashbackAmount
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status := domain.CashbackStatusPending
	if savingsKwh > 0 {
		status = domain.CashbackStatusApproved
	}
	cashback := &models.Cashback{
		ID:                uuid.NewString(),
		UserID:            userID,
		Period:            period,
		SavingsKwh:        savingsKwh,
		SavingsPercentage: savingsPercentage,
		CashbackAmount:    cashbackAmount,
		Status:            status,
		CreatedAt:         time.Now(),
	}
	if err := s.cashbackRepo.Create(ctx, cashback); err != nil {
		return nil, err
	}
	return cashback, nil
}

// ListCashbacks returns a user's cashback history, newest first
func (s *CashbackService) ListCashbacks(ctx context.Context, userID string) ([]*models.Cashback, error) {
	return s.cashbackRepo.GetByUser(ctx, userID)
}

// Approve transitions a pending cashback to approved. Bank operator action.
func (s *CashbackService) Approve(ctx context.Context, id string) (*models.Cashback, error) {
	return s.transition(ctx, id, domain.CashbackStatusPending, domain.CashbackStatusApproved)
}

// MarkPaid transitions an approved cashback to paid. Bank operator action.
func (s *CashbackService) MarkPaid(ctx context.Context, id string) (*models.Cashback, error) {
	return s.transition(ctx, id, domain.CashbackStatusApproved, domain.CashbackStatusPaid)
}

func (s *CashbackService) transition(ctx context.Context, id, from, to string) (*models.Cashback, error) {
	cashback, err := s.cashbackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCashbackNotFound
		}
		return nil, err
	}
	if cashback.Status != from {
		return nil, ErrInvalidTransition
	}
	if err := s.cashbackRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	cashback.Status = to
	return cashback, nil
}
