package services

import (
	"context"
	"math"

	"enercash/internal/adapters/persistence/repositories"
	"enercash/internal/core/domain"
)

// BaselineService computes reference consumption values from bill history
type BaselineService struct {
	billRepo repositories.BillRepository
}

// NewBaselineService creates a new baseline service
func NewBaselineService(billRepo repositories.BillRepository) *BaselineService {
	return &BaselineService{billRepo: billRepo}
}

// ComputeBaseline returns the reference consumption in kWh for a user
// entering targetPeriod. Only bills from strictly earlier periods count; the
// target period's own bill never feeds its baseline.
//
// With no history the result is the fixed default of 400 kWh. Otherwise the
// most recent bills (at most 6) are averaged with linearly decreasing
// weights, newest month heaviest, and the result is rounded to a whole kWh.
// Weighting recent months more heavily tracks seasonal and behavioral drift
// while a single anomalous month cannot dominate.
func (s *BaselineService) ComputeBaseline(ctx context.Context, userID, targetPeriod string) (float64, error) {
	bills, err := s.billRepo.GetBefore(ctx, userID, targetPeriod, domain.BaselineWindowMonths)
	if err != nil {
		return 0, err
	}

	if len(bills) == 0 {
		return domain.DefaultBaselineKwh, nil
	}

	// Bills arrive sorted by period descending, so index 0 is the most
	// recent and gets the highest weight.
	var weightedSum, totalWeight float64
	for i, bill := range bills {
		weight := float64(len(bills) - i)
		weightedSum += bill.ConsumptionKwh * weight
		totalWeight += weight
	}

	return math.Round(weightedSum / totalWeight), nil
}
