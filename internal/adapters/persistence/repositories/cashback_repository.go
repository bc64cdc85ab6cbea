package repositories

import (
	"context"

	"enercash/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// cashbackRepository implements CashbackRepository interface
type cashbackRepository struct {
	db *gorm.DB
}

// NewCashbackRepository creates a new cashback repository
func NewCashbackRepository(db *gorm.DB) CashbackRepository {
	return &cashbackRepository{db: db}
}

// Create creates a new cashback record
func (r *cashbackRepository) Create(ctx context.Context, cashback *models.Cashback) error {
	return r.db.WithContext(ctx).Create(cashback).Error
}

// GetByID gets a cashback by ID
func (r *cashbackRepository) GetByID(ctx context.Context, id string) (*models.Cashback, error) {
	var cashback models.Cashback
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cashback).Error
	if err != nil {
		return nil, err
	}
	return &cashback, nil
}

// GetByUserAndPeriod gets the cashback for (user, period)
func (r *cashbackRepository) GetByUserAndPeriod(ctx context.Context, userID, period string) (*models.Cashback, error) {
	var cashback models.Cashback
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND period = ?", userID, period).
		First(&cashback).Error
	if err != nil {
		return nil, err
	}
	return &cashback, nil
}

// GetByUser gets a user's cashbacks newest first
func (r *cashbackRepository) GetByUser(ctx context.Context, userID string) ([]*models.Cashback, error) {
	var cashbacks []*models.Cashback
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cashbacks).Error
	if err != nil {
		return nil, err
	}
	return cashbacks, nil
}

// GetByPeriod gets all cashbacks for a period
func (r *cashbackRepository) GetByPeriod(ctx context.Context, period string) ([]*models.Cashback, error) {
	var cashbacks []*models.Cashback
	err := r.db.WithContext(ctx).
		Where("period = ?", period).
		Order("created_at ASC").
		Find(&cashbacks).Error
	if err != nil {
		return nil, err
	}
	return cashbacks, nil
}

// ListRecent lists the most recently created cashbacks across all users
func (r *cashbackRepository) ListRecent(ctx context.Context, limit int) ([]*models.Cashback, error) {
	var cashbacks []*models.Cashback
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&cashbacks).Error
	if err != nil {
		return nil, err
	}
	return cashbacks, nil
}

// UpdateAmounts rewrites the monetary fields of an existing record.
// Status is deliberately not in the update set.
func (r *cashbackRepository) UpdateAmounts(ctx context.Context, id string, savingsKwh, savingsPercentage, cashbackAmount float64) error {
	return r.db.WithContext(ctx).Model(&models.Cashback{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"savings_kwh":        savingsKwh,
			"savings_percentage": savingsPercentage,
			"cashback_amount":    cashbackAmount,
		}).Error
}

// UpdateStatus sets the status of a cashback record
func (r *cashbackRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&models.Cashback{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// SumAmountByStatuses totals cashback_amount over the given statuses
func (r *cashbackRepository) SumAmountByStatuses(ctx context.Context, statuses ...string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Cashback{}).
		Where("status IN ?", statuses).
		Select("COALESCE(SUM(cashback_amount), 0)").
		Scan(&total).Error
	return total, err
}

// SumAmountByUserAndStatuses totals one user's cashback_amount over the given statuses
func (r *cashbackRepository) SumAmountByUserAndStatuses(ctx context.Context, userID string, statuses ...string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Cashback{}).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Select("COALESCE(SUM(cashback_amount), 0)").
		Scan(&total).Error
	return total, err
}

// SumSavings totals savings_kwh across all cashback records
func (r *cashbackRepository) SumSavings(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Cashback{}).
		Select("COALESCE(SUM(savings_kwh), 0)").
		Scan(&total).Error
	return total, err
}
