package repositories

import (
	"context"

	"enercash/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// baselineRepository implements BaselineRepository interface
type baselineRepository struct {
	db *gorm.DB
}

// NewBaselineRepository creates a new baseline repository
func NewBaselineRepository(db *gorm.DB) BaselineRepository {
	return &baselineRepository{db: db}
}

// Create creates a new baseline
func (r *baselineRepository) Create(ctx context.Context, baseline *models.Baseline) error {
	return r.db.WithContext(ctx).Create(baseline).Error
}

// GetByUserAndPeriod gets the baseline for (user, period)
func (r *baselineRepository) GetByUserAndPeriod(ctx context.Context, userID, period string) (*models.Baseline, error) {
	var baseline models.Baseline
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND period = ?", userID, period).
		First(&baseline).Error
	if err != nil {
		return nil, err
	}
	return &baseline, nil
}
