package repositories

import (
	"context"

	"enercash/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// billRepository implements BillRepository interface
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

// Create creates a new bill
func (r *billRepository) Create(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

// GetByUser gets a user's bills sorted by period descending
func (r *billRepository) GetByUser(ctx context.Context, userID string) ([]*models.Bill, error) {
	var bills []*models.Bill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("period DESC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

// GetByUserPaged gets a page of a user's bills sorted by period descending
func (r *billRepository) GetByUserPaged(ctx context.Context, userID string, offset, limit int) ([]*models.Bill, int64, error) {
	var bills []*models.Bill
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Bill{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("period DESC").
		Offset(offset).
		Limit(limit).
		Find(&bills).Error
	if err != nil {
		return nil, 0, err
	}
	return bills, total, nil
}

// GetByPeriod gets the bill for (user, period)
func (r *billRepository) GetByPeriod(ctx context.Context, userID, period string) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND period = ?", userID, period).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// GetBefore gets bills with period strictly before the given period,
// most recent first. Lexicographic comparison on the period column is
// chronological because periods are canonical YYYY-MM strings.
func (r *billRepository) GetBefore(ctx context.Context, userID, period string, limit int) ([]*models.Bill, error) {
	var bills []*models.Bill
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND period < ?", userID, period).
		Order("period DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// ListUserIDsWithBill lists ids of users that submitted a bill for a period
func (r *billRepository) ListUserIDsWithBill(ctx context.Context, period string) ([]string, error) {
	var userIDs []string
	err := r.db.WithContext(ctx).Model(&models.Bill{}).
		Where("period = ?", period).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
