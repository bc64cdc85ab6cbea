package repositories

import (
	"context"

	"enercash/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, role string) ([]*models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// BillRepository defines bill repository interface.
// Bills are immutable; there is no update or delete.
type BillRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	// GetByUser returns the user's bills sorted by period descending.
	GetByUser(ctx context.Context, userID string) ([]*models.Bill, error)
	GetByUserPaged(ctx context.Context, userID string, offset, limit int) ([]*models.Bill, int64, error)
	// GetByPeriod returns the bill for (user, period) or gorm.ErrRecordNotFound.
	GetByPeriod(ctx context.Context, userID, period string) (*models.Bill, error)
	// GetBefore returns the user's bills with period strictly less than the
	// given period, sorted by period descending, at most limit rows.
	GetBefore(ctx context.Context, userID, period string, limit int) ([]*models.Bill, error)
	// ListUserIDsWithBill returns the ids of users that submitted a bill for
	// the given period.
	ListUserIDsWithBill(ctx context.Context, period string) ([]string, error)
}

// BaselineRepository defines baseline repository interface.
// Baselines are computed once and frozen; there is no update.
type BaselineRepository interface {
	Create(ctx context.Context, baseline *models.Baseline) error
	GetByUserAndPeriod(ctx context.Context, userID, period string) (*models.Baseline, error)
}

// CashbackRepository defines cashback repository interface
type CashbackRepository interface {
	Create(ctx context.Context, cashback *models.Cashback) error
	GetByID(ctx context.Context, id string) (*models.Cashback, error)
	GetByUserAndPeriod(ctx context.Context, userID, period string) (*models.Cashback, error)
	// GetByUser returns the user's cashbacks newest first.
	GetByUser(ctx context.Context, userID string) ([]*models.Cashback, error)
	GetByPeriod(ctx context.Context, period string) ([]*models.Cashback, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Cashback, error)
	// UpdateAmounts rewrites the monetary fields of an existing record,
	// leaving status untouched.
	UpdateAmounts(ctx context.Context, id string, savingsKwh, savingsPercentage, cashbackAmount float64) error
	UpdateStatus(ctx context.Context, id, status string) error
	// SumAmountByStatuses totals cashback_amount over records in any of the
	// given statuses.
	SumAmountByStatuses(ctx context.Context, statuses ...string) (float64, error)
	SumAmountByUserAndStatuses(ctx context.Context, userID string, statuses ...string) (float64, error)
	SumSavings(ctx context.Context) (float64, error)
}
