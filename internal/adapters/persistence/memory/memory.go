// Package memory provides in-memory implementations of the repository
// interfaces. They mirror the gorm repositories' semantics, including
// gorm.ErrRecordNotFound on missing rows, so services can run against them
// unchanged in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"enercash/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Store holds all in-memory tables behind one lock.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*models.User
	bills     map[string]*models.Bill
	baselines map[string]*models.Baseline
	cashbacks map[string]*models.Cashback
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]*models.User),
		bills:     make(map[string]*models.Bill),
		baselines: make(map[string]*models.Baseline),
		cashbacks: make(map[string]*models.Cashback),
	}
}

// ============================================================
// Users
// ============================================================

// UserRepository is the in-memory user repository.
type UserRepository struct{ store *Store }

// NewUserRepository returns a user repository over the store.
func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	_ = ctx
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*models.User
	for _, u := range r.store.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	users, err := r.ListByRole(ctx, role)
	if err != nil {
		return 0, err
	}
	return int64(len(users)), nil
}

// ============================================================
// Bills
// ============================================================

// BillRepository is the in-memory bill repository.
type BillRepository struct{ store *Store }

// NewBillRepository returns a bill repository over the store.
func NewBillRepository(s *Store) *BillRepository {
	return &BillRepository{store: s}
}

func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	_ = ctx
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bills {
		if b.UserID == bill.UserID && b.Period == bill.Period {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *bill
	r.store.bills[bill.ID] = &cp
	return nil
}

func (r *BillRepository) GetByUser(ctx context.Context, userID string) ([]*models.Bill, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.billsByUserLocked(userID), nil
}

func (r *BillRepository) GetByUserPaged(ctx context.Context, userID string, offset, limit int) ([]*models.Bill, int64, error) {
	bills, err := r.GetByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(bills))
	if offset >= len(bills) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(bills) {
		end = len(bills)
	}
	return bills[offset:end], total, nil
}

func (r *BillRepository) GetByPeriod(ctx context.Context, userID, period string) (*models.Bill, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, b := range r.store.bills {
		if b.UserID == userID && b.Period == period {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *BillRepository) GetBefore(ctx context.Context, userID, period string, limit int) ([]*models.Bill, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*models.Bill
	for _, b := range r.billsByUserLocked(userID) {
		if b.Period < period {
			out = append(out, b)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *BillRepository) ListUserIDsWithBill(ctx context.Context, period string) ([]string, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []string
	for _, b := range r.store.bills {
		if b.Period == period {
			out = append(out, b.UserID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// billsByUserLocked returns copies of a user's bills, period descending.
// Caller must hold the store lock.
func (r *BillRepository) billsByUserLocked(userID string) []*models.Bill {
	var out []*models.Bill
	for _, b := range r.store.bills {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	return out
}

// ============================================================
// Baselines
// ============================================================

// BaselineRepository is the in-memory baseline repository.
type BaselineRepository struct{ store *Store }

// NewBaselineRepository returns a baseline repository over the store.
func NewBaselineRepository(s *Store) *BaselineRepository {
	return &BaselineRepository{store: s}
}

func (r *BaselineRepository) Create(ctx context.Context, baseline *models.Baseline) error {
	_ = ctx
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *baseline
	r.store.baselines[baseline.ID] = &cp
	return nil
}

func (r *BaselineRepository) GetByUserAndPeriod(ctx context.Context, userID, period string) (*models.Baseline, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, b := range r.store.baselines {
		if b.UserID == userID && b.Period == period {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ============================================================
// Cashbacks
// ============================================================

// CashbackRepository is the in-memory cashback repository.
type CashbackRepository struct{ store *Store }

// NewCashbackRepository returns a cashback repository over the store.
func NewCashbackRepository(s *Store) *CashbackRepository {
	return &CashbackRepository{store: s}
}

func (r *CashbackRepository) Create(ctx context.Context, cashback *models.Cashback) error {
	_ = ctx
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *cashback
	r.store.cashbacks[cashback.ID] = &cp
	return nil
}

func (r *CashbackRepository) GetByID(ctx context.Context, id string) (*models.Cashback, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	cb, ok := r.store.cashbacks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *cb
	return &cp, nil
}

func (r *CashbackRepository) GetByUserAndPeriod(ctx context.Context, userID, period string) (*models.Cashback, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, cb := range r.store.cashbacks {
		if cb.UserID == userID && cb.Period == period {
			cp := *cb
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *CashbackRepository) GetByUser(ctx context.Context, userID string) ([]*models.Cashback, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*models.Cashback
	for _, cb := range r.store.cashbacks {
		if cb.UserID == userID {
			cp := *cb
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *CashbackRepository) GetByPeriod(ctx context.Context, period string) ([]*models.Cashback, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*models.Cashback
	for _, cb := range r.store.cashbacks {
		if cb.Period == period {
			cp := *cb
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *CashbackRepository) ListRecent(ctx context.Context, limit int) ([]*models.Cashback, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*models.Cashback
	for _, cb := range r.store.cashbacks {
		cp := *cb
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *CashbackRepository) UpdateAmounts(ctx context.Context, id string, savingsKwh, savingsPercentage, cashbackAmount float64) error {
	_ = ctx
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cb, ok := r.store.cashbacks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cb.SavingsKwh = savingsKwh
	cb.SavingsPercentage = savingsPercentage
	cb.CashbackAmount = cashbackAmount
	return nil
}

func (r *CashbackRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_ = ctx
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cb, ok := r.store.cashbacks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cb.Status = status
	return nil
}

func (r *CashbackRepository) SumAmountByStatuses(ctx context.Context, statuses ...string) (float64, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var total float64
	for _, cb := range r.store.cashbacks {
		if statusIn(cb.Status, statuses) {
			total += cb.CashbackAmount
		}
	}
	return total, nil
}

func (r *CashbackRepository) SumAmountByUserAndStatuses(ctx context.Context, userID string, statuses ...string) (float64, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var total float64
	for _, cb := range r.store.cashbacks {
		if cb.UserID == userID && statusIn(cb.Status, statuses) {
			total += cb.CashbackAmount
		}
	}
	return total, nil
}

func (r *CashbackRepository) SumSavings(ctx context.Context) (float64, error) {
	_ = ctx
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var total float64
	for _, cb := range r.store.cashbacks {
		total += cb.SavingsKwh
	}
	return total, nil
}

func statusIn(status string, statuses []string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
