package services

import (
	"context"

	"enercash/internal/adapters/persistence/models"
	"enercash/internal/adapters/persistence/repositories"
	"enercash/internal/core/domain"
)

// DashboardService aggregates bill and cashback data for the two views
type DashboardService struct {
	userRepo     repositories.UserRepository
	billRepo     repositories.BillRepository
	cashbackRepo repositories.CashbackRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	billRepo repositories.BillRepository,
	cashbackRepo repositories.CashbackRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:     userRepo,
		billRepo:     billRepo,
		cashbackRepo: cashbackRepo,
	}
}

// CustomerDashboardData represents the customer dashboard
type CustomerDashboardData struct {
	User           *models.UserResponse `json:"user"`
	RecentBill     *models.Bill         `json:"recent_bill,omitempty"`
	RecentCashback *models.Cashback     `json:"recent_cashback,omitempty"`
	TotalCashback  float64              `json:"total_cashback"`
}

// GetCustomerDashboard returns the customer view: latest bill, latest
// cashback and the total reward earned so far (approved or paid).
func (s *DashboardService) GetCustomerDashboard(ctx context.Context, userID string) (*CustomerDashboardData, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := &CustomerDashboardData{User: user.ToResponse()}

	bills, err := s.billRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(bills) > 0 {
		data.RecentBill = bills[0]
	}

	cashbacks, err := s.cashbackRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cashbacks) > 0 {
		data.RecentCashback = cashbacks[0]
	}

	total, err := s.cashbackRepo.SumAmountByUserAndStatuses(ctx, userID,
		domain.CashbackStatusApproved, domain.CashbackStatusPaid)
	if err != nil {
		return nil, err
	}
	data.TotalCashback = total

	return data, nil
}

// BankDashboardData represents the bank operator dashboard
type BankDashboardData struct {
	TotalCustomers  int64              `json:"total_customers"`
	TotalCashback   float64            `json:"total_cashback"`
	TotalSavingsKwh float64            `json:"total_savings_kwh"`
	RecentCashbacks []*models.Cashback `json:"recent_cashbacks"`
}

// GetBankDashboard returns the aggregate bank view: customer count, total
// payable cashback (approved or paid) and total savings across all records.
func (s *DashboardService) GetBankDashboard(ctx context.Context) (*BankDashboardData, error) {
	data := &BankDashboardData{}

	customers, err := s.userRepo.CountByRole(ctx, string(domain.RoleCustomer))
	if err != nil {
		return nil, err
	}
	data.TotalCustomers = customers

	total, err := s.cashbackRepo.SumAmountByStatuses(ctx,
		domain.CashbackStatusApproved, domain.CashbackStatusPaid)
	if err != nil {
		return nil, err
	}
	data.TotalCashback = total

	savings, err := s.cashbackRepo.SumSavings(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalSavingsKwh = savings

	recent, err := s.cashbackRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, err
	}
	data.RecentCashbacks = recent

	return data, nil
}
