package services

import (
	"context"
	"testing"
	"time"

	"enercash/internal/adapters/persistence/memory"
	"enercash/internal/adapters/persistence/models"
	"enercash/internal/core/domain"

	"github.com/google/uuid"
)

func seedUser(t *testing.T, repo *memory.UserRepository, name, email string, role domain.Role) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      string(role),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestGetCustomerDashboard(t *testing.T) {
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	billRepo := memory.NewBillRepository(store)
	baselineRepo := memory.NewBaselineRepository(store)
	cashbackRepo := memory.NewCashbackRepository(store)
	engine := NewCashbackService(billRepo, baselineRepo, cashbackRepo, NewBaselineService(billRepo))
	svc := NewDashboardService(userRepo, billRepo, cashbackRepo)

	user := seedUser(t, userRepo, "Juan Pérez", "juan.perez@email.com", domain.RoleCustomer)
	addBill(t, billRepo, user.ID, "2025-09", 420)
	addBill(t, billRepo, user.ID, "2025-10", 350)
	if _, err := engine.ProcessCashback(context.Background(), user.ID, "2025-10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := svc.GetCustomerDashboard(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.User.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, data.User.ID)
	}
	if data.RecentBill == nil || data.RecentBill.Period != "2025-10" {
		t.Errorf("expected most recent bill for 2025-10, got %+v", data.RecentBill)
	}
	if data.RecentCashback == nil || data.RecentCashback.Period != "2025-10" {
		t.Errorf("expected cashback for 2025-10, got %+v", data.RecentCashback)
	}
	if data.TotalCashback != data.RecentCashback.CashbackAmount {
		t.Errorf("expected total %v, got %v", data.RecentCashback.CashbackAmount, data.TotalCashback)
	}
}

func TestGetBankDashboard(t *testing.T) {
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	billRepo := memory.NewBillRepository(store)
	cashbackRepo := memory.NewCashbackRepository(store)
	svc := NewDashboardService(userRepo, billRepo, cashbackRepo)

	seedUser(t, userRepo, "Juan Pérez", "juan.perez@email.com", domain.RoleCustomer)
	seedUser(t, userRepo, "María González", "maria.gonzalez@email.com", domain.RoleCustomer)
	seedUser(t, userRepo, "Admin Banco", "admin@banco.com", domain.RoleBank)

	mk := func(userID string, amount, savings float64, status string) {
		err := cashbackRepo.Create(context.Background(), &models.Cashback{
			ID:             uuid.NewString(),
			UserID:         userID,
			Period:         "2025-10",
			SavingsKwh:     savings,
			CashbackAmount: amount,
			Status:         status,
			CreatedAt:      time.Now(),
		})
		if err != nil {
			t.Fatalf("failed to create cashback: %v", err)
		}
	}
	mk("c1", 137.50, 55, domain.CashbackStatusApproved)
	mk("c2", 80.00, 40, domain.CashbackStatusPaid)
	mk("c3", 0, -20, domain.CashbackStatusPending) // pending excluded from total

	data, err := svc.GetBankDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.TotalCustomers != 2 {
		t.Errorf("expected 2 customers, got %d", data.TotalCustomers)
	}
	if data.TotalCashback != 217.50 {
		t.Errorf("expected total cashback 217.50, got %v", data.TotalCashback)
	}
	if data.TotalSavingsKwh != 75 {
		t.Errorf("expected total savings 75, got %v", data.TotalSavingsKwh)
	}
	if len(data.RecentCashbacks) != 3 {
		t.Errorf("expected 3 recent cashbacks, got %d", len(data.RecentCashbacks))
	}
}
