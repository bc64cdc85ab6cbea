package services

import (
	"context"
	"testing"

	"enercash/internal/core/domain"
)

func TestSettlePeriod_ProcessesEveryUserWithBill(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 350)
	addBill(t, f.billRepo, "user-2", "2025-10", 420)
	addBill(t, f.billRepo, "user-3", "2025-09", 400) // outside the period

	cron := NewSettlementCron(f.billRepo, f.svc)
	cron.SettlePeriod(context.Background(), "2025-10")

	for _, userID := range []string{"user-1", "user-2"} {
		if _, err := f.cashbackRepo.GetByUserAndPeriod(context.Background(), userID, "2025-10"); err != nil {
			t.Errorf("expected cashback for %s: %v", userID, err)
		}
	}
	if _, err := f.cashbackRepo.GetByUserAndPeriod(context.Background(), "user-3", "2025-09"); err == nil {
		t.Error("expected no cashback for user outside the settled period")
	}
}

func TestSettlePeriod_IsIdempotent(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 350)

	cron := NewSettlementCron(f.billRepo, f.svc)
	cron.SettlePeriod(context.Background(), "2025-10")
	cron.SettlePeriod(context.Background(), "2025-10")

	all, err := f.cashbackRepo.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one cashback record after repeated settlement, got %d", len(all))
	}
	if all[0].Status != domain.CashbackStatusApproved {
		t.Fatalf("expected status approved, got %s", all[0].Status)
	}
}
