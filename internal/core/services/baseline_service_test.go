package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"enercash/internal/adapters/persistence/memory"
	"enercash/internal/adapters/persistence/models"

	"github.com/google/uuid"
)

func newBaselineFixture() (*BaselineService, *memory.BillRepository) {
	store := memory.NewStore()
	billRepo := memory.NewBillRepository(store)
	return NewBaselineService(billRepo), billRepo
}

func addBill(t *testing.T, repo *memory.BillRepository, userID, period string, kwh float64) {
	t.Helper()
	err := repo.Create(context.Background(), &models.Bill{
		ID:             uuid.NewString(),
		UserID:         userID,
		Period:         period,
		ConsumptionKwh: kwh,
		AmountPaid:     kwh * 2.5,
		BillDate:       time.Now(),
		CreatedAt:      time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to create bill: %v", err)
	}
}

func TestComputeBaseline_NoHistoryReturnsDefault(t *testing.T) {
	svc, _ := newBaselineFixture()

	got, err := svc.ComputeBaseline(context.Background(), "user-1", "2025-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 400 {
		t.Fatalf("expected default baseline 400, got %v", got)
	}
}

func TestComputeBaseline_WeightedAverage(t *testing.T) {
	svc, billRepo := newBaselineFixture()
	addBill(t, billRepo, "user-1", "2025-08", 450)
	addBill(t, billRepo, "user-1", "2025-09", 420)
	addBill(t, billRepo, "user-1", "2025-10", 380)

	// (380*3 + 420*2 + 450*1) / 6 = 405
	got, err := svc.ComputeBaseline(context.Background(), "user-1", "2025-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 405 {
		t.Fatalf("expected baseline 405, got %v", got)
	}
}

func TestComputeBaseline_RecentMonthsWeighMore(t *testing.T) {
	svc, billRepo := newBaselineFixture()
	addBill(t, billRepo, "falling", "2025-09", 500)
	addBill(t, billRepo, "falling", "2025-10", 300)
	addBill(t, billRepo, "rising", "2025-09", 300)
	addBill(t, billRepo, "rising", "2025-10", 500)

	falling, err := svc.ComputeBaseline(context.Background(), "falling", "2025-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rising, err := svc.ComputeBaseline(context.Background(), "rising", "2025-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (300*2 + 500*1) / 3 ~= 367 vs (500*2 + 300*1) / 3 ~= 433
	if falling != 367 {
		t.Fatalf("expected falling baseline 367, got %v", falling)
	}
	if rising != 433 {
		t.Fatalf("expected rising baseline 433, got %v", rising)
	}
	if falling >= rising {
		t.Fatalf("expected recent consumption to dominate: falling=%v rising=%v", falling, rising)
	}
}

func TestComputeBaseline_IgnoresTargetPeriodAndLater(t *testing.T) {
	svc, billRepo := newBaselineFixture()
	addBill(t, billRepo, "user-1", "2025-09", 420)
	addBill(t, billRepo, "user-1", "2025-10", 9999)
	addBill(t, billRepo, "user-1", "2025-11", 9999)

	got, err := svc.ComputeBaseline(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 420 {
		t.Fatalf("expected baseline 420 from the single prior bill, got %v", got)
	}
}

func TestComputeBaseline_WindowCapsAtSixMonths(t *testing.T) {
	svc, billRepo := newBaselineFixture()

	// Jan is outside the six month window; a huge value there must not leak in.
	addBill(t, billRepo, "user-1", "2025-01", 100000)
	for m := 2; m <= 7; m++ {
		addBill(t, billRepo, "user-1", fmt.Sprintf("2025-0%d", m), 400)
	}

	got, err := svc.ComputeBaseline(context.Background(), "user-1", "2025-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 400 {
		t.Fatalf("expected baseline 400 from the six in-window bills, got %v", got)
	}
}

func TestComputeBaseline_RoundsToWholeKwh(t *testing.T) {
	svc, billRepo := newBaselineFixture()
	addBill(t, billRepo, "user-1", "2025-09", 410)
	addBill(t, billRepo, "user-1", "2025-10", 400)

	// (400*2 + 410*1) / 3 = 403.33 -> 403
	got, err := svc.ComputeBaseline(context.Background(), "user-1", "2025-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 403 {
		t.Fatalf("expected baseline rounded to 403, got %v", got)
	}
}
