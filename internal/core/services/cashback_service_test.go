package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"enercash/internal/adapters/persistence/memory"
	"enercash/internal/adapters/persistence/models"
	"enercash/internal/core/domain"

	"github.com/google/uuid"
)

type cashbackFixture struct {
	store        *memory.Store
	billRepo     *memory.BillRepository
	baselineRepo *memory.BaselineRepository
	cashbackRepo *memory.CashbackRepository
	svc          *CashbackService
}

func newCashbackFixture() *cashbackFixture {
	store := memory.NewStore()
	billRepo := memory.NewBillRepository(store)
	baselineRepo := memory.NewBaselineRepository(store)
	cashbackRepo := memory.NewCashbackRepository(store)
	baselineService := NewBaselineService(billRepo)
	return &cashbackFixture{
		store:        store,
		billRepo:     billRepo,
		baselineRepo: baselineRepo,
		cashbackRepo: cashbackRepo,
		svc:          NewCashbackService(billRepo, baselineRepo, cashbackRepo, baselineService),
	}
}

func (f *cashbackFixture) seedBaseline(t *testing.T, userID, period string, kwh float64) {
	t.Helper()
	err := f.baselineRepo.Create(context.Background(), &models.Baseline{
		ID:           uuid.NewString(),
		UserID:       userID,
		Period:       period,
		BaselineKwh:  kwh,
		CalculatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed baseline: %v", err)
	}
}

func TestRatePerKwh(t *testing.T) {
	cases := []struct {
		pct  float64
		want float64
	}{
		{0, 1.5},
		{4.9, 1.5},
		{5, 2.0},
		{9.9, 2.0},
		{10, 2.5},
		{14.9, 2.5},
		{15, 3.0},
		{42, 3.0},
	}
	for _, c := range cases {
		if got := RatePerKwh(c.pct); got != c.want {
			t.Errorf("RatePerKwh(%v): expected %v, got %v", c.pct, c.want, got)
		}
	}
}

func TestCashbackAmount(t *testing.T) {
	cases := []struct {
		name        string
		savingsKwh  float64
		baselineKwh float64
		want        float64
	}{
		{"zero savings", 0, 400, 0},
		{"overconsumption", -30, 400, 0},
		{"below five percent", 16, 400, 24.00},   // 4% -> 1.5/kWh
		{"exactly five percent", 20, 400, 40.00}, // 5% -> 2.0/kWh
		{"exactly ten percent", 40, 400, 100.00}, // 10% -> 2.5/kWh
		{"exactly fifteen percent", 60, 400, 180.00},
		{"deep savings", 100, 400, 300.00},
	}
	for _, c := range cases {
		if got := CashbackAmount(c.savingsKwh, c.baselineKwh); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestProcessCashback_NoBillIsEmptyOutcome(t *testing.T) {
	f := newCashbackFixture()

	cb, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cb != nil {
		t.Fatalf("expected nil cashback for missing bill, got %+v", cb)
	}
}

func TestProcessCashback_SavingsApproved(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 380)
	f.seedBaseline(t, "user-1", "2025-10", 435)

	cb, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cb == nil {
		t.Fatal("expected a cashback record")
	}
	if cb.SavingsKwh != 55 {
		t.Errorf("expected savings 55 kWh, got %v", cb.SavingsKwh)
	}
	if cb.SavingsPercentage != 12.6 {
		t.Errorf("expected savings percentage 12.6, got %v", cb.SavingsPercentage)
	}
	if cb.CashbackAmount != 137.50 {
		t.Errorf("expected cashback 137.50, got %v", cb.CashbackAmount)
	}
	if cb.Status != domain.CashbackStatusApproved {
		t.Errorf("expected status approved, got %s", cb.Status)
	}
}

func TestProcessCashback_OverconsumptionPendingZero(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 450)
	f.seedBaseline(t, "user-1", "2025-10", 400)

	cb, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cb.SavingsKwh != -50 {
		t.Errorf("expected savings -50 kWh, got %v", cb.SavingsKwh)
	}
	if cb.SavingsPercentage != -12.5 {
		t.Errorf("expected savings percentage -12.5, got %v", cb.SavingsPercentage)
	}
	if cb.CashbackAmount != 0 {
		t.Errorf("expected zero cashback, got %v", cb.CashbackAmount)
	}
	if cb.Status != domain.CashbackStatusPending {
		t.Errorf("expected status pending, got %s", cb.Status)
	}
}

func TestProcessCashback_ComputesAndFreezesBaseline(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 350)

	// No history before 2025-10, so the default 400 applies and is persisted.
	cb, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cb.SavingsKwh != 50 {
		t.Errorf("expected savings 50 kWh against default baseline, got %v", cb.SavingsKwh)
	}

	baseline, err := f.baselineRepo.GetByUserAndPeriod(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("expected persisted baseline: %v", err)
	}
	if baseline.BaselineKwh != 400 {
		t.Fatalf("expected frozen baseline 400, got %v", baseline.BaselineKwh)
	}

	// A second run must reuse the frozen row even after new history appears.
	addBill(t, f.billRepo, "user-1", "2025-09", 800)
	cb2, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cb2.SavingsKwh != 50 {
		t.Errorf("expected reprocessing to reuse frozen baseline, got savings %v", cb2.SavingsKwh)
	}
}

func TestProcessCashback_IdempotentUpsert(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 380)
	f.seedBaseline(t, "user-1", "2025-10", 435)

	first, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected one record per (user, period), got ids %s and %s", first.ID, second.ID)
	}

	all, err := f.cashbackRepo.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one cashback record, got %d", len(all))
	}
}

func TestProcessCashback_ReprocessingNeverTouchesStatus(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 380)
	f.seedBaseline(t, "user-1", "2025-10", 435)

	cb, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.cashbackRepo.UpdateStatus(context.Background(), cb.ID, domain.CashbackStatusPaid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := f.cashbackRepo.GetByID(context.Background(), cb.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != domain.CashbackStatusPaid {
		t.Fatalf("expected status paid to survive reprocessing, got %s", stored.Status)
	}
}

func TestProcessCashback_RejectsCorruptBaseline(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 380)
	f.seedBaseline(t, "user-1", "2025-10", 0)

	_, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if !errors.Is(err, ErrInvalidBaseline) {
		t.Fatalf("expected ErrInvalidBaseline, got %v", err)
	}
}

func TestProcessCashback_ConcurrentCallsYieldOneRecord(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 380)
	f.seedBaseline(t, "user-1", "2025-10", 435)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := f.cashbackRepo.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one cashback record, got %d", len(all))
	}
}

func TestApprove_PendingToApproved(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 450)
	f.seedBaseline(t, "user-1", "2025-10", 400)

	cb, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	approved, err := f.svc.Approve(context.Background(), cb.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approved.Status != domain.CashbackStatusApproved {
		t.Fatalf("expected status approved, got %s", approved.Status)
	}

	// Approving twice is an invalid transition.
	if _, err := f.svc.Approve(context.Background(), cb.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestMarkPaid_RequiresApproved(t *testing.T) {
	f := newCashbackFixture()
	addBill(t, f.billRepo, "user-1", "2025-10", 450)
	f.seedBaseline(t, "user-1", "2025-10", 400)

	cb, err := f.svc.ProcessCashback(context.Background(), "user-1", "2025-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.MarkPaid(context.Background(), cb.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for pending cashback, got %v", err)
	}

	if _, err := f.svc.Approve(context.Background(), cb.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paid, err := f.svc.MarkPaid(context.Background(), cb.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid.Status != domain.CashbackStatusPaid {
		t.Fatalf("expected status paid, got %s", paid.Status)
	}
}

func TestTransition_UnknownID(t *testing.T) {
	f := newCashbackFixture()

	if _, err := f.svc.Approve(context.Background(), "missing"); !errors.Is(err, ErrCashbackNotFound) {
		t.Fatalf("expected ErrCashbackNotFound, got %v", err)
	}
}
