package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"enercash/internal/core/domain"
)

func newBillFixture() (*BillService, *cashbackFixture) {
	f := newCashbackFixture()
	return NewBillService(f.billRepo, f.svc), f
}

func TestSubmitBill_InvalidPeriod(t *testing.T) {
	svc, _ := newBillFixture()

	for _, p := range []string{"", "2025-13", "2025-1", "oct-2025"} {
		_, err := svc.SubmitBill(context.Background(), "user-1", &SubmitBillInput{
			Period:         p,
			ConsumptionKwh: 350,
		})
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("period %q: expected ErrInvalidPeriod, got %v", p, err)
		}
	}
}

func TestSubmitBill_RejectsNonPositiveConsumption(t *testing.T) {
	svc, _ := newBillFixture()

	for _, kwh := range []float64{0, -10} {
		_, err := svc.SubmitBill(context.Background(), "user-1", &SubmitBillInput{
			Period:         "2025-10",
			ConsumptionKwh: kwh,
		})
		if !errors.Is(err, ErrInvalidConsumption) {
			t.Errorf("consumption %v: expected ErrInvalidConsumption, got %v", kwh, err)
		}
	}
}

func TestSubmitBill_RejectsDuplicatePeriod(t *testing.T) {
	svc, _ := newBillFixture()
	input := &SubmitBillInput{
		Period:         "2025-10",
		ConsumptionKwh: 350,
		AmountPaid:     875.00,
		BillDate:       time.Now(),
	}

	if _, err := svc.SubmitBill(context.Background(), "user-1", input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SubmitBill(context.Background(), "user-1", input); !errors.Is(err, ErrBillAlreadyExists) {
		t.Fatalf("expected ErrBillAlreadyExists, got %v", err)
	}

	// Another user may submit the same period.
	if _, err := svc.SubmitBill(context.Background(), "user-2", input); err != nil {
		t.Fatalf("unexpected error for second user: %v", err)
	}
}

func TestSubmitBill_TriggersCashbackProcessing(t *testing.T) {
	svc, _ := newBillFixture()

	// First ever bill: default baseline 400, consumption 350 -> 50 kWh saved,
	// 12.5%, 2.5/kWh tier, 125.00.
	out, err := svc.SubmitBill(context.Background(), "user-1", &SubmitBillInput{
		Period:         "2025-10",
		ConsumptionKwh: 350,
		AmountPaid:     875.00,
		BillDate:       time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Bill == nil || out.Cashback == nil {
		t.Fatal("expected both bill and cashback in output")
	}
	if out.Cashback.SavingsKwh != 50 {
		t.Errorf("expected savings 50 kWh, got %v", out.Cashback.SavingsKwh)
	}
	if out.Cashback.SavingsPercentage != 12.5 {
		t.Errorf("expected savings percentage 12.5, got %v", out.Cashback.SavingsPercentage)
	}
	if out.Cashback.CashbackAmount != 125.00 {
		t.Errorf("expected cashback 125.00, got %v", out.Cashback.CashbackAmount)
	}
	if out.Cashback.Status != domain.CashbackStatusApproved {
		t.Errorf("expected status approved, got %s", out.Cashback.Status)
	}
}

func TestListBills_PagesNewestFirst(t *testing.T) {
	svc, f := newBillFixture()
	for _, p := range []string{"2025-07", "2025-08", "2025-09", "2025-10"} {
		addBill(t, f.billRepo, "user-1", p, 400)
	}

	bills, total, err := svc.ListBills(context.Background(), "user-1", 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected total 4, got %d", total)
	}
	if len(bills) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(bills))
	}
	if bills[0].Period != "2025-10" || bills[1].Period != "2025-09" {
		t.Fatalf("expected newest first, got %s, %s", bills[0].Period, bills[1].Period)
	}

	rest, _, err := svc.ListBills(context.Background(), "user-1", 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 2 || rest[0].Period != "2025-08" {
		t.Fatalf("expected second page starting at 2025-08, got %+v", rest)
	}
}
