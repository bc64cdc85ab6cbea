package services

import (
	"context"
	"log"
	"time"

	"enercash/internal/adapters/persistence/repositories"
	"enercash/internal/pkg/period"

	"github.com/robfig/cron/v3"
)

// SettlementCron runs the cashback engine for the just-closed period on the
// first day of each month, covering customers whose bill arrived after the
// submission-time computation failed or was skipped. Users without a bill
// for the period are a defined no-op.
type SettlementCron struct {
	billRepo        repositories.BillRepository
	cashbackService *CashbackService
	cron            *cron.Cron
}

// NewSettlementCron creates a new settlement cron
func NewSettlementCron(billRepo repositories.BillRepository, cashbackService *CashbackService) *SettlementCron {
	return &SettlementCron{
		billRepo:        billRepo,
		cashbackService: cashbackService,
		cron:            cron.New(),
	}
}

// Start schedules the monthly settlement run (02:00 on the 1st)
func (s *SettlementCron) Start() {
	s.cron.AddFunc("0 2 1 * *", func() {
		s.SettlePeriod(context.Background(), period.Previous(1))
	})
	s.cron.Start()
	log.Println("✅ Settlement cron started (monthly, 1st 02:00)")
}

// Stop stops the cron scheduler
func (s *SettlementCron) Stop() {
	s.cron.Stop()
	log.Println("🛑 Settlement cron stopped")
}

// SettlePeriod processes cashback for every user that submitted a bill for
// the period. Failures are logged per user and do not abort the run.
func (s *SettlementCron) SettlePeriod(ctx context.Context, p string) {
	log.Printf("🔄 Settling cashbacks for period %s", p)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	userIDs, err := s.billRepo.ListUserIDsWithBill(ctx, p)
	if err != nil {
		log.Printf("❌ Settlement aborted, cannot list users for %s: %v", p, err)
		return
	}

	var processed int
	for _, userID := range userIDs {
		if _, err := s.cashbackService.ProcessCashback(ctx, userID, p); err != nil {
			log.Printf("⚠️ Settlement failed for user %s period %s: %v", userID, p, err)
			continue
		}
		processed++
	}

	log.Printf("✅ Settlement completed for %s: %d/%d users", p, processed, len(userIDs))
}
