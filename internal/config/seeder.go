package config

import (
	"log"
	"time"

	"enercash/internal/adapters/persistence/models"
	"enercash/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedDatabase inserts sample data for development. It is idempotent and
// skips entirely when any user already exists.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("✅ Database already seeded, skipping")
		return nil
	}

	log.Println("🔄 Seeding database with sample data...")

	customer1 := &models.User{
		ID:            uuid.NewString(),
		Name:          "Juan Pérez",
		Email:         "juan.perez@email.com",
		AccountNumber: "1234567890",
		Address:       "Av. Reforma 123, CDMX",
		PhoneNumber:   "+52 55 1234 5678",
		Role:          string(domain.RoleCustomer),
	}

	customer2 := &models.User{
		ID:            uuid.NewString(),
		Name:          "María González",
		Email:         "maria.gonzalez@email.com",
		AccountNumber: "0987654321",
		Address:       "Calle Juárez 456, Guadalajara",
		PhoneNumber:   "+52 33 8765 4321",
		Role:          string(domain.RoleCustomer),
	}

	bankAdmin := &models.User{
		ID:            uuid.NewString(),
		Name:          "Admin Banco",
		Email:         "admin@banco.com",
		AccountNumber: "0000000000",
		Role:          string(domain.RoleBank),
	}

	if err := db.Create([]*models.User{customer1, customer2, bankAdmin}).Error; err != nil {
		return err
	}

	billDate := func(year int, month time.Month) time.Time {
		return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	}

	bills := []*models.Bill{
		{
			ID:             uuid.NewString(),
			UserID:         customer1.ID,
			Period:         "2025-08",
			ConsumptionKwh: 450,
			AmountPaid:     1125.00,
			BillDate:       billDate(2025, time.August),
		},
		{
			ID:             uuid.NewString(),
			UserID:         customer1.ID,
			Period:         "2025-09",
			ConsumptionKwh: 420,
			AmountPaid:     1050.00,
			BillDate:       billDate(2025, time.September),
		},
		{
			ID:             uuid.NewString(),
			UserID:         customer1.ID,
			Period:         "2025-10",
			ConsumptionKwh: 380,
			AmountPaid:     950.00,
			BillDate:       billDate(2025, time.October),
		},
	}
	if err := db.Create(bills).Error; err != nil {
		return err
	}

	baseline := &models.Baseline{
		ID:           uuid.NewString(),
		UserID:       customer1.ID,
		Period:       "2025-10",
		BaselineKwh:  435,
		CalculatedAt: time.Now(),
	}
	if err := db.Create(baseline).Error; err != nil {
		return err
	}

	cashback := &models.Cashback{
		ID:                uuid.NewString(),
		UserID:            customer1.ID,
		Period:            "2025-10",
		SavingsKwh:        55,
		SavingsPercentage: 12.6,
		CashbackAmount:    137.50,
		Status:            string(domain.CashbackStatusApproved),
	}
	if err := db.Create(cashback).Error; err != nil {
		return err
	}

	log.Println("✅ Database seeded successfully (3 users, 3 bills, 1 cashback)")
	return nil
}
