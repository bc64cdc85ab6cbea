package models

import (
	"time"

	"enercash/internal/core/domain"

	"gorm.io/gorm"
)

// User represents the users table
type User struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	AccountNumber string    `gorm:"size:20;not null" json:"account_number"`
	Address       string    `gorm:"size:255" json:"address"`
	PhoneNumber   string    `gorm:"size:20" json:"phone_number"`
	Role          string    `gorm:"size:20;not null;default:'customer'" json:"role"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	AccountNumber string    `json:"account_number"`
	Address       string    `json:"address"`
	PhoneNumber   string    `json:"phone_number"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		AccountNumber: u.AccountNumber,
		Address:       u.Address,
		PhoneNumber:   u.PhoneNumber,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
	}
}

// IsBank reports whether the user is a bank operator
func (u *User) IsBank() bool {
	return u.Role == string(domain.RoleBank)
}

// Bill represents the bills table.
// Bills are immutable; there is no update path. The composite unique index
// enforces the one-bill-per-period invariant at the store level.
type Bill struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"size:36;not null;uniqueIndex:idx_bills_user_period,priority:1" json:"user_id"`
	Period         string    `gorm:"size:7;not null;uniqueIndex:idx_bills_user_period,priority:2" json:"period"`
	ConsumptionKwh float64   `gorm:"not null" json:"consumption_kwh"`
	AmountPaid     float64   `gorm:"type:decimal(12,2);not null" json:"amount_paid"`
	BillDate       time.Time `gorm:"type:date;not null" json:"bill_date"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Bill) TableName() string {
	return "bills"
}

// Baseline represents the baselines table.
// Written only by the cashback engine; one frozen row per (user, period).
type Baseline struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:36;not null;uniqueIndex:idx_baselines_user_period,priority:1" json:"user_id"`
	Period       string    `gorm:"size:7;not null;uniqueIndex:idx_baselines_user_period,priority:2" json:"period"`
	BaselineKwh  float64   `gorm:"not null" json:"baseline_kwh"`
	CalculatedAt time.Time `gorm:"not null" json:"calculated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Baseline) TableName() string {
	return "baselines"
}

// Cashback represents the cashbacks table.
// One row per (user, period); recomputation updates the monetary fields in
// place and never touches status.
type Cashback struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	UserID            string    `gorm:"size:36;not null;uniqueIndex:idx_cashbacks_user_period,priority:1" json:"user_id"`
	Period            string    `gorm:"size:7;not null;uniqueIndex:idx_cashbacks_user_period,priority:2" json:"period"`
	SavingsKwh        float64   `gorm:"not null" json:"savings_kwh"`
	SavingsPercentage float64   `gorm:"type:decimal(6,1);not null" json:"savings_percentage"`
	CashbackAmount    float64   `gorm:"type:decimal(12,2);not null" json:"cashback_amount"`
	Status            string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Cashback) TableName() string {
	return "cashbacks"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Bill{},
		&Baseline{},
		&Cashback{},
	)
}
