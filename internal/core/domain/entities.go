package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBank     Role = "bank"
)

// Cashback status lifecycle: pending -> approved -> paid.
// The engine only ever sets pending or approved at creation; approve/pay
// are bank operator actions.
const (
	CashbackStatusPending  = "pending"
	CashbackStatusApproved = "approved"
	CashbackStatusPaid     = "paid"
)

// DefaultBaselineKwh is the neutral reference for users with no bill history,
// so a first bill is neither penalized nor rewarded unfairly.
const DefaultBaselineKwh = 400.0

// BaselineWindowMonths caps how much history feeds a baseline.
const BaselineWindowMonths = 6

// User represents an account holder in the domain layer
type User struct {
	ID            string
	Name          string
	Email         string
	AccountNumber string
	Address       string
	PhoneNumber   string
	Role          Role
	CreatedAt     time.Time
}

// Bill is one customer's reported consumption for a single billing period.
// Bills are immutable once created; at most one per (user, period).
type Bill struct {
	ID             string
	UserID         string
	Period         string // YYYY-MM
	ConsumptionKwh float64
	AmountPaid     float64
	BillDate       time.Time
	CreatedAt      time.Time
}

// Baseline is a user's frozen reference consumption for a period.
// Computed once by the engine and never recomputed while it exists.
type Baseline struct {
	ID           string
	UserID       string
	Period       string
	BaselineKwh  float64
	CalculatedAt time.Time
}

// Cashback is the reward record for a (user, period).
// SavingsKwh may be negative (over-consumption).
type Cashback struct {
	ID                string
	UserID            string
	Period            string
	SavingsKwh        float64
	SavingsPercentage float64
	CashbackAmount    float64
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
