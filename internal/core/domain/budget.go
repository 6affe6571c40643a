package domain

import "github.com/shopspring/decimal"

// Budget is a per-category spending limit for one month.
// A user may have at most one budget per (category, month) pair.
type Budget struct {
	BudgetID string          `json:"budgetID"` // Primary Key (UUID)
	UserID   string          `json:"userID"`   // Owner
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Month    string          `json:"month"` // YYYY-MM
	AuditFields
}

// BudgetStatus pairs a budget with the amount already spent against it.
type BudgetStatus struct {
	Budget
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
}
