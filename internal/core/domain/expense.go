package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single recorded expense belonging to a user.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`    // Owner
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"` // 3-letter code
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags,omitempty"`
	Receipt     *string         `json:"receipt,omitempty"` // file path or URL
	AuditFields
}

// ExpenseFilters narrows an expense listing. Zero-valued fields are ignored.
type ExpenseFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Search    string // matched against description
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// MonthlyTrendPoint is one month's total in an expense summary.
type MonthlyTrendPoint struct {
	Month  string          `json:"month"` // YYYY-MM
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseSummary aggregates a user's expenses, optionally scoped to a month.
type ExpenseSummary struct {
	TotalExpenses     int                        `json:"totalExpenses"`
	TotalAmount       decimal.Decimal            `json:"totalAmount"`
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"`
	MonthlyTrend      []MonthlyTrendPoint        `json:"monthlyTrend"`
}
