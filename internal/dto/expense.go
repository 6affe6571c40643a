package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to record a new expense.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"required,currencycode"`
	Category    string          `json:"category" binding:"required,max=100"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required,max=500"`
	Tags        []string        `json:"tags"`
	Receipt     *string         `json:"receipt"`
}

// UpdateExpenseRequest defines the data allowed for a partial expense update.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Currency    *string          `json:"currency" binding:"omitempty,currencycode"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Date        *time.Time       `json:"date"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Tags        []string         `json:"tags"`
	Receipt     *string          `json:"receipt"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	StartDate *time.Time       `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time       `form:"endDate" time_format:"2006-01-02"`
	Category  string           `form:"category"`
	Search    string           `form:"search"`
	MinAmount *decimal.Decimal `form:"minAmount"`
	MaxAmount *decimal.Decimal `form:"maxAmount"`
}

// ToExpenseFilters converts list params into domain filters.
func (p ListExpensesParams) ToExpenseFilters() domain.ExpenseFilters {
	return domain.ExpenseFilters{
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Category:  p.Category,
		Search:    p.Search,
		MinAmount: p.MinAmount,
		MaxAmount: p.MaxAmount,
	}
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags,omitempty"`
	Receipt     *string         `json:"receipt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Category:    e.Category,
		Date:        e.Date,
		Description: e.Description,
		Tags:        e.Tags,
		Receipt:     e.Receipt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.LastUpdatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain.Expense to DTOs
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}

// MonthlyTrendResponse is one month's total in an expense summary.
type MonthlyTrendResponse struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseSummaryResponse defines the aggregated expense data for a user.
type ExpenseSummaryResponse struct {
	TotalExpenses     int                        `json:"totalExpenses"`
	TotalAmount       decimal.Decimal            `json:"totalAmount"`
	CategoryBreakdown map[string]decimal.Decimal `json:"categoryBreakdown"`
	MonthlyTrend      []MonthlyTrendResponse     `json:"monthlyTrend"`
}

// ToExpenseSummaryResponse converts a domain.ExpenseSummary to its DTO.
func ToExpenseSummaryResponse(s domain.ExpenseSummary) ExpenseSummaryResponse {
	trend := make([]MonthlyTrendResponse, len(s.MonthlyTrend))
	for i, p := range s.MonthlyTrend {
		trend[i] = MonthlyTrendResponse{Month: p.Month, Amount: p.Amount}
	}
	return ExpenseSummaryResponse{
		TotalExpenses:     s.TotalExpenses,
		TotalAmount:       s.TotalAmount,
		CategoryBreakdown: s.CategoryBreakdown,
		MonthlyTrend:      trend,
	}
}
