package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a monthly budget.
type CreateBudgetRequest struct {
	Category string          `json:"category" binding:"required,max=100"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency" binding:"required,currencycode"`
	Month    string          `json:"month" binding:"required,datetime=2006-01"`
}

// UpdateBudgetRequest defines the data allowed for a partial budget update.
type UpdateBudgetRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency" binding:"omitempty,currencycode"`
}

// BudgetResponse defines the data returned for a budget, including how much
// of it has already been spent.
type BudgetResponse struct {
	BudgetID  string          `json:"budgetID"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Month     string          `json:"month"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToBudgetResponse converts a domain.BudgetStatus to BudgetResponse DTO
func ToBudgetResponse(b domain.BudgetStatus) BudgetResponse {
	return BudgetResponse{
		BudgetID:  b.BudgetID,
		Category:  b.Category,
		Amount:    b.Amount,
		Currency:  b.Currency,
		Month:     b.Month,
		Spent:     b.Spent,
		Remaining: b.Remaining,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBudgetResponse converts a slice of domain.BudgetStatus to DTOs
func ToListBudgetResponse(budgets []domain.BudgetStatus) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(b)
	}
	return res
}
