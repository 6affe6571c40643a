package services

import (
	"context"

	"github.com/spems-app/spems_backend/internal/core/domain"
	"github.com/spems-app/spems_backend/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data.
type ExpenseReaderSvc interface {
	GetExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID string, filters domain.ExpenseFilters) ([]domain.Expense, error)
	// GetExpenseSummary aggregates the user's expenses; month ("YYYY-MM")
	// is optional and scopes the aggregation when set.
	GetExpenseSummary(ctx context.Context, userID, month string) (*domain.ExpenseSummary, error)
}

// ExpenseWriterSvc defines write operations for expense data.
type ExpenseWriterSvc interface {
	CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces.
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
