package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// ExpenseReader defines read operations for expense data.
type ExpenseReader interface {
	// FindExpenseByID retrieves a single expense scoped to its owner.
	FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a user's expenses, newest first, applying any
	// non-zero filters.
	ListExpenses(ctx context.Context, userID string, filters domain.ExpenseFilters) ([]domain.Expense, error)

	// SumExpensesForCategoryMonth totals a user's spending for one category
	// in one YYYY-MM month.
	SumExpensesForCategoryMonth(ctx context.Context, userID, category, month string) (decimal.Decimal, error)
}

// ExpenseWriter defines write operations for expense data.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
