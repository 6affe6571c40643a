package repositories

import (
	"context"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	// FindBudgetByID retrieves a single budget scoped to its owner.
	FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error)

	// FindBudgetByCategoryMonth retrieves the unique budget for a
	// (category, month) pair, or apperrors.ErrNotFound.
	FindBudgetByCategoryMonth(ctx context.Context, userID, category, month string) (*domain.Budget, error)

	// ListBudgets retrieves a user's budgets ordered by category,
	// optionally restricted to one YYYY-MM month.
	ListBudgets(ctx context.Context, userID, month string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data.
type BudgetWriter interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
