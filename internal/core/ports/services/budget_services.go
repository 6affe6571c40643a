package services

import (
	"context"

	"github.com/spems-app/spems_backend/internal/core/domain"
	"github.com/spems-app/spems_backend/internal/dto"
)

// BudgetReaderSvc defines read operations for budget data. All reads return
// budgets enriched with the spent amount for their month.
type BudgetReaderSvc interface {
	GetBudgetByID(ctx context.Context, userID, budgetID string) (*domain.BudgetStatus, error)
	ListBudgets(ctx context.Context, userID, month string) ([]domain.BudgetStatus, error)
}

// BudgetWriterSvc defines write operations for budget data.
type BudgetWriterSvc interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.BudgetStatus, error)
	UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.BudgetStatus, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// BudgetSvcFacade combines all budget-related service interfaces.
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
