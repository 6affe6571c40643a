package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
	portsrepo "github.com/spems-app/spems_backend/internal/core/ports/repositories"
	"github.com/spems-app/spems_backend/internal/dto"
)

// BudgetService provides business logic for monthly category budgets. Each
// user may hold at most one budget per (category, month) pair; reads are
// enriched with the amount already spent against the budget.
type BudgetService struct {
	budgetRepo  portsrepo.BudgetRepositoryFacade
	expenseRepo portsrepo.ExpenseReader
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, expenseRepo portsrepo.ExpenseReader) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
	}
}

func (s *BudgetService) status(ctx context.Context, budget domain.Budget) (*domain.BudgetStatus, error) {
	spent, err := s.expenseRepo.SumExpensesForCategoryMonth(ctx, budget.UserID, budget.Category, budget.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to compute spent amount for budget: %w", err)
	}
	return &domain.BudgetStatus{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget.Amount.Sub(spent),
	}, nil
}

// CreateBudget creates a budget for a (category, month) pair. A second budget
// for the same pair is rejected as a duplicate.
func (s *BudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.BudgetStatus, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: budget amount must be positive", apperrors.ErrValidation)
	}
	if !domain.IsSupportedCurrency(req.Currency) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrencyCode, req.Currency)
	}

	existing, err := s.budgetRepo.FindBudgetByCategoryMonth(ctx, userID, req.Category, req.Month)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing budget: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: budget for category %q in %s already exists", apperrors.ErrDuplicate, req.Category, req.Month)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID: uuid.NewString(),
		UserID:   userID,
		Category: req.Category,
		Amount:   req.Amount,
		Currency: req.Currency,
		Month:    req.Month,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget in service: %w", err)
	}
	return s.status(ctx, budget)
}

// GetBudgetByID retrieves a single budget owned by the user.
func (s *BudgetService) GetBudgetByID(ctx context.Context, userID, budgetID string) (*domain.BudgetStatus, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget in service: %w", err)
	}
	return s.status(ctx, *budget)
}

// ListBudgets retrieves the user's budgets, optionally restricted to one
// YYYY-MM month.
func (s *BudgetService) ListBudgets(ctx context.Context, userID, month string) ([]domain.BudgetStatus, error) {
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return nil, fmt.Errorf("%w: month must be in YYYY-MM format", apperrors.ErrValidation)
		}
	}

	budgets, err := s.budgetRepo.ListBudgets(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets in service: %w", err)
	}

	statuses := make([]domain.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		st, err := s.status(ctx, b)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *st)
	}
	return statuses, nil
}

// UpdateBudget applies a partial update to a budget owned by the user. The
// category and month are immutable; delete and recreate to move a budget.
func (s *BudgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.BudgetStatus, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget for update: %w", err)
	}

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: budget amount must be positive", apperrors.ErrValidation)
		}
		budget.Amount = *req.Amount
	}
	if req.Currency != nil {
		if !domain.IsSupportedCurrency(*req.Currency) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrencyCode, *req.Currency)
		}
		budget.Currency = *req.Currency
	}

	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		return nil, fmt.Errorf("failed to update budget in service: %w", err)
	}
	return s.status(ctx, *budget)
}

// DeleteBudget removes a budget owned by the user.
func (s *BudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, userID, budgetID); err != nil {
		return fmt.Errorf("failed to delete budget in service: %w", err)
	}
	return nil
}
