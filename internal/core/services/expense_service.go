package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
	portsrepo "github.com/spems-app/spems_backend/internal/core/ports/repositories"
	"github.com/spems-app/spems_backend/internal/dto"
)

// ExpenseService provides business logic for expense records. All operations
// are scoped to the owning user; a caller can never read or mutate another
// user's expenses through this service.
type ExpenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpense records a new expense for the user.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	if !domain.IsSupportedCurrency(req.Currency) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrencyCode, req.Currency)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		UserID:      userID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
		Tags:        req.Tags,
		Receipt:     req.Receipt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense in service: %w", err)
	}
	return &expense, nil
}

// GetExpenseByID retrieves a single expense owned by the user.
func (s *ExpenseService) GetExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense in service: %w", err)
	}
	return expense, nil
}

// ListExpenses retrieves the user's expenses, newest first, applying filters.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID string, filters domain.ExpenseFilters) ([]domain.Expense, error) {
	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, fmt.Errorf("%w: endDate cannot be before startDate", apperrors.ErrValidation)
	}
	if filters.MinAmount != nil && filters.MaxAmount != nil && filters.MaxAmount.LessThan(*filters.MinAmount) {
		return nil, fmt.Errorf("%w: maxAmount cannot be less than minAmount", apperrors.ErrValidation)
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses in service: %w", err)
	}
	return expenses, nil
}

// UpdateExpense applies a partial update to an expense owned by the user.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for update: %w", err)
	}

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.Currency != nil {
		if !domain.IsSupportedCurrency(*req.Currency) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrencyCode, *req.Currency)
		}
		expense.Currency = *req.Currency
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Tags != nil {
		expense.Tags = req.Tags
	}
	if req.Receipt != nil {
		expense.Receipt = req.Receipt
	}

	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = userID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense in service: %w", err)
	}
	return expense, nil
}

// DeleteExpense removes an expense owned by the user.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	if err := s.expenseRepo.DeleteExpense(ctx, userID, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense in service: %w", err)
	}
	return nil
}

// GetExpenseSummary aggregates the user's expenses into totals, a per-category
// breakdown and a month-by-month trend. When month is set ("YYYY-MM") only
// that month's expenses are aggregated.
func (s *ExpenseService) GetExpenseSummary(ctx context.Context, userID, month string) (*domain.ExpenseSummary, error) {
	filters := domain.ExpenseFilters{}
	if month != "" {
		start, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, fmt.Errorf("%w: month must be in YYYY-MM format", apperrors.ErrValidation)
		}
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		filters.StartDate = &start
		filters.EndDate = &end
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for summary: %w", err)
	}

	summary := domain.ExpenseSummary{
		TotalExpenses:     len(expenses),
		TotalAmount:       decimal.Zero,
		CategoryBreakdown: make(map[string]decimal.Decimal),
	}
	byMonth := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		summary.TotalAmount = summary.TotalAmount.Add(e.Amount)
		summary.CategoryBreakdown[e.Category] = summary.CategoryBreakdown[e.Category].Add(e.Amount)
		key := e.Date.Format("2006-01")
		byMonth[key] = byMonth[key].Add(e.Amount)
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	summary.MonthlyTrend = make([]domain.MonthlyTrendPoint, 0, len(months))
	for _, m := range months {
		summary.MonthlyTrend = append(summary.MonthlyTrend, domain.MonthlyTrendPoint{Month: m, Amount: byMonth[m]})
	}

	return &summary, nil
}
