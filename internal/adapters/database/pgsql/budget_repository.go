package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
	portsrepo "github.com/spems-app/spems_backend/internal/core/ports/repositories"
)

type BudgetRepository struct {
	db *pgxpool.Pool
}

func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Ensure BudgetRepository implements the facade
var _ portsrepo.BudgetRepositoryFacade = (*BudgetRepository)(nil)

const budgetColumns = `budget_id, user_id, category, amount, currency, month, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.CollectableRow) (domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(
		&b.BudgetID,
		&b.UserID,
		&b.Category,
		&b.Amount,
		&b.Currency,
		&b.Month,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	return b, err
}

func (r *BudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
        INSERT INTO budgets (` + budgetColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		budget.BudgetID,
		budget.UserID,
		budget.Category,
		budget.Amount,
		budget.Currency,
		budget.Month,
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	if err != nil {
		// budgets carry a unique (user_id, category, month) constraint
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: budget for category and month already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

func (r *BudgetRepository) FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	query := `
        SELECT ` + budgetColumns + `
        FROM budgets
        WHERE budget_id = $1 AND user_id = $2;
    `
	rows, err := r.db.Query(ctx, query, budgetID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget by ID: %w", err)
	}
	budget, err := pgx.CollectOneRow(rows, scanBudget)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID: %w", err)
	}
	return &budget, nil
}

func (r *BudgetRepository) FindBudgetByCategoryMonth(ctx context.Context, userID, category, month string) (*domain.Budget, error) {
	query := `
        SELECT ` + budgetColumns + `
        FROM budgets
        WHERE user_id = $1 AND category = $2 AND month = $3;
    `
	rows, err := r.db.Query(ctx, query, userID, category, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget by category and month: %w", err)
	}
	budget, err := pgx.CollectOneRow(rows, scanBudget)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by category and month: %w", err)
	}
	return &budget, nil
}

func (r *BudgetRepository) ListBudgets(ctx context.Context, userID, month string) ([]domain.Budget, error) {
	query := `
        SELECT ` + budgetColumns + `
        FROM budgets
        WHERE user_id = $1 AND ($2 = '' OR month = $2)
        ORDER BY month DESC, category;
    `
	rows, err := r.db.Query(ctx, query, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	budgets, err := pgx.CollectRows(rows, scanBudget)
	if err != nil {
		return nil, fmt.Errorf("failed to collect budget rows: %w", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `
        UPDATE budgets
        SET amount = $1, currency = $2, last_updated_at = $3, last_updated_by = $4
        WHERE budget_id = $5 AND user_id = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		budget.Amount,
		budget.Currency,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
		budget.BudgetID,
		budget.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BudgetRepository) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	query := `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, budgetID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
