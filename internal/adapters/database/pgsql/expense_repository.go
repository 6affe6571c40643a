package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
	portsrepo "github.com/spems-app/spems_backend/internal/core/ports/repositories"
)

type ExpenseRepository struct {
	db *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Ensure ExpenseRepository implements the facade
var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

const expenseColumns = `expense_id, user_id, amount, currency, category, date, description, tags, receipt, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.CollectableRow) (domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ExpenseID,
		&e.UserID,
		&e.Amount,
		&e.Currency,
		&e.Category,
		&e.Date,
		&e.Description,
		&e.Tags,
		&e.Receipt,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

func (r *ExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
        INSERT INTO expenses (` + expenseColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.db.Exec(ctx, query,
		expense.ExpenseID,
		expense.UserID,
		expense.Amount,
		expense.Currency,
		expense.Category,
		expense.Date,
		expense.Description,
		expense.Tags,
		expense.Receipt,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	query := `
        SELECT ` + expenseColumns + `
        FROM expenses
        WHERE expense_id = $1 AND user_id = $2;
    `
	rows, err := r.db.Query(ctx, query, expenseID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense by ID: %w", err)
	}
	expense, err := pgx.CollectOneRow(rows, scanExpense)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	return &expense, nil
}

func (r *ExpenseRepository) ListExpenses(ctx context.Context, userID string, filters domain.ExpenseFilters) ([]domain.Expense, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`)
	args := []any{userID}

	addClause := func(clause string, value any) {
		args = append(args, value)
		fmt.Fprintf(&sb, " AND "+clause, len(args))
	}

	if filters.StartDate != nil {
		addClause("date >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil {
		addClause("date <= $%d", *filters.EndDate)
	}
	if filters.Category != "" {
		addClause("category = $%d", filters.Category)
	}
	if filters.Search != "" {
		addClause("(description ILIKE '%%' || $%d || '%%' OR category ILIKE '%%' || $%[1]d || '%%')", filters.Search)
	}
	if filters.MinAmount != nil {
		addClause("amount >= $%d", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		addClause("amount <= $%d", *filters.MaxAmount)
	}

	sb.WriteString(" ORDER BY date DESC, created_at DESC;")

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	expenses, err := pgx.CollectRows(rows, scanExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to collect expense rows: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) SumExpensesForCategoryMonth(ctx context.Context, userID, category, month string) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM expenses
        WHERE user_id = $1 AND category = $2 AND to_char(date, 'YYYY-MM') = $3;
    `
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID, category, month).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses for category month: %w", err)
	}
	return total, nil
}

func (r *ExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	query := `
        UPDATE expenses
        SET amount = $1, currency = $2, category = $3, date = $4, description = $5,
            tags = $6, receipt = $7, last_updated_at = $8, last_updated_by = $9
        WHERE expense_id = $10 AND user_id = $11;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		expense.Amount,
		expense.Currency,
		expense.Category,
		expense.Date,
		expense.Description,
		expense.Tags,
		expense.Receipt,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
		expense.ExpenseID,
		expense.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	query := `DELETE FROM expenses WHERE expense_id = $1 AND user_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, expenseID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
