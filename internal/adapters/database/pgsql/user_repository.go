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

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure UserRepository implements the facade
var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

const userColumns = `user_id, email, name, password_hash, auth_provider, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanUser(row pgx.CollectableRow) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.AuthProvider,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
		&u.DeletedAt,
	)
	return u, err
}

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (user_id, email, name, password_hash, auth_provider, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.AuthProvider,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE user_id = $1 AND deleted_at IS NULL;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by ID: %w", err)
	}
	user, err := pgx.CollectOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1 AND deleted_at IS NULL;
    `
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	user, err := pgx.CollectOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET name = $1, last_updated_at = $2, last_updated_by = $3
        WHERE user_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		user.Name,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
		user.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) FindPreferencesByUserID(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	query := `
        SELECT user_id, theme, currency, budget_alerts, monthly_reports, expense_reminders, language,
               created_at, created_by, last_updated_at, last_updated_by
        FROM user_preferences
        WHERE user_id = $1;
    `
	var p domain.UserPreferences
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Theme,
		&p.Currency,
		&p.BudgetAlerts,
		&p.MonthlyReports,
		&p.ExpenseReminders,
		&p.Language,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}
	return &p, nil
}

func (r *UserRepository) SavePreferences(ctx context.Context, prefs domain.UserPreferences) error {
	query := `
        INSERT INTO user_preferences (user_id, theme, currency, budget_alerts, monthly_reports, expense_reminders, language,
                                      created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (user_id) DO UPDATE SET
            theme = EXCLUDED.theme,
            currency = EXCLUDED.currency,
            budget_alerts = EXCLUDED.budget_alerts,
            monthly_reports = EXCLUDED.monthly_reports,
            expense_reminders = EXCLUDED.expense_reminders,
            language = EXCLUDED.language,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err := r.db.Exec(ctx, query,
		prefs.UserID,
		prefs.Theme,
		prefs.Currency,
		prefs.BudgetAlerts,
		prefs.MonthlyReports,
		prefs.ExpenseReminders,
		prefs.Language,
		prefs.CreatedAt,
		prefs.CreatedBy,
		prefs.LastUpdatedAt,
		prefs.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
