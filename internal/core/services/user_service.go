package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
	portsrepo "github.com/spems-app/spems_backend/internal/core/ports/repositories"
	"github.com/spems-app/spems_backend/internal/dto"
	"github.com/spems-app/spems_backend/internal/utils"
)

// UserService provides business logic for user accounts and preferences.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, logger *slog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser registers a new user with a hashed password and default
// preferences. A registered email can only be used once.
func (s *UserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, email)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		AuthProvider: "local",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	prefs := domain.DefaultPreferences(userID)
	prefs.AuditFields = user.AuditFields
	if err := s.userRepo.SavePreferences(ctx, prefs); err != nil {
		// The account exists; preferences fall back to defaults on first read.
		s.logger.Error("failed to save default preferences for new user",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	return &user, nil
}

// FindOrCreateOAuthUser resolves the local account for a verified Google
// identity, creating one on first login.
func (s *UserService) FindOrCreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	if info.Email == "" {
		return nil, fmt.Errorf("%w: google profile has no email", apperrors.ErrValidation)
	}
	email := strings.ToLower(info.Email)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up oauth user: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	newUser := domain.User{
		UserID:       userID,
		Email:        email,
		Name:         info.Name,
		AuthProvider: "google",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create oauth user in service: %w", err)
	}

	prefs := domain.DefaultPreferences(userID)
	prefs.AuditFields = newUser.AuditFields
	if err := s.userRepo.SavePreferences(ctx, prefs); err != nil {
		s.logger.Error("failed to save default preferences for oauth user",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("created user from google login", slog.String("user_id", userID))
	return &newUser, nil
}

// GetUserByID retrieves a user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user in service: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email in service: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update to a user's profile.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		user.Name = *req.Name
	}

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user in service: %w", err)
	}
	return user, nil
}

// GetPreferences retrieves the user's preferences, falling back to defaults
// when no preference row exists yet.
func (s *UserService) GetPreferences(ctx context.Context, userID string) (*domain.UserPreferences, error) {
	prefs, err := s.userRepo.FindPreferencesByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultPreferences(userID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to get preferences in service: %w", err)
	}
	return prefs, nil
}

// UpdatePreferences applies a partial update to the user's preferences and
// upserts the result.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*domain.UserPreferences, error) {
	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}
	if req.Currency != nil {
		if !domain.IsSupportedCurrency(*req.Currency) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrencyCode, *req.Currency)
		}
		prefs.Currency = *req.Currency
	}
	if req.BudgetAlerts != nil {
		prefs.BudgetAlerts = *req.BudgetAlerts
	}
	if req.MonthlyReports != nil {
		prefs.MonthlyReports = *req.MonthlyReports
	}
	if req.ExpenseReminders != nil {
		prefs.ExpenseReminders = *req.ExpenseReminders
	}
	if req.Language != nil {
		prefs.Language = *req.Language
	}

	prefs.LastUpdatedAt = time.Now()
	prefs.LastUpdatedBy = userID

	if err := s.userRepo.SavePreferences(ctx, *prefs); err != nil {
		return nil, fmt.Errorf("failed to save preferences in service: %w", err)
	}
	return prefs, nil
}
