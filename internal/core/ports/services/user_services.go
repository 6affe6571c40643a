package services

import (
	"context"

	"github.com/spems-app/spems_backend/internal/core/domain"
	"github.com/spems-app/spems_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser registers a new user with a bcrypt-hashed password and
	// default preferences.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// FindOrCreateOAuthUser resolves a user for an external identity,
	// creating one on first login.
	FindOrCreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
}

// PreferencesSvc manages per-user preferences.
type PreferencesSvc interface {
	GetPreferences(ctx context.Context, userID string) (*domain.UserPreferences, error)
	UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*domain.UserPreferences, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	PreferencesSvc
}
