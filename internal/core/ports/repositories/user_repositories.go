package repositories

import (
	"context"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
}

// PreferencesRepository manages per-user preference rows.
type PreferencesRepository interface {
	FindPreferencesByUserID(ctx context.Context, userID string) (*domain.UserPreferences, error)
	// SavePreferences upserts the preference row for prefs.UserID.
	SavePreferences(ctx context.Context, prefs domain.UserPreferences) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	PreferencesRepository
}
