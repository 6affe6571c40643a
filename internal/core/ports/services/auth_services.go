package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// TokenSvcFacade issues and validates access tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry instant.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleOAuthSvcFacade wraps the Google OAuth code/token exchange used by
// the frontend login flow.
type GoogleOAuthSvcFacade interface {
	GetGoogleLoginURL(ctx context.Context, state string) string
	GenerateStateString(ctx context.Context) (string, error)
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
