package services

import (
	"log/slog"

	"github.com/spems-app/spems_backend/internal/adapters/cache"
	"github.com/spems-app/spems_backend/internal/adapters/exchangerate"
	portsrepo "github.com/spems-app/spems_backend/internal/core/ports/repositories"
	portssvc "github.com/spems-app/spems_backend/internal/core/ports/services"
	"github.com/spems-app/spems_backend/internal/platform/config"
	"github.com/spems-app/spems_backend/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The currency service owns the rate cache; it is created here and
	// shared by nothing else.
	rateSource := exchangerate.NewClient(cfg.ExchangeRateAPIBaseURL, cfg.ExchangeRateAPIKey, cfg.ExchangeRateRequestTimeout)
	rateCache := cache.NewMemoryCache(cfg.ExchangeRateCacheTTL)
	fallback := exchangerate.NewStaticFallback()
	container.Currency = NewCurrencyService(rateSource, rateCache, fallback, m, logger)

	container.Expense = NewExpenseService(repos.ExpenseRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.ExpenseRepo)
	container.User = NewUserService(repos.UserRepo, logger)

	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)
	_ portssvc.ExpenseSvcFacade  = (*ExpenseService)(nil)
	_ portssvc.BudgetSvcFacade   = (*BudgetService)(nil)
	_ portssvc.UserSvcFacade     = (*UserService)(nil)
)
