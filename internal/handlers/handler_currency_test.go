package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spems-app/spems_backend/internal/apperrors"
	"github.com/spems-app/spems_backend/internal/core/domain"
	portssvc "github.com/spems-app/spems_backend/internal/core/ports/services"
	"github.com/spems-app/spems_backend/internal/dto"
	"github.com/spems-app/spems_backend/internal/handlers"
	"github.com/spems-app/spems_backend/internal/middleware"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) ListSupportedCurrencies(ctx context.Context) []domain.Currency {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Currency)
}

func (m *MockCurrencyService) GetExchangeRates(ctx context.Context, base string) (domain.RateSnapshot, error) {
	args := m.Called(ctx, base)
	return args.Get(0).(domain.RateSnapshot), args.Error(1)
}

func (m *MockCurrencyService) ConvertCurrency(ctx context.Context, from, to string, amount decimal.Decimal) (domain.ConversionResult, error) {
	args := m.Called(ctx, from, to, amount)
	return args.Get(0).(domain.ConversionResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Test Suite ---
type CurrencyHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCurrencyService *MockCurrencyService
	jwtSecret           string
	userID              string
}

func (suite *CurrencyHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "spems-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CurrencyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCurrencyService = new(MockCurrencyService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCurrencyRoutes(v1, suite.mockCurrencyService)
}

func (suite *CurrencyHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CurrencyHandlerTestSuite) TestListSupportedCurrencies_Success() {
	suite.mockCurrencyService.On("ListSupportedCurrencies", mock.Anything).
		Return(domain.SupportedCurrencies).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/currencies/supported", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)

	var body []dto.CurrencyResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, len(domain.SupportedCurrencies))
	suite.Equal("USD", body[0].Code)
	suite.Equal("US Dollar", body[0].Name)

	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestListSupportedCurrencies_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/currencies/supported", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req) // no Authorization header

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCurrencyService.AssertNotCalled(suite.T(), "ListSupportedCurrencies")
}

func (suite *CurrencyHandlerTestSuite) TestGetExchangeRates_Success() {
	fetchedAt := time.Now().UTC().Truncate(time.Second)
	snapshot := domain.RateSnapshot{
		BaseCurrency: "USD",
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.NewFromFloat(0.92),
			"GBP": decimal.NewFromFloat(0.79),
		},
		FetchedAt: fetchedAt,
		Origin:    domain.RateOriginLive,
	}
	suite.mockCurrencyService.On("GetExchangeRates", mock.Anything, "USD").
		Return(snapshot, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/currencies/rates/USD", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ExchangeRatesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("USD", body.BaseCurrency)
	suite.Equal("live", body.Origin)
	suite.True(body.Rates["EUR"].Equal(decimal.NewFromFloat(0.92)))

	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestGetExchangeRates_InvalidBase() {
	suite.mockCurrencyService.On("GetExchangeRates", mock.Anything, "DOLLARS").
		Return(domain.RateSnapshot{}, apperrors.ErrValidation).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/currencies/rates/DOLLARS", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *CurrencyHandlerTestSuite) TestGetExchangeRates_UnavailableBase() {
	suite.mockCurrencyService.On("GetExchangeRates", mock.Anything, "BTC").
		Return(domain.RateSnapshot{}, apperrors.ErrUnsupportedFallbackBase).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/currencies/rates/BTC", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CurrencyHandlerTestSuite) TestConvertCurrency_Success() {
	amount := decimal.NewFromInt(100)
	result := domain.ConversionResult{
		From:            "EUR",
		To:              "GBP",
		Amount:          amount,
		ConvertedAmount: decimal.NewFromFloat(85.88),
		Rate:            decimal.NewFromFloat(0.8588),
	}
	suite.mockCurrencyService.On("ConvertCurrency",
		mock.Anything, "EUR", "GBP",
		mock.MatchedBy(func(a decimal.Decimal) bool { return a.Equal(amount) }),
	).Return(result, nil).Once()

	payload, _ := json.Marshal(dto.ConvertCurrencyRequest{From: "EUR", To: "GBP", Amount: amount})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/currencies/convert", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ConversionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("EUR", body.From)
	suite.Equal("GBP", body.To)
	suite.True(body.ConvertedAmount.Equal(decimal.NewFromFloat(85.88)))
	suite.True(body.Rate.Equal(decimal.NewFromFloat(0.8588)))

	suite.mockCurrencyService.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestConvertCurrency_UnknownCurrencyRejectedByBinding() {
	body := []byte(`{"from":"EUR","to":"XXX","amount":"100"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/currencies/convert", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := suite.serve(req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCurrencyService.AssertNotCalled(suite.T(), "ConvertCurrency")
}

func (suite *CurrencyHandlerTestSuite) TestConvertCurrency_RateUnavailable() {
	amount := decimal.NewFromInt(25)
	suite.mockCurrencyService.On("ConvertCurrency",
		mock.Anything, "USD", "CHF",
		mock.MatchedBy(func(a decimal.Decimal) bool { return a.Equal(amount) }),
	).Return(domain.ConversionResult{}, apperrors.ErrRateUnavailable).Once()

	payload, _ := json.Marshal(dto.ConvertCurrencyRequest{From: "USD", To: "CHF", Amount: amount})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/currencies/convert", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := suite.serve(req)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

// --- Run Test Suite ---
func TestCurrencyHandler(t *testing.T) {
	suite.Run(t, new(CurrencyHandlerTestSuite))
}
