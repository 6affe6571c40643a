package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spems-app/spems_backend/internal/apperrors"
	portssvc "github.com/spems-app/spems_backend/internal/core/ports/services"
	"github.com/spems-app/spems_backend/internal/dto"
	"github.com/spems-app/spems_backend/internal/middleware"
)

// currencyHandler handles HTTP requests related to currencies and exchange rates.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// RegisterCurrencyRoutes registers routes related to currencies.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("/supported", h.listSupportedCurrencies)
		currencies.GET("/rates/:baseCurrency", h.getExchangeRates)
		currencies.POST("/convert", h.convertCurrency)
	}
}

// listSupportedCurrencies godoc
// @Summary List supported currencies
// @Description Returns the static set of currencies the application supports
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Security BearerAuth
// @Router /currencies/supported [get]
func (h *currencyHandler) listSupportedCurrencies(c *gin.Context) {
	currencies := h.currencyService.ListSupportedCurrencies(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getExchangeRates godoc
// @Summary Get exchange rates for a base currency
// @Description Returns the current rate snapshot, served from cache, the live provider, or static fallback rates
// @Tags currencies
// @Produce  json
// @Param   baseCurrency path string true "Base currency code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRatesResponse
// @Failure 400 {object} map[string]string "Invalid base currency"
// @Failure 404 {object} map[string]string "No rates available for base currency"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rates"
// @Security BearerAuth
// @Router /currencies/rates/{baseCurrency} [get]
func (h *currencyHandler) getExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	baseCurrency := c.Param("baseCurrency")

	snapshot, err := h.currencyService.GetExchangeRates(c.Request.Context(), baseCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrUnsupportedFallbackBase) {
			logger.Warn("No rates available for base currency", slog.String("base_currency", baseCurrency))
			c.JSON(http.StatusNotFound, gin.H{"error": "No exchange rates available for base currency " + baseCurrency})
		} else {
			logger.Error("Failed to get exchange rates", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rates"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRatesResponse(snapshot))
}

// convertCurrency godoc
// @Summary Convert an amount between currencies
// @Description Converts an amount between two supported currencies via USD rates
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertCurrencyRequest true "Conversion details"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input or unsupported currency"
// @Failure 500 {object} map[string]string "Conversion failed"
// @Security BearerAuth
// @Router /currencies/convert [post]
func (h *currencyHandler) convertCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.currencyService.ConvertCurrency(c.Request.Context(), req.From, req.To, req.Amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownCurrencyCode) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrRateUnavailable) {
			logger.Error("Rate unavailable for conversion", slog.String("from", req.From), slog.String("to", req.To))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate unavailable for requested currencies"})
		} else {
			logger.Error("Failed to convert currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert currency"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}
