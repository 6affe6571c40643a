package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller lacks permission for the resource.
var ErrForbidden = errors.New("forbidden")

// Exchange-rate subsystem errors.

// ErrSourceUnavailable indicates the external rate provider could not be
// reached (transport failure, timeout, or non-2xx response).
var ErrSourceUnavailable = errors.New("rate source unavailable")

// ErrSourceInvalidResponse indicates the provider responded but the payload
// was malformed or reported a failure status.
var ErrSourceInvalidResponse = errors.New("rate source returned invalid response")

// ErrUnsupportedFallbackBase indicates fallback rates were needed but the
// requested base currency has no fallback data.
var ErrUnsupportedFallbackBase = errors.New("no fallback rates for requested base currency")

// ErrRateUnavailable indicates a conversion was requested for a currency
// that has no rate in the active rate table.
var ErrRateUnavailable = errors.New("rate unavailable for currency")

// ErrUnknownCurrencyCode indicates a currency code outside the supported set.
var ErrUnknownCurrencyCode = errors.New("unknown currency code")
