package handlers

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

// Custom validators must be registered before any request binding runs, so
// this happens at package init time.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// currencycode accepts any supported ISO 4217 code, case-insensitively.
	_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		return domain.IsSupportedCurrency(strings.ToUpper(fl.Field().String()))
	})
}
