package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// iso4217Code reports whether a field is a plausible ISO 4217 currency code:
// exactly three uppercase ASCII letters. Existence against a currency registry
// is not checked; rates simply won't resolve for unknown codes.
func iso4217Code(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// registerCustomValidators attaches custom validation tags to gin's binding engine.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217code", iso4217Code)
	}
}
