package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/venuecore/backend/internal/domain/shared/valueobject"
)

// SetupValidator configures gin's validator with JSON field names and the
// custom tags used by the request DTOs. Call once at startup.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON/form tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("currency", validCurrency)
}

func validCurrency(fl validator.FieldLevel) bool {
	return valueobject.Currency(fl.Field().String()).IsValid()
}
