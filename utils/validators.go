package utils

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// InitValidator registers custom rules on Gin's binding validator.
// Must run before the first request is bound.
func InitValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("notblank", ValidateNotBlankRule)
	}
}

// ValidateNotBlankRule rejects strings that are empty or whitespace-only.
// "required" alone lets a title of spaces through.
func ValidateNotBlankRule(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
