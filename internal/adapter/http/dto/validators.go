package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"points-exchange/internal/core/domain"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("program", validateProgram)
	}
}

// validateProgram accepts only the closed set of loyalty program codes.
// Matching is case-sensitive: programs are always upper-case on the wire.
func validateProgram(fl validator.FieldLevel) bool {
	_, ok := domain.ParseProgram(fl.Field().String())
	return ok
}
