// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("budget_status", validateBudgetStatus)
		_ = v.RegisterValidation("line_kind", validateLineKind)
	}
}

func validateBudgetStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "draft", "active", "closed":
		return true
	}
	return false
}

func validateLineKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}
