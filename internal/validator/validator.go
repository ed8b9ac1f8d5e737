// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_type", validateExpenseType)
		_ = v.RegisterValidation("risk_tolerance", validateRiskTolerance)
		_ = v.RegisterValidation("consent_scope", validateConsentScope)
	}
}

func validateExpenseType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fixed", "variable":
		return true
	}
	return false
}

func validateRiskTolerance(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "low", "medium", "high":
		return true
	}
	return false
}

func validateConsentScope(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "read_statements", "share_with_partner", "ai_training_opt_in":
		return true
	}
	return false
}
