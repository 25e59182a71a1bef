// Package config provides configuration management for the prop-edge
// analysis tools.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField checks constraints spanning multiple fields
func validateCrossField(cfg *Config) error {
	if cfg.Analysis.StrongEdgePercent <= cfg.Analysis.ModerateEdgePercent {
		return fmt.Errorf("analysis.strong_edge_percent (%.2f) must exceed analysis.moderate_edge_percent (%.2f)",
			cfg.Analysis.StrongEdgePercent, cfg.Analysis.ModerateEdgePercent)
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	for _, fieldErr := range errs {
		return fmt.Errorf("invalid configuration: field '%s' failed '%s' validation",
			fieldErr.Namespace(), fieldErr.Tag())
	}
	return nil
}
