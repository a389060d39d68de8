// Package validation checks navigation settings and map definitions
// against their struct tag constraints.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/campusnav/internal/core/domain"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// ValidateSettings validates navigation settings.
// Failures wrap domain.ErrInvalidSettings.
func ValidateSettings(s *domain.NavigationSettings) error {
	if s == nil {
		return fmt.Errorf("%w: settings cannot be nil", domain.ErrInvalidSettings)
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidSettings, formatValidationError(err))
	}
	return nil
}

// ValidateMapDefinition validates the schema of a map definition.
// Graph invariants such as closed-world edges are checked by
// domain.NewCampusMap. Failures wrap domain.ErrInvalidMap.
func ValidateMapDefinition(def *domain.MapDefinition) error {
	if def == nil {
		return fmt.Errorf("%w: definition cannot be nil", domain.ErrInvalidMap)
	}
	if err := validate.Struct(def); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidMap, formatValidationError(err))
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %v", field, param, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
