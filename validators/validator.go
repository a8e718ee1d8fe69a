package validators

import (
	"github.com/go-playground/validator/v10"
	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
)

// CustomValidator adapts go-playground/validator to echo's Validator
// interface. Failures surface as 400 errors carrying the first violation.
type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new CustomValidator
func NewValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

// Validate validates a bound request struct
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return apperrors.NewValidation(verrs[0].Error())
		}
		return apperrors.NewValidation(err.Error())
	}
	return nil
}
