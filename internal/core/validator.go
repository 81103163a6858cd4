package core

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"raincheck/internal/types"
)

// Validator wraps go-playground/validator and translates field-level failures
// into the application error taxonomy so handlers never surface raw validator
// messages.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a new Validator.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		validate: validator.New(),
		logger:   logger,
	}
}

// ValidateStruct validates dst against its `validate` struct tags. The first
// failing field determines the returned AppError:
//   - tag "email"    -> validation_invalid_email
//   - anything else  -> validation_missing_required_field
func (v *Validator) ValidateStruct(dst any) error {
	err := v.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "validation failed", err)
	}

	fe := fieldErrs[0]
	if fe.Tag() == "email" {
		return types.NewAppErrorWithDetails(
			types.ErrCodeValidationInvalidEmail,
			"invalid email address",
			nil,
			map[string]any{"field": fe.Field()},
		)
	}
	return types.NewAppErrorWithDetails(
		types.ErrCodeValidationMissingField,
		"missing or invalid required field",
		nil,
		map[string]any{"field": fe.Field()},
	)
}

// ValidateEmail checks a single address against the "required,email" rules.
// Used by the notification history read path, which takes the address as a
// query parameter rather than a struct.
func (v *Validator) ValidateEmail(email string) error {
	if email == "" {
		return types.NewAppError(
			types.ErrCodeValidationMissingField,
			"email parameter is required",
			nil,
		)
	}
	if err := v.validate.Var(email, "email"); err != nil {
		return types.NewAppError(
			types.ErrCodeValidationInvalidEmail,
			"invalid email address",
			nil,
		)
	}
	return nil
}
