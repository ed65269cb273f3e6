package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/deppfellow/go-invoicing/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - define a request struct with validator tags (`validate:"required,numeric"`)
//   - implement Validate() error that calls validation.Struct(req)
//   - return validator.ValidationErrors, or CustomValidationErrors for rules
//     tags cannot express
type Validatable interface {
	Validate() error
}

// CustomValidationError is a single validation issue for a specific field,
// used for rules that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Path params, query params (GET/DELETE) and the form or JSON body are bound
// by echo's default binder. Validation failures come back as a 400
// *errs.HTTPError with one entry per field.
//
// payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindErrorMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request body"
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, e := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: e.Field(),
			Error: fieldMessage(e),
		})
	}

	return "Validation failed", fieldErrors
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"

	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "numeric":
		return "must be a number"

	case "email":
		return "must be a valid email address"

	case "uuid":
		return "must be a valid UUID"

	case "dive":
		return "some items are invalid"
	}

	if err.Param() != "" {
		return fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
	}
	return fmt.Sprintf("%s: %s", err.Field(), err.Tag())
}

// AsHTTPError converts a validator or custom validation failure into a 400.
// It reports false for any other error.
func AsHTTPError(err error) (*errs.HTTPError, bool) {
	var validationErrors validator.ValidationErrors
	var customValidationErrors CustomValidationErrors
	if !errors.As(err, &validationErrors) && !errors.As(err, &customValidationErrors) {
		return nil, false
	}

	msg, fieldErrors := extractValidationError(err)
	return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil), true
}
