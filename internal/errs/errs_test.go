package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, "FORBIDDEN", NewForbiddenError("x", false).Code)
	assert.Equal(t, "NOT_FOUND", NewNotFoundError("x", false, nil).Code)

	internal := NewInternalServerError()
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", internal.Code)
	assert.False(t, internal.Override)

	code := "INVOICE_INVALID"
	bad := NewBadRequestError("bad", true, &code, []FieldError{{Field: "amount", Error: "is required"}}, nil)
	assert.Equal(t, code, bad.Code)
	assert.Len(t, bad.Errors, 1)

	field := NewFieldValidationError("amount", "must be a number")
	assert.Equal(t, http.StatusBadRequest, field.Status)
	assert.Equal(t, []FieldError{{Field: "amount", Error: "must be a number"}}, field.Errors)
}

func TestHTTPErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewForbiddenError("no", true))
	assert.True(t, errors.Is(err, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))
}
