// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or numeric amounts) defined in struct tags
// and extracts validation errors into a format the client can
// understand.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the process-wide validator.
//
// Field names in errors come from the `form` tag, then `json`, so they match
// what the client actually submitted ("customerId", not "CustomerID").
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json", "param"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	return Validator().Struct(v)
}
