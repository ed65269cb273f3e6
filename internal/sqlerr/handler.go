package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/go-invoicing/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// "<table>_<column>_key" or "..._ukey", the names Postgres generates.
var uniqueConstraintRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// errorActions names the suffix of the client error code per violation.
var errorActions = map[Code]string{
	ForeignKeyViolation: "NOT_FOUND",
	UniqueViolation:     "ALREADY_EXISTS",
	NotNullViolation:    "REQUIRED",
	CheckViolation:      "INVALID",
}

// ErrCode reports the Code for err.
//
// Both an already converted *Error and a raw *pgconn.PgError anywhere in the
// chain are recognised; everything else is Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// HandleError converts a database error into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - constraint violations: 400 with a code such as INVOICE_NOT_FOUND
//   - ErrNoRows: 404, naming the entity when the error carries "table:<name>:"
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return violationError(ConvertPgError(pgerr))
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		if table := tableFromMessage(err.Error()); table != "" {
			return errs.NewNotFoundError(entityName(table, "")+" not found", true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

func violationError(e *Error) *errs.HTTPError {
	action, ok := errorActions[e.Code]
	if !ok {
		return errs.NewInternalServerError()
	}
	code := errorCode(e.TableName, action)
	entity := entityName(e.TableName, e.ColumnName)
	column := humanize(e.ColumnName)

	switch e.Code {
	case ForeignKeyViolation:
		// Not overridable: the referenced id came from the client.
		return errs.NewBadRequestError(fmt.Sprintf("The referenced %s does not exist", entity), false, &code, nil, nil)

	case UniqueViolation:
		what := "identifier"
		if col := uniqueColumn(e.ConstraintName); col != "" {
			what = humanize(col)
		}
		return errs.NewBadRequestError(fmt.Sprintf("A %s with this %s already exists", entity, what), true, &code, nil, nil)

	case NotNullViolation:
		if column == "" {
			column = "field"
		}
		fields := []errs.FieldError{{Field: strings.ToLower(e.ColumnName), Error: "is required"}}
		return errs.NewBadRequestError(fmt.Sprintf("The %s is required", column), true, &code, fields, nil)

	default: // CheckViolation
		message := "One or more values do not meet required conditions"
		if column != "" {
			message = fmt.Sprintf("The %s value does not meet required conditions", column)
		}
		return errs.NewBadRequestError(message, true, &code, nil, nil)
	}
}

// errorCode joins the singular table name and action: INVOICE_INVALID.
func errorCode(table, action string) string {
	domain := "RECORD"
	if table != "" {
		domain = strings.ToUpper(singular(table))
	}
	return domain + "_" + action
}

// entityName prefers a "<entity>_id" column, then the table, then "record".
func entityName(table, column string) string {
	if lower := strings.ToLower(column); strings.HasSuffix(lower, "_id") {
		return humanize(strings.TrimSuffix(lower, "_id"))
	}
	if table != "" {
		return humanize(singular(table))
	}
	return "record"
}

func singular(name string) string {
	if len(name) > 1 && strings.HasSuffix(strings.ToLower(name), "s") {
		return name[:len(name)-1]
	}
	return name
}

// humanize turns snake_case into Title Case: "customer_id" -> "Customer Id".
func humanize(text string) string {
	if text == "" {
		return ""
	}
	// A Caser is stateful, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// uniqueColumn infers the column from "unique_<table>_<column>" or
// "<table>_<column>_key".
func uniqueColumn(constraint string) string {
	if rest, ok := strings.CutPrefix(constraint, "unique_"); ok {
		if parts := strings.Split(rest, "_"); len(parts) >= 2 {
			return parts[len(parts)-1]
		}
	}
	if m := uniqueConstraintRe.FindStringSubmatch(constraint); len(m) > 1 {
		return m[1]
	}
	return ""
}

// tableFromMessage extracts <name> from errors wrapped as "table:<name>: ...".
func tableFromMessage(msg string) string {
	_, rest, ok := strings.Cut(msg, "table:")
	if !ok {
		return ""
	}
	table, _, _ := strings.Cut(rest, ":")
	return strings.TrimSpace(table)
}
