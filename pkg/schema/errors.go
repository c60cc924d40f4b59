package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies the rule a validation error violated.
type Code string

const (
	// CodeMissingDiscriminator indicates the discriminator field is absent.
	CodeMissingDiscriminator Code = "missing_discriminator"
	// CodeUnknownVariant indicates no variant is registered for the
	// supplied discriminator value.
	CodeUnknownVariant Code = "unknown_variant"
	// CodeMissingField indicates a required field is absent, or a required
	// non-nullable field is null.
	CodeMissingField Code = "missing_field"
	// CodeInvalidField indicates a present value violates a field rule
	// other than its declared type (null where forbidden, enum mismatch).
	CodeInvalidField Code = "invalid_field"
	// CodeTypeMismatch indicates a value of the wrong type.
	CodeTypeMismatch Code = "type_mismatch"
	// CodeDuplicateDiscriminator indicates a registration-time collision of
	// discriminator literals. It never occurs during Validate.
	CodeDuplicateDiscriminator Code = "duplicate_discriminator"
)

// FieldError describes one field-level validation failure with its dotted
// path from the validation root and, where useful, the expected and actual
// values or types.
type FieldError struct {
	Code     Code     `json:"code"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
	Actual   string   `json:"actual,omitempty"`
	Expected []string `json:"expected,omitempty"`
}

// Error formats the failure for display, including code, path, and context.
func (e *FieldError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Actual != "" {
		fmt.Fprintf(&b, " (got: %s)", e.Actual)
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, " (expected: %s)", strings.Join(e.Expected, ", "))
	}
	return b.String()
}

// ErrorList accumulates every field-level failure found while validating one
// input. Validation never stops at the first problem: a caller gets the full
// list in one round trip.
type ErrorList []*FieldError

// Error returns a compact summary of the accumulated failures.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no validation errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Has reports whether any accumulated error carries the given code.
func (l ErrorList) Has(code Code) bool {
	for _, e := range l {
		if e.Code == code {
			return true
		}
	}
	return false
}

// ByPath returns the first error recorded at the given dotted path.
func (l ErrorList) ByPath(path string) (*FieldError, bool) {
	for _, e := range l {
		if e.Path == path {
			return e, true
		}
	}
	return nil, false
}

// Strings flattens the list into display strings, one per failure.
func (l ErrorList) Strings() []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = e.Error()
	}
	return out
}

// AsErrorList unwraps err into an ErrorList if it is one.
func AsErrorList(err error) (ErrorList, bool) {
	var list ErrorList
	if errors.As(err, &list) {
		return list, true
	}
	return nil, false
}

// joinPath appends a field name to a dotted path prefix.
func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
