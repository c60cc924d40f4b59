// Package httputil centralizes JSON response writing and request decoding so
// handlers stay thin and error envelopes stay consistent.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	dErrors "storefront/pkg/domain-errors"
	"storefront/pkg/schema"
)

// Validatable is implemented by request types that validate and normalize
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON error envelope. FieldErrors is populated only for
// schema validation failures, carrying the full accumulated list so clients
// can fix every problem in one round trip.
type errorBody struct {
	Error            string              `json:"error"`
	ErrorDescription string              `json:"error_description,omitempty"`
	FieldErrors      []*schema.FieldError `json:"field_errors,omitempty"`
}

// WriteError translates an error into its HTTP response. Schema validation
// failures render as 422 with per-field detail; domain errors map by code;
// internal errors omit the description so internals never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	var list schema.ErrorList
	if errors.As(err, &list) {
		WriteJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:            string(dErrors.CodeValidation),
			ErrorDescription: "request body failed validation",
			FieldErrors:      list,
		})
		return
	}

	code := dErrors.CodeOf(err)
	body := errorBody{Error: string(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body.ErrorDescription = de.Message
		}
	}
	WriteJSON(w, statusFor(code), body)
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeInvariantViolation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Decode parses the JSON request body into T and runs its Validate hook. On
// failure it writes the error response and returns false.
func Decode[T Validatable](w http.ResponseWriter, r *http.Request) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		var zero T
		return zero, false
	}
	if err := req.Validate(); err != nil {
		WriteError(w, err)
		var zero T
		return zero, false
	}
	return req, true
}

// Pagination reads page/size query parameters, applying defaults and capping
// the page size at 100.
func Pagination(r *http.Request) (page, size int) {
	page, size = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && v > 0 {
		size = min(v, 100)
	}
	return page, size
}

// DecodeRaw parses the JSON request body into the untyped mapping the schema
// engine validates. Used by endpoints whose body is a tagged union.
func DecodeRaw(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return body, true
}
