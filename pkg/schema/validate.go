package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Validate checks input against the union: the discriminator field selects
// the variant and every declared field of that variant is validated. On
// success the returned Value carries the matched variant identity; on failure
// the error is an ErrorList with every field-level problem accumulated.
func (u *Union) Validate(input map[string]any) (*Value, error) {
	v, errs := u.validateAt(input, "")
	if len(errs) > 0 {
		return nil, errs
	}
	return v, nil
}

// Validate checks input against a plain object shape (no discriminator).
func (o *Object) Validate(input map[string]any) (*Value, error) {
	v, errs := o.validateAt(input, "", nil, nil)
	if len(errs) > 0 {
		return nil, errs
	}
	return v, nil
}

func (u *Union) validateAt(input map[string]any, path string) (*Value, ErrorList) {
	raw, ok := input[u.discriminator]
	if !ok {
		return nil, ErrorList{&FieldError{
			Code:    CodeMissingDiscriminator,
			Path:    joinPath(path, u.discriminator),
			Message: "discriminator field is required",
		}}
	}

	// Discriminator comparison is exact, case-sensitive string equality; a
	// non-string value can never match a registered literal.
	tag, _ := raw.(string)
	variant, ok := u.byTag[tag]
	if !ok {
		return nil, ErrorList{&FieldError{
			Code:     CodeUnknownVariant,
			Path:     joinPath(path, u.discriminator),
			Message:  "no variant registered for discriminator value in union " + u.name,
			Actual:   fmt.Sprintf("%v", raw),
			Expected: u.Tags(),
		}}
	}

	return variant.Object.validateAt(input, path, u, variant)
}

func (o *Object) validateAt(input map[string]any, path string, union *Union, variant *Variant) (*Value, ErrorList) {
	var errs ErrorList
	fields := make(map[string]any, len(o.fields))

	for _, f := range o.fields {
		fieldPath := joinPath(path, f.Name)
		raw, present := input[f.Name]

		if !present {
			switch {
			case f.Required:
				errs = append(errs, &FieldError{
					Code:    CodeMissingField,
					Path:    fieldPath,
					Message: "required field is missing",
				})
			case f.Default != nil:
				fields[f.Name] = defaultValue(f.Default)
			}
			continue
		}

		if raw == nil {
			if !f.Nullable {
				if f.Required {
					errs = append(errs, &FieldError{
						Code:    CodeMissingField,
						Path:    fieldPath,
						Message: "required field must not be null",
					})
				} else {
					errs = append(errs, &FieldError{
						Code:    CodeInvalidField,
						Path:    fieldPath,
						Message: "field must not be null when present",
					})
				}
				continue
			}
			fields[f.Name] = nil
			continue
		}

		value, fieldErrs := checkValue(raw, f.Type, fieldPath)
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		fields[f.Name] = value
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &Value{union: union, variant: variant, object: o, fields: fields}, nil
}

// checkValue validates a non-null raw value against a declared type and
// returns its normalized form. Nested objects and unions recurse with the
// field path as prefix, so their failures carry full dotted paths.
func checkValue(raw any, t Type, path string) (any, ErrorList) {
	switch t.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, mismatch(path, "string", raw)
		}
		return s, nil

	case KindInt:
		n, ok := asInt(raw)
		if !ok {
			return nil, mismatch(path, "integer", raw)
		}
		return n, nil

	case KindFloat:
		f, ok := asFloat(raw)
		if !ok {
			return nil, mismatch(path, "number", raw)
		}
		return f, nil

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, mismatch(path, "boolean", raw)
		}
		return b, nil

	case KindTime:
		switch v := raw.(type) {
		case time.Time:
			return v, nil
		case string:
			ts, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return nil, ErrorList{&FieldError{
					Code:     CodeTypeMismatch,
					Path:     path,
					Message:  "value is not a valid RFC 3339 timestamp",
					Actual:   v,
					Expected: []string{"timestamp"},
				}}
			}
			return ts, nil
		default:
			return nil, mismatch(path, "timestamp", raw)
		}

	case KindUUID:
		switch v := raw.(type) {
		case uuid.UUID:
			return v, nil
		case string:
			id, err := uuid.Parse(v)
			if err != nil {
				return nil, ErrorList{&FieldError{
					Code:     CodeTypeMismatch,
					Path:     path,
					Message:  "value is not a valid UUID",
					Actual:   v,
					Expected: []string{"uuid"},
				}}
			}
			return id, nil
		default:
			return nil, mismatch(path, "uuid", raw)
		}

	case KindEnum:
		s, ok := raw.(string)
		if !ok {
			return nil, mismatch(path, "string", raw)
		}
		for _, allowed := range t.Enum {
			if s == allowed {
				return s, nil
			}
		}
		return nil, ErrorList{&FieldError{
			Code:     CodeInvalidField,
			Path:     path,
			Message:  "value is not one of the allowed literals",
			Actual:   s,
			Expected: t.Enum,
		}}

	case KindObject:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, mismatch(path, "object", raw)
		}
		nested, errs := t.Object.validateAt(m, path, nil, nil)
		if len(errs) > 0 {
			return nil, errs
		}
		return nested, nil

	case KindUnion:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, mismatch(path, "object", raw)
		}
		nested, errs := t.Union.validateAt(m, path)
		if len(errs) > 0 {
			return nil, errs
		}
		return nested, nil

	case KindList:
		items, ok := raw.([]any)
		if !ok {
			return nil, mismatch(path, "array", raw)
		}
		var errs ErrorList
		out := make([]any, 0, len(items))
		for i, item := range items {
			itemPath := fmt.Sprintf("%s.%d", path, i)
			if item == nil {
				errs = append(errs, &FieldError{
					Code:    CodeInvalidField,
					Path:    itemPath,
					Message: "array elements must not be null",
				})
				continue
			}
			value, itemErrs := checkValue(item, *t.Elem, itemPath)
			if len(itemErrs) > 0 {
				errs = append(errs, itemErrs...)
				continue
			}
			out = append(out, value)
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return out, nil

	case KindMap:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, mismatch(path, "object", raw)
		}
		var errs ErrorList
		out := make(map[string]any, len(m))
		for key, item := range m {
			itemPath := joinPath(path, key)
			if item == nil {
				out[key] = nil
				continue
			}
			value, itemErrs := checkValue(item, *t.Elem, itemPath)
			if len(itemErrs) > 0 {
				errs = append(errs, itemErrs...)
				continue
			}
			out[key] = value
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return out, nil

	default:
		return nil, ErrorList{&FieldError{
			Code:    CodeTypeMismatch,
			Path:    path,
			Message: "field has an unsupported declared type",
		}}
	}
}

func mismatch(path, expected string, raw any) ErrorList {
	return ErrorList{&FieldError{
		Code:     CodeTypeMismatch,
		Path:     path,
		Message:  "value has the wrong type",
		Actual:   typeName(raw),
		Expected: []string{expected},
	}}
}

// typeName reports the wire-level type of a decoded JSON value.
func typeName(raw any) string {
	switch raw.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int32, int64, json.Number:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", raw)
	}
}

// asInt accepts the integer representations a JSON decoder can produce.
// Numbers with a fractional part are rejected: the schema said integer.
func asInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if math.Trunc(v) != v || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// defaultValue materializes a declared default. Maps and slices are shallow
// copied so concurrent requests never share mutable state.
func defaultValue(d any) any {
	switch v := d.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = item
		}
		return out
	case []any:
		out := make([]any, len(v))
		copy(out, v)
		return out
	default:
		return d
	}
}
