package schema

import (
	"time"

	"github.com/google/uuid"
)

// Value is the typed result of a successful validation. It carries the
// matched variant identity (for exhaustive dispatch) and the validated field
// values. A field key present with a nil value means the input supplied an
// explicit null; an absent key means the field was omitted and no default
// applied.
type Value struct {
	union   *Union
	variant *Variant
	object  *Object
	fields  map[string]any
}

// Union returns the union this value was validated against, or nil for a
// plain object.
func (v *Value) Union() *Union { return v.union }

// Variant returns the matched discriminator literal, or "" for a plain
// object.
func (v *Value) Variant() string {
	if v.variant == nil {
		return ""
	}
	return v.variant.Tag
}

// Object returns the shape this value was validated against.
func (v *Value) Object() *Object { return v.object }

// Get returns the validated value for a field and whether the field is set
// (present in the input or materialized from a default). Nested objects and
// unions are returned as *Value.
func (v *Value) Get(name string) (any, bool) {
	val, ok := v.fields[name]
	return val, ok
}

// IsNull reports whether the field was supplied as an explicit null.
func (v *Value) IsNull(name string) bool {
	val, ok := v.fields[name]
	return ok && val == nil
}

// GetString returns a string field value.
func (v *Value) GetString(name string) (string, bool) {
	s, ok := v.fields[name].(string)
	return s, ok
}

// GetInt returns an integer field value.
func (v *Value) GetInt(name string) (int64, bool) {
	n, ok := v.fields[name].(int64)
	return n, ok
}

// GetFloat returns a number field value.
func (v *Value) GetFloat(name string) (float64, bool) {
	f, ok := v.fields[name].(float64)
	return f, ok
}

// GetBool returns a boolean field value.
func (v *Value) GetBool(name string) (bool, bool) {
	b, ok := v.fields[name].(bool)
	return b, ok
}

// GetTime returns a timestamp field value.
func (v *Value) GetTime(name string) (time.Time, bool) {
	t, ok := v.fields[name].(time.Time)
	return t, ok
}

// GetUUID returns a UUID field value.
func (v *Value) GetUUID(name string) (uuid.UUID, bool) {
	id, ok := v.fields[name].(uuid.UUID)
	return id, ok
}

// GetValue returns a nested object or union field value.
func (v *Value) GetValue(name string) (*Value, bool) {
	nested, ok := v.fields[name].(*Value)
	return nested, ok
}

// GetList returns a sequence field value.
func (v *Value) GetList(name string) ([]any, bool) {
	items, ok := v.fields[name].([]any)
	return items, ok
}

// GetMap returns a mapping field value.
func (v *Value) GetMap(name string) (map[string]any, bool) {
	m, ok := v.fields[name].(map[string]any)
	return m, ok
}
