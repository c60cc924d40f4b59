// Package schema implements a tagged-variant validation and serialization
// engine for untyped wire data (decoded JSON).
//
// A Union is a closed set of Variants sharing one discriminator field; the
// discriminator's literal value selects which Variant an input must match.
// Each Variant is an Object: a set of typed fields where required and
// nullable are independent flags. Validation returns either a typed Value
// carrying its Variant identity or an ErrorList with every field-level
// problem accumulated, so callers can report all of them in one response.
//
// Unions and Objects are declared once at startup and are immutable
// afterwards; Validate and Serialize are pure functions over the immutable
// definitions and may be called from any number of goroutines without
// locking.
package schema

// Kind enumerates the declared type of a field value.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
	KindUUID
	KindEnum
	KindObject
	KindUnion
	KindList
	KindMap
)

// String returns the wire-facing name of the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindTime:
		return "timestamp"
	case KindUUID:
		return "uuid"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindUnion:
		return "object"
	case KindList:
		return "array"
	case KindMap:
		return "object"
	default:
		return "unknown"
	}
}

// Type is a field type reference. Exactly one of the auxiliary members is
// set, depending on Kind.
type Type struct {
	Kind   Kind
	Enum   []string // KindEnum: allowed literals
	Object *Object  // KindObject
	Union  *Union   // KindUnion
	Elem   *Type    // KindList element / KindMap value type
}

// String returns the type for string-valued fields.
func String() Type { return Type{Kind: KindString} }

// Int returns the type for integer fields. Validation rejects numbers with a
// fractional part.
func Int() Type { return Type{Kind: KindInt} }

// Float returns the type for floating-point fields. Integer input is widened.
func Float() Type { return Type{Kind: KindFloat} }

// Bool returns the type for boolean fields.
func Bool() Type { return Type{Kind: KindBool} }

// Time returns the type for RFC 3339 timestamp fields.
func Time() Type { return Type{Kind: KindTime} }

// UUID returns the type for UUID-string fields.
func UUID() Type { return Type{Kind: KindUUID} }

// Enum returns a string type restricted to the given literals.
func Enum(values ...string) Type { return Type{Kind: KindEnum, Enum: values} }

// ObjectOf returns the type for a nested object validated against obj.
func ObjectOf(obj *Object) Type { return Type{Kind: KindObject, Object: obj} }

// UnionOf returns the type for a nested tagged union validated against u.
func UnionOf(u *Union) Type { return Type{Kind: KindUnion, Union: u} }

// ListOf returns the type for a sequence of elem values. Empty sequences are
// valid.
func ListOf(elem Type) Type { return Type{Kind: KindList, Elem: &elem} }

// MapOf returns the type for a string-keyed mapping of elem values.
func MapOf(elem Type) Type { return Type{Kind: KindMap, Elem: &elem} }

// Field declares one typed member of an Object.
//
// Required and Nullable are independent:
//   - Required + non-nullable: key must exist, value must not be null.
//   - Required + nullable: key must exist, value may be null.
//   - Optional + non-nullable: key may be absent; if present, not null.
//   - Optional + nullable: key may be absent or null.
//
// Default, when set on an optional field, is materialized into the validated
// Value if the key is absent, and is then emitted on serialization.
type Field struct {
	Name     string
	Type     Type
	Required bool
	Nullable bool
	Default  any
}

// Object is a named shape: an ordered set of typed fields. Objects back both
// plain nested structures and Union variants.
type Object struct {
	name   string
	fields []Field
	byName map[string]int
}

// NewObject declares an object shape. Duplicate field names panic: shapes are
// static declarations and a duplicate is a programming error that should
// abort startup.
func NewObject(name string, fields ...Field) *Object {
	o := &Object{
		name:   name,
		fields: fields,
		byName: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, ok := o.byName[f.Name]; ok {
			panic("schema: duplicate field " + f.Name + " in object " + name)
		}
		o.byName[f.Name] = i
	}
	return o
}

// Name returns the declared object name.
func (o *Object) Name() string { return o.name }

// Fields returns the declared fields in declaration order.
func (o *Object) Fields() []Field { return o.fields }

// Field looks up a field declaration by name.
func (o *Object) Field(name string) (Field, bool) {
	i, ok := o.byName[name]
	if !ok {
		return Field{}, false
	}
	return o.fields[i], true
}

// Variant is one concrete shape of a Union, identified by its discriminator
// literal.
type Variant struct {
	Tag    string
	Object *Object
}

// Union is a closed, ordered set of Variants sharing one discriminator
// field. Discriminator literals are unique within the Union; lookup by
// literal is O(1).
type Union struct {
	name          string
	discriminator string
	variants      []*Variant
	byTag         map[string]*Variant
}

// NewUnion declares an empty union keyed by the given discriminator field.
func NewUnion(name, discriminator string) *Union {
	return &Union{
		name:          name,
		discriminator: discriminator,
		byTag:         make(map[string]*Variant),
	}
}

// Name returns the declared union name.
func (u *Union) Name() string { return u.name }

// Discriminator returns the discriminator field name.
func (u *Union) Discriminator() string { return u.discriminator }

// Register adds a variant under the given discriminator literal. Registering
// a literal twice returns a duplicate_discriminator error: registration is a
// startup-time concern and callers should fail fast.
func (u *Union) Register(tag string, obj *Object) error {
	if _, exists := u.byTag[tag]; exists {
		return &FieldError{
			Code:    CodeDuplicateDiscriminator,
			Message: "discriminator value already registered in union " + u.name,
			Actual:  tag,
		}
	}
	v := &Variant{Tag: tag, Object: obj}
	u.variants = append(u.variants, v)
	u.byTag[tag] = v
	return nil
}

// MustRegister is Register for startup wiring; it panics on duplicates and
// returns the union for chaining.
func (u *Union) MustRegister(tag string, obj *Object) *Union {
	if err := u.Register(tag, obj); err != nil {
		panic(err)
	}
	return u
}

// Variant looks up a variant by its discriminator literal.
func (u *Union) Variant(tag string) (*Variant, bool) {
	v, ok := u.byTag[tag]
	return v, ok
}

// Tags returns the registered discriminator literals in registration order.
func (u *Union) Tags() []string {
	tags := make([]string, 0, len(u.variants))
	for _, v := range u.variants {
		tags = append(tags, v.Tag)
	}
	return tags
}
