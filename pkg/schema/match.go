package schema

import (
	"fmt"
	"strings"
)

// Handler processes a validated value of one specific variant.
type Handler[T any] func(*Value) (T, error)

// Match dispatches validated union values to per-variant handlers. A Match
// is only obtainable through Build, which enforces that every registered
// variant has exactly one handler, so dispatch can never hit an unhandled
// case at call time.
type Match[T any] struct {
	union    *Union
	handlers map[string]Handler[T]
}

// MatchBuilder accumulates per-variant handlers before exhaustiveness is
// checked.
type MatchBuilder[T any] struct {
	union    *Union
	handlers map[string]Handler[T]
	errs     []string
}

// NewMatch starts building an exhaustive dispatch over the union.
func NewMatch[T any](u *Union) *MatchBuilder[T] {
	return &MatchBuilder[T]{
		union:    u,
		handlers: make(map[string]Handler[T], len(u.variants)),
	}
}

// Case registers the handler for one variant tag. Unknown tags and duplicate
// registrations are recorded and surfaced by Build.
func (b *MatchBuilder[T]) Case(tag string, h Handler[T]) *MatchBuilder[T] {
	if _, ok := b.union.Variant(tag); !ok {
		b.errs = append(b.errs, fmt.Sprintf("no variant %q in union %s", tag, b.union.Name()))
		return b
	}
	if _, dup := b.handlers[tag]; dup {
		b.errs = append(b.errs, fmt.Sprintf("duplicate handler for variant %q", tag))
		return b
	}
	b.handlers[tag] = h
	return b
}

// Build checks exhaustiveness and returns the dispatcher. A handler set
// missing any registered variant fails here, at setup time, never at first
// invocation.
func (b *MatchBuilder[T]) Build() (*Match[T], error) {
	errs := b.errs
	var missing []string
	for _, tag := range b.union.Tags() {
		if _, ok := b.handlers[tag]; !ok {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Sprintf("missing handlers for variants: %s", strings.Join(missing, ", ")))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("schema: match over union %s is not exhaustive: %s",
			b.union.Name(), strings.Join(errs, "; "))
	}
	return &Match[T]{union: b.union, handlers: b.handlers}, nil
}

// MustBuild is Build for startup wiring; it panics on a non-exhaustive set.
func (b *MatchBuilder[T]) MustBuild() *Match[T] {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

// Apply dispatches a validated value to its variant's handler.
func (m *Match[T]) Apply(v *Value) (T, error) {
	var zero T
	if v.Union() != m.union {
		return zero, fmt.Errorf("schema: value of union %s dispatched against match for %s",
			v.Union().Name(), m.union.Name())
	}
	h, ok := m.handlers[v.Variant()]
	if !ok {
		// Unreachable for values validated by this union: Build proved the
		// handler set covers every variant.
		return zero, fmt.Errorf("schema: no handler for variant %q", v.Variant())
	}
	return h(v)
}
