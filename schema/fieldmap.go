package schema

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	eng "github.com/reoring/gltfskema/internal/engine"
)

// ErrDuplicateBinding is returned by NewFieldMap when two fields share a wire key.
var ErrDuplicateBinding = errors.New("schema: duplicate field binding")

// Field binds one wire key of entity T to a decode step that writes into *T.
type Field[T any] struct {
	key    string
	decode func(c *Cursor, tok eng.Token, dst *T) error
}

// Key returns the wire key.
func (f Field[T]) Key() string { return f.key }

// Bind associates key with a destination selected by sel. The destination is
// only written after d succeeds.
func Bind[T, V any](key string, d Decoder[V], sel func(*T) *V) Field[T] {
	return Field[T]{key: key, decode: func(c *Cursor, tok eng.Token, dst *T) error {
		v, err := d.Decode(c, tok)
		if err != nil {
			return err
		}
		*sel(dst) = v
		return nil
	}}
}

// Opt binds an optional field. A decoded value is stored behind a fresh
// pointer; absence leaves the destination nil.
func Opt[T, V any](key string, d Decoder[V], sel func(*T) **V) Field[T] {
	return Bind(key, Optional(d), sel)
}

// Fixed binds a fixed-arity array field. sel returns a slice view over the
// destination array; its length is the required element count.
func Fixed[T, V any](key string, elem Decoder[V], sel func(*T) []V) Field[T] {
	return Field[T]{key: key, decode: func(c *Cursor, tok eng.Token, dst *T) error {
		view := sel(dst)
		vs, err := Tuple(elem, len(view)).Decode(c, tok)
		if err != nil {
			return err
		}
		copy(view, vs)
		return nil
	}}
}

// FieldMap is the immutable, ordered set of bindings for one entity type.
// It is itself the Decoder for that entity, so nested objects compose
// directly. A FieldMap is safe for concurrent use.
type FieldMap[T any] struct {
	entity   string
	defaults func() T
	fields   []Field[T]
	index    map[string]int
}

// NewFieldMap builds the bindings for entity. defaults returns a fresh record
// holding every schema default; nil means the zero value.
func NewFieldMap[T any](entity string, defaults func() T, fields ...Field[T]) (*FieldMap[T], error) {
	fm := &FieldMap[T]{
		entity:   entity,
		defaults: defaults,
		fields:   append([]Field[T](nil), fields...),
		index:    make(map[string]int, len(fields)),
	}
	for i, f := range fm.fields {
		if _, dup := fm.index[f.key]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateBinding, entity, f.key)
		}
		fm.index[f.key] = i
	}
	return fm, nil
}

// MustFieldMap is like NewFieldMap but panics on a duplicate binding.
func MustFieldMap[T any](entity string, defaults func() T, fields ...Field[T]) *FieldMap[T] {
	fm, err := NewFieldMap(entity, defaults, fields...)
	if err != nil {
		panic(err)
	}
	return fm
}

// Entity returns the entity name used in diagnostics and errors.
func (m *FieldMap[T]) Entity() string { return m.entity }

// Len returns the number of bindings.
func (m *FieldMap[T]) Len() int { return len(m.fields) }

// Keys returns the wire keys in declaration order.
func (m *FieldMap[T]) Keys() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.key
	}
	return out
}

// Lookup reports whether key is bound.
func (m *FieldMap[T]) Lookup(key string) (Field[T], bool) {
	i, ok := m.index[key]
	if !ok {
		return Field[T]{}, false
	}
	return m.fields[i], true
}

// Defaults returns a fresh record holding the schema defaults.
func (m *FieldMap[T]) Defaults() T {
	if m.defaults == nil {
		var zero T
		return zero
	}
	return m.defaults()
}

// Decode binds the JSON object starting at tok. Members are applied in wire
// order over the defaults; unknown members are logged and skipped. The first
// failing member aborts the decode.
func (m *FieldMap[T]) Decode(c *Cursor, tok eng.Token) (T, error) {
	var zero T
	if tok.Kind != eng.KindBeginObject {
		return zero, c.mismatch(tok, "object")
	}
	out := m.Defaults()
	for {
		kt, err := c.Next()
		if err != nil {
			return zero, err
		}
		if kt.Kind == eng.KindEndObject {
			return out, nil
		}
		vt, err := c.Next()
		if err != nil {
			return zero, err
		}
		c.push(kt.String)
		f, ok := m.Lookup(kt.String)
		if !ok {
			c.log.Info("unknown property",
				zap.String("entity", m.entity),
				zap.String("key", kt.String),
				zap.String("path", c.Pointer()))
			err = c.Skip(vt)
		} else {
			restore := c.enter(m.entity, kt.String)
			err = f.decode(c, vt, &out)
			restore()
		}
		c.pop()
		if err != nil {
			return zero, err
		}
	}
}
