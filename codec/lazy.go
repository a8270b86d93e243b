package codec

import (
	"github.com/treewire/treewire"
	"github.com/treewire/treewire/errors"
)

// Thunk is a deferred value evaluated at most once. The closure is
// released after the first Force so captured state can be collected.
// A Thunk belongs to a single conversion call and must not be shared
// across concurrent conversions.
type Thunk struct {
	fn  func() any
	val any
}

// Defer builds an unevaluated thunk.
func Defer(fn func() any) *Thunk {
	return &Thunk{fn: fn}
}

// Resolved builds an already-evaluated thunk, as decode produces.
func Resolved(v any) *Thunk {
	return &Thunk{val: v}
}

// Force evaluates the thunk on first call and returns the memoized
// result thereafter.
func (t *Thunk) Force() any {
	if t.fn != nil {
		t.val = t.fn()
		t.fn = nil
	}
	return t.val
}

// Forced reports whether the thunk has been evaluated.
func (t *Thunk) Forced() bool {
	return t.fn == nil
}

// Cell is a single-owner mutable box. Decode creates it, encode reads
// it; it is never aliased across conversions.
type Cell struct {
	Value any
}

// NewCell builds a cell holding v.
func NewCell(v any) *Cell {
	return &Cell{Value: v}
}

// LazyOf converts *Thunk values. Encoding forces the thunk; decoding
// yields a resolved thunk.
func LazyOf(inner Codec) Codec {
	name := "lazy<" + inner.Name + ">"
	return Codec{
		Name: name,
		Encode: func(v any) (treewire.Node, error) {
			t, ok := v.(*Thunk)
			if !ok || t == nil {
				return nil, errors.TypeMismatch(nil, v, name)
			}
			return inner.Encode(t.Force())
		},
		Decode: func(n treewire.Node) (any, error) {
			v, err := inner.Decode(n)
			if err != nil {
				return nil, err
			}
			return Resolved(v), nil
		},
	}
}

// CellOf converts *Cell values through the boxed value's codec.
func CellOf(inner Codec) Codec {
	name := "ref<" + inner.Name + ">"
	return Codec{
		Name: name,
		Encode: func(v any) (treewire.Node, error) {
			c, ok := v.(*Cell)
			if !ok || c == nil {
				return nil, errors.TypeMismatch(nil, v, name)
			}
			return inner.Encode(c.Value)
		},
		Decode: func(n treewire.Node) (any, error) {
			v, err := inner.Decode(n)
			if err != nil {
				return nil, err
			}
			return NewCell(v), nil
		},
	}
}
