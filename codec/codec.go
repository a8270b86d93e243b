package codec

import (
	stderrors "errors"

	"github.com/treewire/treewire"
	"github.com/treewire/treewire/errors"
)

// Codec converts one value category to and from the wire tree. Name is
// the declared type name used in diagnostics.
type Codec struct {
	Name   string
	Encode func(v any) (treewire.Node, error)
	Decode func(n treewire.Node) (any, error)
}

// Field drives record conversion for a single named field. The same
// descriptor serves both directions: decode looks the field up by name
// in the incoming children, encode elides the field entirely when its
// value equals Default.
type Field struct {
	Name       string
	Codec      Codec
	Default    any
	HasDefault bool
}

// Unit is the unit value, written as the literal "()".
type Unit struct{}

// Option is an optional value. Options nest: Some(None) is
// Option{Some: true, Value: Option{}}.
type Option struct {
	Value any
	Some  bool
}

// SomeValue wraps v as a present optional.
func SomeValue(v any) Option {
	return Option{Some: true, Value: v}
}

// None is the absent optional.
func None() Option {
	return Option{}
}

// Variant is a raw tagged sum: the discriminator string and the
// undecoded payload nodes. The schema layer maps tags to payload
// codecs; see Tagged and VariantOf.
type Variant struct {
	Tag     string
	Payload []treewire.Node
}

// Tagged is a decoded sum value: the case tag and its payload values
// in declaration order.
type Tagged struct {
	Tag    string
	Values []any
}

// Case describes one variant case for VariantOf: the tag and the
// codecs for its payload positions.
type Case struct {
	Tag   string
	Elems []Codec
}

// pathed prefixes a path segment onto a structured error, leaving
// other errors untouched.
func pathed(err error, seg string) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		withPath := *e
		withPath.Path = append([]string{seg}, e.Path...)
		return &withPath
	}
	return err
}

func reservedContainer(name string) bool {
	switch name {
	case treewire.RecordName, treewire.VariantName, treewire.OptionName:
		return true
	}
	return false
}
