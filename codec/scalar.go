package codec

import (
	"strconv"
	"unicode/utf8"

	"github.com/treewire/treewire"
	"github.com/treewire/treewire/errors"
)

// scalarContent extracts the leaf text of a scalar element. An empty
// element decodes as the empty string. Nested elements, multiple
// children, or a bare text node at top level are not scalars.
func scalarContent(typeName string, n treewire.Node) (string, error) {
	e, ok := n.(treewire.Element)
	if !ok {
		return "", errors.NotAScalar(typeName, n)
	}
	switch len(e.Children) {
	case 0:
		return "", nil
	case 1:
		if t, ok := e.Children[0].(treewire.Text); ok {
			return t.Content, nil
		}
	}
	return "", errors.NotAScalar(typeName, e)
}

// scalar builds a codec for one primitive kind from an exact inverse
// pair of string conversions. parse receives the offending node so
// grammar violations can carry it.
func scalar[T any](name string, format func(T) string, parse func(s string, n treewire.Node) (T, error)) Codec {
	return Codec{
		Name: name,
		Encode: func(v any) (treewire.Node, error) {
			tv, ok := v.(T)
			if !ok {
				return nil, errors.TypeMismatch(nil, v, name)
			}
			return treewire.Elem(treewire.ScalarName, treewire.Txt(format(tv))), nil
		},
		Decode: func(n treewire.Node) (any, error) {
			s, err := scalarContent(name, n)
			if err != nil {
				return nil, err
			}
			tv, err := parse(s, n)
			if err != nil {
				return nil, err
			}
			return tv, nil
		},
	}
}

// Bool converts via the canonical "true"/"false" literals only.
func Bool() Codec {
	return scalar("bool",
		strconv.FormatBool,
		func(s string, n treewire.Node) (bool, error) {
			switch s {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
			return false, errors.InvalidLiteral("bool", s, n, nil)
		})
}

func signed[T int8 | int16 | int32 | int64](name string, bits int) Codec {
	return scalar(name,
		func(v T) string { return strconv.FormatInt(int64(v), 10) },
		func(s string, n treewire.Node) (T, error) {
			v, err := strconv.ParseInt(s, 10, bits)
			if err != nil {
				return 0, errors.InvalidLiteral(name, s, n, err)
			}
			return T(v), nil
		})
}

func unsigned[T uint8 | uint16 | uint32 | uint64](name string, bits int) Codec {
	return scalar(name,
		func(v T) string { return strconv.FormatUint(uint64(v), 10) },
		func(s string, n treewire.Node) (T, error) {
			v, err := strconv.ParseUint(s, 10, bits)
			if err != nil {
				return 0, errors.InvalidLiteral(name, s, n, err)
			}
			return T(v), nil
		})
}

func Int8() Codec  { return signed[int8]("int8", 8) }
func Int16() Codec { return signed[int16]("int16", 16) }
func Int32() Codec { return signed[int32]("int32", 32) }
func Int64() Codec { return signed[int64]("int64", 64) }

func Uint8() Codec  { return unsigned[uint8]("uint8", 8) }
func Uint16() Codec { return unsigned[uint16]("uint16", 16) }
func Uint32() Codec { return unsigned[uint32]("uint32", 32) }
func Uint64() Codec { return unsigned[uint64]("uint64", 64) }

// Float32 and Float64 use shortest round-trip-safe decimal formatting.
func Float32() Codec {
	return scalar("float32",
		func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) },
		func(s string, n treewire.Node) (float32, error) {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return 0, errors.InvalidLiteral("float32", s, n, err)
			}
			return float32(v), nil
		})
}

func Float64() Codec {
	return scalar("float64",
		func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		func(s string, n treewire.Node) (float64, error) {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, errors.InvalidLiteral("float64", s, n, err)
			}
			return v, nil
		})
}

func String() Codec {
	return scalar("string",
		func(v string) string { return v },
		func(s string, _ treewire.Node) (string, error) { return s, nil })
}

// Char requires the decoded content to hold exactly one character.
func Char() Codec {
	return scalar("char",
		func(v rune) string { return string(v) },
		func(s string, n treewire.Node) (rune, error) {
			if utf8.RuneCountInString(s) != 1 {
				return 0, errors.InvalidCharLength(s, n)
			}
			r, _ := utf8.DecodeRuneInString(s)
			return r, nil
		})
}

// UnitCodec requires the canonical literal "()".
func UnitCodec() Codec {
	return scalar("unit",
		func(Unit) string { return "()" },
		func(s string, n treewire.Node) (Unit, error) {
			if s != "()" {
				return Unit{}, errors.InvalidUnit(s, n)
			}
			return Unit{}, nil
		})
}
