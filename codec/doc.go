// Package codec converts schema-described values to and from the
// treewire node model.
//
// # Value Categories
//
// Values move through the codec as untyped any, with one concrete Go
// shape per schema category:
//
//	Category   Go shape
//	──────────────────────────────────────────────
//	bool       bool
//	integers   int8/int16/int32/int64, uint8..uint64
//	floats     float32, float64
//	string     string
//	char       rune
//	unit       Unit
//	list       []any
//	tuple      []any (positional)
//	record     []any (schema field order)
//	option     Option
//	variant    Variant (raw) or Tagged (case table)
//	deferred   *Thunk
//	cell       *Cell
//
// # Codecs
//
// A Codec is a pair of inverse closures plus a type name used in
// diagnostics. Constructors compose:
//
//	c := codec.Record("point", []codec.Field{
//		{Name: "x", Codec: codec.Int32()},
//		{Name: "y", Codec: codec.Int32(), Default: int32(0), HasDefault: true},
//	})
//	node, err := c.Encode([]any{int32(3), int32(0)})
//	val, err := c.Decode(node)
//
// Field descriptor lists are schema-time constants: the codec neither
// creates nor mutates them, and the same Codec value is safe for
// concurrent use. Thunks and Cells are the only stateful values and
// are owned by a single conversion call.
//
// # Wire Shape
//
// Record encoding collapses tree shape so that a bare scalar, a
// one-element list, an optional and a nested container can share one
// child slot without ambiguity. The inverse expansion on decode is
// driven by two lightweight structural markers: the reserved element
// names and the "record"="unwrapped" attribute. See the root package
// documentation for the reserved vocabulary.
//
// # Error Handling
//
// All failures are *errors.Error values carrying the offending node.
// Conversion is fail-fast: no partial trees or values are returned.
package codec
