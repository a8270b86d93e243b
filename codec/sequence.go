package codec

import (
	"strconv"

	"github.com/treewire/treewire"
	"github.com/treewire/treewire/errors"
)

// List converts []any sequences to and from an "l" wrapper element.
func List(elem Codec) Codec {
	name := "list<" + elem.Name + ">"
	return Codec{
		Name: name,
		Encode: func(v any) (treewire.Node, error) {
			vals, ok := v.([]any)
			if !ok {
				return nil, errors.TypeMismatch(nil, v, name)
			}
			children := make([]treewire.Node, 0, len(vals))
			for i, ev := range vals {
				node, err := elem.Encode(ev)
				if err != nil {
					return nil, pathed(err, strconv.Itoa(i))
				}
				children = append(children, node)
			}
			return treewire.Element{Name: treewire.ListName, Children: children}, nil
		},
		Decode: func(n treewire.Node) (any, error) {
			e, ok := n.(treewire.Element)
			if !ok {
				return nil, errors.NotAnElement(n)
			}
			// A node carrying the unwrap marker is a single element
			// already extracted from its record slot, not a wrapper.
			// The marker is consumed here; a nested sequence sees the
			// node as its own wrapper.
			if treewire.Unwrapped(n) {
				v, err := elem.Decode(treewire.ClearUnwrapped(e))
				if err != nil {
					return nil, pathed(err, "0")
				}
				return []any{v}, nil
			}
			out := make([]any, 0, len(e.Children))
			for i, c := range e.Children {
				v, err := elem.Decode(c)
				if err != nil {
					return nil, pathed(err, strconv.Itoa(i))
				}
				out = append(out, v)
			}
			return out, nil
		},
	}
}

// Tuple is a record whose field names are the stringified positions,
// with no defaults. It shares the record algorithm rather than having
// one of its own.
func Tuple(elems ...Codec) Codec {
	fields := make([]Field, len(elems))
	for i, c := range elems {
		fields[i] = Field{Name: strconv.Itoa(i), Codec: c}
	}
	t := Record("tuple", fields)
	t.Name = "tuple"
	return t
}
