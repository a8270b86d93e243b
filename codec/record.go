package codec

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/treewire/treewire"
	"github.com/treewire/treewire/errors"
)

// Record converts []any records, field values in schema order, driven
// by the ordered descriptor list. Incoming children may appear in any
// order or be absent when a default exists; lookup is by name.
func Record(name string, fields []Field) Codec {
	return Codec{
		Name:   name,
		Encode: func(v any) (treewire.Node, error) { return encodeRecord(name, fields, v) },
		Decode: func(n treewire.Node) (any, error) { return decodeRecord(name, fields, n) },
	}
}

func encodeRecord(name string, fields []Field, v any) (treewire.Node, error) {
	vals, ok := v.([]any)
	if !ok || len(vals) != len(fields) {
		return nil, errors.TypeMismatch(nil, v, name)
	}
	var children []treewire.Node
	for i, f := range fields {
		// Defaults round-trip as omission, not as data.
		if f.HasDefault && reflect.DeepEqual(vals[i], f.Default) {
			continue
		}
		node, err := f.Codec.Encode(vals[i])
		if err != nil {
			return nil, pathed(err, f.Name)
		}
		slot, err := intoFieldSlot(f.Name, node)
		if err != nil {
			return nil, pathed(err, f.Name)
		}
		children = append(children, slot...)
	}
	return treewire.Element{Name: treewire.RecordName, Children: children}, nil
}

// intoFieldSlot turns one encoded field value into the child nodes it
// occupies in the record element. A reserved container keeps its
// children under a single element renamed to the field; its own
// wrapper name was structural, not data. Anything else promotes its
// children one level, each re-tagged with the field name, which is
// what lets a later decode tell one element from a one-element
// wrapper.
func intoFieldSlot(field string, n treewire.Node) ([]treewire.Node, error) {
	e, ok := n.(treewire.Element)
	if !ok {
		return nil, errors.MustBeElement(n)
	}
	if reservedContainer(e.Name) {
		return []treewire.Node{treewire.Retag(e, field)}, nil
	}
	out := make([]treewire.Node, 0, len(e.Children))
	for _, c := range e.Children {
		switch cv := c.(type) {
		case treewire.Element:
			out = append(out, treewire.Retag(cv, field))
		case treewire.Text:
			out = append(out, treewire.Element{Name: field, Children: []treewire.Node{cv}})
		}
	}
	return out, nil
}

func decodeRecord(name string, fields []Field, n treewire.Node) (any, error) {
	e, ok := n.(treewire.Element)
	if !ok {
		return nil, errors.NotARecord(n)
	}
	m := collectFields(e)
	Logger().Debug("decode record",
		zap.String("type", name),
		zap.String("element", e.Name),
		zap.Int("fields", len(fields)))

	out := make([]any, len(fields))
	for i, f := range fields {
		matched := m.matches(f.Name)
		var slot treewire.Node
		switch len(matched) {
		case 0:
			if f.HasDefault {
				out[i] = f.Default
				continue
			}
			// Container decoders treat an empty synthetic node as the
			// empty case: empty list, absent option.
			slot = treewire.Element{Name: f.Name}
		case 1:
			// The marker tells the downstream codec this single node
			// is already extracted from its record slot and must not
			// be read as a multi-child wrapper.
			slot = treewire.MarkUnwrapped(matched[0])
		default:
			children := make([]treewire.Node, len(matched))
			for j, me := range matched {
				children[j] = me
			}
			slot = treewire.Element{Name: f.Name, Children: children}
		}
		v, err := f.Codec.Decode(slot)
		if err != nil {
			return nil, pathed(err, f.Name)
		}
		out[i] = v
	}
	return out, nil
}
