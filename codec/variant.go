package codec

import (
	"github.com/treewire/treewire"
	"github.com/treewire/treewire/errors"
)

// encodeVariant builds the canonical variant shape: the tag text
// followed by the payload nodes.
func encodeVariant(tag string, payload []treewire.Node) treewire.Element {
	children := make([]treewire.Node, 0, len(payload)+1)
	children = append(children, treewire.Txt(tag))
	children = append(children, payload...)
	return treewire.Element{Name: treewire.VariantName, Children: children}
}

// decodeVariant splits a variant element into its tag and payload.
func decodeVariant(n treewire.Node) (string, []treewire.Node, error) {
	e, ok := n.(treewire.Element)
	if !ok {
		return "", nil, errors.NotAnElement(n)
	}
	if len(e.Children) == 0 {
		return "", nil, errors.EmptyVariant(e.Name, e)
	}
	tag, ok := e.Children[0].(treewire.Text)
	if !ok {
		return "", nil, errors.WrongVariantShape(e)
	}
	return tag.Content, e.Children[1:], nil
}

// RawVariant converts Variant values: the tag plus undecoded payload
// nodes. Payload interpretation is left to the caller's schema.
func RawVariant() Codec {
	return Codec{
		Name: "variant",
		Encode: func(v any) (treewire.Node, error) {
			vv, ok := v.(Variant)
			if !ok {
				return nil, errors.TypeMismatch(nil, v, "variant")
			}
			return encodeVariant(vv.Tag, vv.Payload), nil
		},
		Decode: func(n treewire.Node) (any, error) {
			tag, payload, err := decodeVariant(n)
			if err != nil {
				return nil, err
			}
			return Variant{Tag: tag, Payload: payload}, nil
		},
	}
}

// VariantOf converts Tagged values through a case table mapping each
// tag to its payload codecs.
func VariantOf(name string, cases ...Case) Codec {
	byTag := make(map[string]Case, len(cases))
	for _, c := range cases {
		byTag[c.Tag] = c
	}
	return Codec{
		Name: name,
		Encode: func(v any) (treewire.Node, error) {
			tv, ok := v.(Tagged)
			if !ok {
				return nil, errors.TypeMismatch(nil, v, name)
			}
			c, ok := byTag[tv.Tag]
			if !ok {
				return nil, errors.New(errors.PhaseEncode, errors.KindUnknownType).
					TypeName(name).
					Detail("unknown variant tag %q", tv.Tag).
					Build()
			}
			if len(tv.Values) != len(c.Elems) {
				return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
					Path(tv.Tag).
					TypeName(name).
					Detail("case %q takes %d values, got %d", tv.Tag, len(c.Elems), len(tv.Values)).
					Build()
			}
			payload := make([]treewire.Node, len(tv.Values))
			for i, pv := range tv.Values {
				node, err := c.Elems[i].Encode(pv)
				if err != nil {
					return nil, pathed(err, tv.Tag)
				}
				payload[i] = node
			}
			return encodeVariant(tv.Tag, payload), nil
		},
		Decode: func(n treewire.Node) (any, error) {
			tag, payload, err := decodeVariant(n)
			if err != nil {
				return nil, err
			}
			c, ok := byTag[tag]
			if !ok {
				return nil, errors.New(errors.PhaseDecode, errors.KindUnknownType).
					TypeName(name).
					Node(n).
					Detail("unknown variant tag %q", tag).
					Build()
			}
			if len(payload) != len(c.Elems) {
				return nil, errors.New(errors.PhaseDecode, errors.KindWrongVariant).
					Path(tag).
					TypeName(name).
					Node(n).
					Detail("case %q takes %d values, got %d", tag, len(c.Elems), len(payload)).
					Build()
			}
			var values []any
			for i, pn := range payload {
				v, err := c.Elems[i].Decode(pn)
				if err != nil {
					return nil, pathed(err, tag)
				}
				values = append(values, v)
			}
			return Tagged{Tag: tag, Values: values}, nil
		},
	}
}
