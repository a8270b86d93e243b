package codec

import (
	"github.com/treewire/treewire"
	"github.com/treewire/treewire/errors"
)

// OptionOf converts Option values to and from the "__option" marker
// element. None is the empty marker. Some(x) encodes x directly unless
// x itself encoded to an "__option" node, in which case one extra wrap
// level keeps Some(None) distinguishable from None.
//
// A Some whose payload encodes to an empty element (empty string, empty
// list, a record of all-default fields) is indistinguishable from None
// on the wire and decodes as None.
func OptionOf(elem Codec) Codec {
	name := "option<" + elem.Name + ">"
	some := func(n treewire.Node) (any, error) {
		v, err := elem.Decode(n)
		if err != nil {
			return nil, err
		}
		return SomeValue(v), nil
	}
	return Codec{
		Name: name,
		Encode: func(v any) (treewire.Node, error) {
			opt, ok := v.(Option)
			if !ok {
				return nil, errors.TypeMismatch(nil, v, name)
			}
			if !opt.Some {
				return treewire.Elem(treewire.OptionName), nil
			}
			inner, err := elem.Encode(opt.Value)
			if err != nil {
				return nil, err
			}
			if ie, ok := inner.(treewire.Element); ok && ie.Name == treewire.OptionName {
				return treewire.Elem(treewire.OptionName, ie), nil
			}
			return inner, nil
		},
		Decode: func(n treewire.Node) (any, error) {
			e, ok := n.(treewire.Element)
			if !ok {
				return some(n)
			}
			if len(e.Children) == 0 {
				return None(), nil
			}
			if len(e.Children) == 1 {
				if t, ok := e.Children[0].(treewire.Text); ok && t.Content == "" {
					return None(), nil
				}
				// A record slot whose sole content is an "__option"
				// element is a Some wrap that survived field
				// re-tagging; the inner node is the payload.
				if treewire.Unwrapped(n) {
					if ie, ok := e.Children[0].(treewire.Element); ok && ie.Name == treewire.OptionName {
						return some(ie)
					}
				}
				if e.Name == treewire.OptionName {
					return some(e.Children[0])
				}
			}
			return some(e)
		},
	}
}
