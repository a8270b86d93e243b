package treewire

import "strings"

// Reserved element names and the unwrap marker attribute. These strings
// are part of the wire contract and must not change.
const (
	RecordName  = "record"
	VariantName = "variant"
	OptionName  = "__option"
	ListName    = "l"
	ScalarName  = "p"

	UnwrappedKey   = "record"
	UnwrappedValue = "unwrapped"
)

// Node is one node of the wire tree
type Node interface {
	isNode()
	String() string
}

// Element is a named node with ordered attributes and children
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

// Text is a leaf node holding raw character content
type Text struct {
	Content string
}

// Attr is a single attribute. Keys may repeat within one element.
type Attr struct {
	Key   string
	Value string
}

func (Element) isNode() {}
func (Text) isNode()    {}

// Elem builds an element with no attributes.
func Elem(name string, children ...Node) Element {
	return Element{Name: name, Children: children}
}

// Txt builds a text leaf.
func Txt(content string) Text {
	return Text{Content: content}
}

// Attr returns the value of the first attribute with the given key.
func (e Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Unwrapped reports whether n is an Element carrying the
// "record"="unwrapped" marker.
func Unwrapped(n Node) bool {
	e, ok := n.(Element)
	if !ok {
		return false
	}
	v, ok := e.Attr(UnwrappedKey)
	return ok && v == UnwrappedValue
}

// MarkUnwrapped returns a copy of e carrying the unwrap marker. The
// attribute list is copied, never mutated in place.
func MarkUnwrapped(e Element) Element {
	attrs := make([]Attr, 0, len(e.Attrs)+1)
	attrs = append(attrs, Attr{Key: UnwrappedKey, Value: UnwrappedValue})
	attrs = append(attrs, e.Attrs...)
	return Element{Name: e.Name, Attrs: attrs, Children: e.Children}
}

// ClearUnwrapped returns a copy of e without the unwrap marker. A
// decoder that honors the marker consumes it here so that codecs
// nested below see a plain node.
func ClearUnwrapped(e Element) Element {
	var attrs []Attr
	for _, a := range e.Attrs {
		if a.Key == UnwrappedKey && a.Value == UnwrappedValue {
			continue
		}
		attrs = append(attrs, a)
	}
	return Element{Name: e.Name, Attrs: attrs, Children: e.Children}
}

// Retag returns a copy of e with a new element name.
func Retag(e Element, name string) Element {
	return Element{Name: name, Attrs: e.Attrs, Children: e.Children}
}

// Equal reports structural equality of two nodes.
func Equal(a, b Node) bool {
	switch av := a.(type) {
	case Text:
		bv, ok := b.(Text)
		return ok && av.Content == bv.Content
	case Element:
		bv, ok := b.(Element)
		if !ok || av.Name != bv.Name {
			return false
		}
		if len(av.Attrs) != len(bv.Attrs) || len(av.Children) != len(bv.Children) {
			return false
		}
		for i := range av.Attrs {
			if av.Attrs[i] != bv.Attrs[i] {
				return false
			}
		}
		for i := range av.Children {
			if !Equal(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders a compact single-line form for diagnostics. The
// xmltext package produces the real document syntax; this form only
// needs to be readable in error messages.
func (e Element) String() string {
	var b strings.Builder
	e.render(&b)
	return b.String()
}

func (t Text) String() string {
	return escapeText(t.Content)
}

func (e Element) render(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteByte('"')
	}
	if len(e.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range e.Children {
		switch cv := c.(type) {
		case Element:
			cv.render(b)
		case Text:
			b.WriteString(escapeText(cv.Content))
		}
	}
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteByte('>')
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
