// Package xmltext translates between XML document text and the
// treewire node model. The codec packages never touch raw text except
// leaf content; this package is the boundary where documents enter and
// leave the tree form.
//
// Namespace prefixes, processing instructions, comments and formatting
// whitespace are outside the codec's contract: prefixes are kept as
// part of plain names, the rest is dropped on parse.
package xmltext

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/treewire/treewire"
	"github.com/treewire/treewire/errors"
)

// Parse reads an XML document and returns its root element as a node.
func Parse(data []byte) (treewire.Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.ParseFailed("malformed document", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.ParseFailed("document has no root element", nil)
	}
	return fromElement(root), nil
}

// ParseString is Parse over a string.
func ParseString(s string) (treewire.Node, error) {
	return Parse([]byte(s))
}

func fromElement(el *etree.Element) treewire.Element {
	out := treewire.Element{Name: el.Tag}
	if len(el.Attr) > 0 {
		out.Attrs = make([]treewire.Attr, 0, len(el.Attr))
		for _, a := range el.Attr {
			out.Attrs = append(out.Attrs, treewire.Attr{Key: a.Key, Value: a.Value})
		}
	}

	hasElementChild := false
	for _, tok := range el.Child {
		if _, ok := tok.(*etree.Element); ok {
			hasElementChild = true
			break
		}
	}

	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			out.Children = append(out.Children, fromElement(t))
		case *etree.CharData:
			// Whitespace between sibling elements is formatting, not
			// leaf content.
			if t.Data == "" || (hasElementChild && strings.TrimSpace(t.Data) == "") {
				continue
			}
			// Text runs split by dropped tokens merge back together.
			if last := len(out.Children) - 1; last >= 0 {
				if prev, ok := out.Children[last].(treewire.Text); ok {
					out.Children[last] = treewire.Txt(prev.Content + t.Data)
					continue
				}
			}
			out.Children = append(out.Children, treewire.Txt(t.Data))
		}
	}
	return out
}

// Render writes a node as a compact XML document.
func Render(n treewire.Node) ([]byte, error) {
	doc, err := toDocument(n)
	if err != nil {
		return nil, err
	}
	return doc.WriteToBytes()
}

// RenderIndent writes a node as an indented XML document.
func RenderIndent(n treewire.Node, spaces int) ([]byte, error) {
	doc, err := toDocument(n)
	if err != nil {
		return nil, err
	}
	doc.Indent(spaces)
	return doc.WriteToBytes()
}

func toDocument(n treewire.Node) (*etree.Document, error) {
	e, ok := n.(treewire.Element)
	if !ok {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidDocument).
			Node(n).
			Detail("document root must be an element").
			Build()
	}
	doc := etree.NewDocument()
	el := doc.CreateElement(e.Name)
	fillElement(el, e)
	return doc, nil
}

func fillElement(el *etree.Element, e treewire.Element) {
	for _, a := range e.Attrs {
		el.CreateAttr(a.Key, a.Value)
	}
	for _, c := range e.Children {
		switch cv := c.(type) {
		case treewire.Element:
			fillElement(el.CreateElement(cv.Name), cv)
		case treewire.Text:
			el.CreateText(cv.Content)
		}
	}
}
