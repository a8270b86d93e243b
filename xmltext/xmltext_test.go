package xmltext

import (
	"testing"

	"github.com/treewire/treewire"
	"github.com/treewire/treewire/codec"
)

func TestParse_Basic(t *testing.T) {
	n, err := ParseString(`<point><x>3</x><y>4</y></point>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := treewire.Elem("point",
		treewire.Elem("x", treewire.Txt("3")),
		treewire.Elem("y", treewire.Txt("4")),
	)
	if !treewire.Equal(n, want) {
		t.Errorf("parsed %s, want %s", n, want)
	}
}

func TestParse_AttributesInOrder(t *testing.T) {
	n, err := ParseString(`<f record="unwrapped" other="x"/>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	e := n.(treewire.Element)
	if len(e.Attrs) != 2 || e.Attrs[0].Key != "record" || e.Attrs[1].Key != "other" {
		t.Errorf("attrs = %v", e.Attrs)
	}
	if !treewire.Unwrapped(n) {
		t.Error("unwrap marker not visible after parse")
	}
}

func TestParse_MixedContentKeepsTagText(t *testing.T) {
	// The variant shape interleaves a text tag with element payloads.
	n, err := ParseString(`<variant>Circle<p>2.5</p></variant>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	e := n.(treewire.Element)
	if len(e.Children) != 2 {
		t.Fatalf("children = %v", e.Children)
	}
	if tag, ok := e.Children[0].(treewire.Text); !ok || tag.Content != "Circle" {
		t.Errorf("first child = %v, want tag text", e.Children[0])
	}
}

func TestParse_FormattingWhitespaceDropped(t *testing.T) {
	n, err := ParseString("<point>\n  <x>3</x>\n  <y>4</y>\n</point>")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	e := n.(treewire.Element)
	if len(e.Children) != 2 {
		t.Errorf("indentation text must be dropped, got %d children", len(e.Children))
	}
}

func TestParse_LeafWhitespacePreserved(t *testing.T) {
	n, err := ParseString(`<p>  </p>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	e := n.(treewire.Element)
	if len(e.Children) != 1 {
		t.Fatalf("leaf content dropped: %v", e.Children)
	}
	if txt := e.Children[0].(treewire.Text); txt.Content != "  " {
		t.Errorf("leaf content = %q", txt.Content)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, bad := range []string{"", "not xml <", "<a><b></a></b>"} {
		if _, err := ParseString(bad); err == nil {
			t.Errorf("Parse(%q) should fail", bad)
		}
	}
}

func TestRender_RoundTrip(t *testing.T) {
	orig := treewire.Elem("doc",
		treewire.Element{
			Name:     "f",
			Attrs:    []treewire.Attr{{Key: "record", Value: "unwrapped"}},
			Children: []treewire.Node{treewire.Txt("5")},
		},
		treewire.Elem("variant", treewire.Txt("Foo"), treewire.Elem("p", treewire.Txt("1"))),
		treewire.Elem("__option"),
	)

	data, err := Render(orig)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if !treewire.Equal(orig, back) {
		t.Errorf("round trip changed tree:\n  orig: %s\n  back: %s", orig, back)
	}
}

func TestRenderIndent_Reparses(t *testing.T) {
	orig := treewire.Elem("doc",
		treewire.Elem("a", treewire.Txt("1")),
		treewire.Elem("b", treewire.Elem("c", treewire.Txt("2"))),
	)
	data, err := RenderIndent(orig, 2)
	if err != nil {
		t.Fatalf("RenderIndent failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if !treewire.Equal(orig, back) {
		t.Errorf("indented round trip changed tree:\n  orig: %s\n  back: %s", orig, back)
	}
}

func TestRender_TextRootRejected(t *testing.T) {
	if _, err := Render(treewire.Txt("oops")); err == nil {
		t.Error("rendering a text root should fail")
	}
}

func TestRoundTrip_CodecOutput(t *testing.T) {
	// Text form of codec output must reparse to the identical tree.
	c := codec.Record("point", []codec.Field{
		{Name: "x", Codec: codec.Int32()},
		{Name: "tags", Codec: codec.List(codec.String())},
	})
	n, err := c.Encode([]any{int32(3), []any{"a", "b"}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	data, err := Render(n)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !treewire.Equal(n, back) {
		t.Errorf("codec output did not survive text form:\n  orig: %s\n  back: %s", n, back)
	}
}

func FuzzParseRender(f *testing.F) {
	f.Add(`<point><x>3</x><y>4</y></point>`)
	f.Add(`<variant>Foo<p>1</p></variant>`)
	f.Add(`<f record="unwrapped"><__option/></f>`)
	f.Add(`<l><p>a</p><p>b</p></l>`)

	f.Fuzz(func(t *testing.T, input string) {
		n, err := ParseString(input)
		if err != nil {
			return
		}
		data, err := Render(n)
		if err != nil {
			t.Fatalf("Render of parsed tree failed: %v", err)
		}
		back, err := Parse(data)
		if err != nil {
			t.Fatalf("reparse failed: %v\nrendered: %s", err, data)
		}
		if !treewire.Equal(n, back) {
			t.Errorf("parse/render not stable:\n  first:  %s\n  second: %s", n, back)
		}
	})
}
