package treewire

import "testing"

func TestElement_Attr(t *testing.T) {
	e := Element{
		Name: "x",
		Attrs: []Attr{
			{Key: "a", Value: "1"},
			{Key: "b", Value: "2"},
			{Key: "a", Value: "3"},
		},
	}
	if v, ok := e.Attr("a"); !ok || v != "1" {
		t.Errorf("Attr(a) = %q, %v; want first occurrence %q", v, ok, "1")
	}
	if v, ok := e.Attr("b"); !ok || v != "2" {
		t.Errorf("Attr(b) = %q, %v", v, ok)
	}
	if _, ok := e.Attr("missing"); ok {
		t.Error("Attr(missing) should not be found")
	}
}

func TestMarkUnwrapped(t *testing.T) {
	orig := Elem("field", Txt("v"))
	marked := MarkUnwrapped(orig)

	if !Unwrapped(marked) {
		t.Error("marked element should carry the unwrap marker")
	}
	if Unwrapped(orig) {
		t.Error("original element must not be mutated")
	}
	if len(orig.Attrs) != 0 {
		t.Errorf("original attrs grew: %v", orig.Attrs)
	}
	if marked.Name != "field" || len(marked.Children) != 1 {
		t.Errorf("marking changed shape: %v", marked)
	}
}

func TestClearUnwrapped(t *testing.T) {
	orig := Element{
		Name:     "field",
		Attrs:    []Attr{{Key: "id", Value: "7"}},
		Children: []Node{Txt("v")},
	}
	marked := MarkUnwrapped(orig)
	cleared := ClearUnwrapped(marked)

	if Unwrapped(cleared) {
		t.Error("cleared element still carries the unwrap marker")
	}
	if !Unwrapped(marked) {
		t.Error("clearing must not mutate its input")
	}
	if len(cleared.Attrs) != 1 || cleared.Attrs[0].Key != "id" {
		t.Errorf("other attrs must survive, got %v", cleared.Attrs)
	}
	if cleared.Name != "field" || len(cleared.Children) != 1 {
		t.Errorf("clearing changed shape: %v", cleared)
	}
}

func TestRetag(t *testing.T) {
	e := Element{Name: "record", Attrs: []Attr{{Key: "k", Value: "v"}}, Children: []Node{Txt("x")}}
	r := Retag(e, "field")
	if r.Name != "field" {
		t.Errorf("Retag name = %q", r.Name)
	}
	if len(r.Attrs) != 1 || len(r.Children) != 1 {
		t.Error("Retag must keep attrs and children")
	}
	if e.Name != "record" {
		t.Error("Retag must not mutate its input")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"same text", Txt("x"), Txt("x"), true},
		{"different text", Txt("x"), Txt("y"), false},
		{"text vs element", Txt("x"), Elem("x"), false},
		{"same element", Elem("a", Txt("1")), Elem("a", Txt("1")), true},
		{"different name", Elem("a"), Elem("b"), false},
		{"different arity", Elem("a", Txt("1")), Elem("a"), false},
		{
			"attrs matter",
			Element{Name: "a", Attrs: []Attr{{Key: "k", Value: "v"}}},
			Elem("a"),
			false,
		},
		{
			"nested",
			Elem("a", Elem("b", Txt("1")), Elem("c")),
			Elem("a", Elem("b", Txt("1")), Elem("c")),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"empty element", Elem("__option"), "<__option/>"},
		{"leaf", Elem("p", Txt("5")), "<p>5</p>"},
		{"escaped text", Txt("a<b&c"), "a&lt;b&amp;c"},
		{
			"attrs and nesting",
			Element{
				Name:     "f",
				Attrs:    []Attr{{Key: "record", Value: "unwrapped"}},
				Children: []Node{Elem("p", Txt("x"))},
			},
			`<f record="unwrapped"><p>x</p></f>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String = %q, want %q", got, tt.want)
			}
		})
	}
}
