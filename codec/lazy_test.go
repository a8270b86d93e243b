package codec

import (
	"testing"

	"github.com/treewire/treewire"
)

func TestThunk_ForcesOnce(t *testing.T) {
	calls := 0
	th := Defer(func() any {
		calls++
		return int32(42)
	})

	if th.Forced() {
		t.Error("fresh thunk must not be forced")
	}
	if v := th.Force(); v != int32(42) {
		t.Errorf("Force = %v", v)
	}
	if v := th.Force(); v != int32(42) {
		t.Errorf("second Force = %v", v)
	}
	if calls != 1 {
		t.Errorf("thunk evaluated %d times, want 1", calls)
	}
	if !th.Forced() {
		t.Error("thunk should report forced")
	}
}

func TestLazyOf_EncodeForces(t *testing.T) {
	c := LazyOf(Int32())
	th := Defer(func() any { return int32(9) })

	n := mustEncode(t, c, th)
	want := treewire.Elem("p", treewire.Txt("9"))
	if !treewire.Equal(n, want) {
		t.Errorf("encoded %s, want %s", n, want)
	}
	if !th.Forced() {
		t.Error("encoding must force the thunk")
	}
}

func TestLazyOf_DecodeResolves(t *testing.T) {
	c := LazyOf(Int32())
	got := mustDecode(t, c, treewire.Elem("p", treewire.Txt("7")))

	th, ok := got.(*Thunk)
	if !ok {
		t.Fatalf("decode returned %T, want *Thunk", got)
	}
	if !th.Forced() {
		t.Error("decoded thunk should already be resolved")
	}
	if v := th.Force(); v != int32(7) {
		t.Errorf("Force = %v, want 7", v)
	}
}

func TestCellOf_RoundTrip(t *testing.T) {
	c := CellOf(String())
	n := mustEncode(t, c, NewCell("boxed"))

	got := mustDecode(t, c, n)
	cell, ok := got.(*Cell)
	if !ok {
		t.Fatalf("decode returned %T, want *Cell", got)
	}
	if cell.Value != "boxed" {
		t.Errorf("cell value = %v, want boxed", cell.Value)
	}
}

func TestLazyOf_InRecord(t *testing.T) {
	c := Record("holder", []Field{
		{Name: "v", Codec: LazyOf(Int32())},
	})

	n := mustEncode(t, c, []any{Resolved(int32(5))})
	got := mustDecode(t, c, n)
	vals := got.([]any)
	if v := vals[0].(*Thunk).Force(); v != int32(5) {
		t.Errorf("round-tripped thunk = %v, want 5", v)
	}
}
