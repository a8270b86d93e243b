package errors

import (
	"errors"
	"strings"
	"testing"
)

type fakeNode string

func (f fakeNode) String() string { return string(f) }

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseDecode,
				Kind:     KindNotAScalar,
				Path:     []string{"user", "age"},
				TypeName: "int32",
				Detail:   "expected a leaf element",
				Node:     fakeNode("<age><x/></age>"),
			},
			contains: []string{"[decode]", "not_a_scalar", "user.age", "int32", "expected a leaf element", "<age><x/></age>"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEncode,
				Kind:  KindMustBeElement,
			},
			contains: []string{"[encode]", "must_be_an_element"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindInvalidLiteral,
				Detail: "malformed literal",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[decode]", "invalid_literal", "malformed literal", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindInvalidLiteral,
		Cause: cause,
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap did not return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := &Error{Phase: PhaseDecode, Kind: KindNotAScalar}
	b := &Error{Phase: PhaseDecode, Kind: KindNotAScalar, Detail: "different detail"}
	c := &Error{Phase: PhaseEncode, Kind: KindNotAScalar}

	if !errors.Is(a, b) {
		t.Error("errors with same phase and kind should match")
	}
	if errors.Is(a, c) {
		t.Error("errors with different phase should not match")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseDecode, KindInvalidLiteral).
		Path("items", "0").
		TypeName("bool").
		Node(fakeNode("<p>yes</p>")).
		Detail("malformed literal %q", "yes").
		Build()

	if err.Phase != PhaseDecode || err.Kind != KindInvalidLiteral {
		t.Errorf("unexpected phase/kind: %v/%v", err.Phase, err.Kind)
	}
	if len(err.Path) != 2 || err.Path[0] != "items" {
		t.Errorf("unexpected path: %v", err.Path)
	}
	msg := err.Error()
	for _, s := range []string{"items.0", "bool", `"yes"`, "<p>yes</p>"} {
		if !strings.Contains(msg, s) {
			t.Errorf("message %q missing %q", msg, s)
		}
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		kind Kind
	}{
		{NotARecord(fakeNode("text")), KindNotARecord},
		{MustBeElement(fakeNode("text")), KindMustBeElement},
		{NotAnElement(fakeNode("text")), KindNotAnElement},
		{NotAScalar("string", fakeNode("<x/>")), KindNotAScalar},
		{InvalidCharLength("ab", fakeNode("<p>ab</p>")), KindInvalidCharLen},
		{InvalidUnit("[]", fakeNode("<p>[]</p>")), KindInvalidUnit},
		{InvalidLiteral("bool", "yes", fakeNode("<p>yes</p>"), nil), KindInvalidLiteral},
		{EmptyVariant("shape", fakeNode("<shape/>")), KindEmptyVariant},
		{WrongVariantShape(fakeNode("<variant><x/></variant>")), KindWrongVariant},
		{TypeMismatch([]string{"a"}, 3, "string"), KindTypeMismatch},
		{UnknownType("tree"), KindUnknownType},
		{InvalidSchema("bad", nil), KindInvalidSchema},
		{ParseFailed("bad xml", nil), KindInvalidDocument},
	}
	for _, tt := range tests {
		if tt.err.Kind != tt.kind {
			t.Errorf("constructor produced kind %v, want %v", tt.err.Kind, tt.kind)
		}
		if tt.err.Error() == "" {
			t.Error("empty message")
		}
	}
}
