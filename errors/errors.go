package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode Phase = "decode" // wire tree to value
	PhaseEncode Phase = "encode" // value to wire tree
	PhaseParse  Phase = "parse"  // document text parsing
	PhaseSchema Phase = "schema" // schema compilation
)

// Kind categorizes the error. Decode and encode kinds form a closed
// taxonomy: every conversion failure is one of these.
type Kind string

const (
	KindNotARecord      Kind = "not_a_record_superstructure"
	KindMustBeElement   Kind = "must_be_an_element"
	KindNotAnElement    Kind = "not_an_element"
	KindNotAScalar      Kind = "not_a_scalar"
	KindInvalidCharLen  Kind = "invalid_char_length"
	KindInvalidUnit     Kind = "invalid_unit"
	KindInvalidLiteral  Kind = "invalid_literal"
	KindEmptyVariant    Kind = "empty_variant_contents"
	KindWrongVariant    Kind = "wrong_variant_shape"
	KindTypeMismatch    Kind = "type_mismatch"
	KindUnknownType     Kind = "unknown_type"
	KindInvalidSchema   Kind = "invalid_schema"
	KindInvalidDocument Kind = "invalid_document"
	KindUnsupported     Kind = "unsupported"
)

// Error is the structured error type used throughout the library. Node
// holds the offending wire node, rendered back to text for diagnostics.
type Error struct {
	Node     fmt.Stringer
	Cause    error
	Phase    Phase
	Kind     Kind
	TypeName string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.TypeName != "" {
		b.WriteString(": type ")
		b.WriteString(e.TypeName)
	}

	if e.Detail != "" {
		if e.TypeName != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Node != nil {
		b.WriteString(" in ")
		b.WriteString(e.Node.String())
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// TypeName sets the declared type name of the value being converted
func (b *Builder) TypeName(t string) *Builder {
	b.err.TypeName = t
	return b
}

// Node sets the offending wire node
func (b *Builder) Node(n fmt.Stringer) *Builder {
	b.err.Node = n
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotARecord reports that record decoding expected an Element.
func NotARecord(node fmt.Stringer) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindNotARecord,
		Node:   node,
		Detail: "expected an element",
	}
}

// MustBeElement reports that an encode step produced a non-Element
// where one was required.
func MustBeElement(node fmt.Stringer) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindMustBeElement,
		Node:   node,
		Detail: "encoded field must be an element",
	}
}

// NotAnElement reports that a decoder received a text leaf where an
// element was required.
func NotAnElement(node fmt.Stringer) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindNotAnElement,
		Node:   node,
		Detail: "expected an element, got text",
	}
}

// NotAScalar reports a non-leaf shape handed to a scalar decoder.
func NotAScalar(typeName string, node fmt.Stringer) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindNotAScalar,
		TypeName: typeName,
		Node:     node,
		Detail:   "expected a leaf element",
	}
}

// InvalidCharLength reports a char literal whose length is not one.
func InvalidCharLength(literal string, node fmt.Stringer) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidCharLen,
		TypeName: "char",
		Node:     node,
		Detail:   fmt.Sprintf("literal %q must contain exactly one character", literal),
	}
}

// InvalidUnit reports a unit literal other than "()".
func InvalidUnit(literal string, node fmt.Stringer) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidUnit,
		TypeName: "unit",
		Node:     node,
		Detail:   fmt.Sprintf("literal %q is not %q", literal, "()"),
	}
}

// InvalidLiteral reports a malformed primitive literal.
func InvalidLiteral(typeName, literal string, node fmt.Stringer, cause error) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindInvalidLiteral,
		TypeName: typeName,
		Node:     node,
		Detail:   fmt.Sprintf("malformed literal %q", literal),
		Cause:    cause,
	}
}

// EmptyVariant reports a variant element with no children at all.
func EmptyVariant(elementName string, node fmt.Stringer) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindEmptyVariant,
		Node:   node,
		Detail: fmt.Sprintf("element %q has no variant contents", elementName),
	}
}

// WrongVariantShape reports a variant whose first child is not text.
func WrongVariantShape(node fmt.Stringer) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindWrongVariant,
		Node:   node,
		Detail: "first child of a variant must be the tag text",
	}
}

// TypeMismatch reports an encode value of the wrong dynamic type.
func TypeMismatch(path []string, got any, want string) *Error {
	return &Error{
		Phase:    PhaseEncode,
		Kind:     KindTypeMismatch,
		Path:     path,
		TypeName: want,
		Detail:   fmt.Sprintf("cannot encode %T as %s", got, want),
	}
}

// UnknownType reports an unresolved type reference in a schema.
func UnknownType(name string) *Error {
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindUnknownType,
		Detail: fmt.Sprintf("type %q not defined", name),
	}
}

// InvalidSchema reports a malformed schema description.
func InvalidSchema(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindInvalidSchema,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed reports a document parsing error.
func ParseFailed(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidDocument,
		Detail: detail,
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}
