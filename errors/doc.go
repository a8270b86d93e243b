// Package errors provides structured error types for the treewire library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: field path, the declared
// type name, the offending wire node, and a cause chain. The node is rendered
// back to text when the error is formatted, so a failure always shows the
// exact tree shape that triggered it.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindNotAScalar).
//		Path("user", "age").
//		TypeName("int32").
//		Node(node).
//		Detail("expected a leaf element").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotAScalar("int32", node)
//	err := errors.WrongVariantShape(node)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
