// Package errors provides structured error types for the bincodec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: field path, Go/schema type
// names, offending value, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("header", "size").
//		GoType("string").
//		SchemaType("uint16").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfRange(errors.PhaseEncode, path, 300, 0, 255)
//	err := errors.Truncated(path, 4, 2)
//
// Callers distinguish failure classes with the category predicates
// IsValidation, IsMalformedSchema, IsTruncated and IsEncoding rather than
// matching kinds directly.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
