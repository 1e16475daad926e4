package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // schema construction
	PhaseEncode  Phase = "encode"  // value to bytes
	PhaseDecode  Phase = "decode"  // bytes to value
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedSchema  Kind = "malformed_schema"
	KindOutOfRange       Kind = "out_of_range"
	KindNotAMember       Kind = "not_a_member"
	KindUnknownTag       Kind = "unknown_tag"
	KindLengthOutOfRange Kind = "length_out_of_range"
	KindTruncated        Kind = "truncated"
	KindBadEncoding      Kind = "bad_encoding"
	KindTypeMismatch     Kind = "type_mismatch"
	KindFieldUnknown     Kind = "field_unknown"
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	GoType     string
	SchemaType string
	Detail     string
	Path       []string
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

	if e.GoType != "" || e.SchemaType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.SchemaType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", schema type ")
			b.WriteString(e.SchemaType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("schema type ")
			b.WriteString(e.SchemaType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.SchemaType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
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

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// SchemaType sets the schema type name
func (b *Builder) SchemaType(t string) *Builder {
	b.err.SchemaType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// MalformedSchema creates a schema construction error
func MalformedSchema(path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindMalformedSchema,
		Path:   path,
		Detail: detail,
	}
}

// OutOfRange creates a range validation error
func OutOfRange(phase Phase, path []string, value, min, max any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("value %v out of range [%v, %v]", value, min, max),
		Value:  value,
	}
}

// NotAMember creates a membership validation error for enumerations
func NotAMember(phase Phase, path []string, value any, enumType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindNotAMember,
		Path:       path,
		SchemaType: enumType,
		Detail:     fmt.Sprintf("value %v is not a member", value),
		Value:      value,
	}
}

// UnknownTag creates an unknown discriminant error for choices
func UnknownTag(path []string, tag uint64, choiceType string) *Error {
	return &Error{
		Phase:      PhaseDecode,
		Kind:       KindUnknownTag,
		Path:       path,
		SchemaType: choiceType,
		Detail:     fmt.Sprintf("tag %#x does not select a variant", tag),
		Value:      tag,
	}
}

// LengthOutOfRange creates a sequence length validation error
func LengthOutOfRange(phase Phase, path []string, length, min, max int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("length %d out of range [%d, %d]", length, min, max),
		Value:  length,
	}
}

// Truncated creates a premature end of data error
func Truncated(path []string, want, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncated,
		Path:   path,
		Detail: fmt.Sprintf("premature end of data: want %d bytes, have %d", want, have),
	}
}

// NoTerminator creates an unterminated string error
func NoTerminator(path []string, scanned int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncated,
		Path:   path,
		Detail: fmt.Sprintf("no terminator found within %d bytes", scanned),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, schemaType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		GoType:     goType,
		SchemaType: schemaType,
	}
}

// BadEncoding creates an unencodable value error
func BadEncoding(phase Phase, path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindBadEncoding,
		Path:   path,
		Detail: detail,
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", fieldName),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// WithMember returns a copy of err with name prepended to its path. Composite
// coders use it to report which member an inner error belongs to. Non-codec
// errors are wrapped.
func WithMember(err error, name string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		clone := *e
		clone.Path = append([]string{name}, e.Path...)
		return &clone
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindBadEncoding,
		Path:   []string{name},
		Detail: "member failed",
		Cause:  err,
	}
}

// Category predicates. The four classes of codec failure: invalid values,
// invalid schemas, short input, unencodable input.

// IsValidation reports whether err is a value validation failure
func IsValidation(err error) bool {
	return errKindIn(err, KindOutOfRange, KindNotAMember, KindUnknownTag, KindLengthOutOfRange)
}

// IsMalformedSchema reports whether err is a schema construction failure
func IsMalformedSchema(err error) bool {
	return errKindIn(err, KindMalformedSchema)
}

// IsTruncated reports whether err signals premature end of data
func IsTruncated(err error) bool {
	return errKindIn(err, KindTruncated)
}

// IsEncoding reports whether err is an unencodable value failure
func IsEncoding(err error) bool {
	return errKindIn(err, KindBadEncoding, KindTypeMismatch)
}

func errKindIn(err error, kinds ...Kind) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	for _, k := range kinds {
		if e.Kind == k {
			return true
		}
	}
	return false
}
