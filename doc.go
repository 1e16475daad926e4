// Package bincodec provides a declarative binary codec framework.
//
// A schema is declared as a composition of typed fields; the framework
// derives the exact byte-level encoding and decoding procedure when the
// schema is constructed: field ordering, byte order, widths, value
// bounds and union-tag dispatch are all fixed up front, so encode and
// decode are straight walks over a frozen member table.
//
// # Architecture Overview
//
// The library is organized into a few packages with distinct
// responsibilities:
//
//	bincodec/            Root package aliasing the primary codec API
//	├── codec/           Schema declaration plus the encode/decode engine
//	├── errors/          Structured error types shared by all packages
//	├── trace/           Opt-in zap instrumentation for schema debugging
//	├── cmd/decode/      Stream decoder CLI with an interactive mode
//	└── examples/packet/ End-to-end example protocol
//
// # Quick Start
//
// Declare a schema and round-trip a value:
//
//	header := codec.MustRecord("Header",
//	    codec.F("barker", codec.MustUnsignedInteger(codec.WithWidth(4), codec.WithDefault(0xcafebeef))),
//	    codec.F("size", codec.MustUnsignedInteger(codec.WithWidth(2))),
//	)
//
//	data, err := codec.Encode(header, header.New(codec.Values{"size": 64}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := codec.Decode(header, data)
//	fmt.Println(v.(*codec.RecordValue).Get("size")) // 64
//
// # Schema Model
//
// Primitive coders cover the fixed-width wire types:
//
//   - UnsignedInteger, SignedInteger: 1, 2, 4 or 8 bytes, either byte
//     order, optional value bounds
//   - Boolean: one byte, any nonzero byte decodes true
//   - Enumeration: named members over an unsigned backing integer
//   - Char: one byte
//   - String: null-terminated ASCII with an optional length limit
//
// Composites assemble primitives into structures:
//
//   - Record: named members encoded in a deterministic order
//   - Choice: tagged union dispatching on an integer tag
//   - Sequence, Array: repeated elements, counted or greedy
//   - BitPackedInteger: named bit-fields packed into one integer
//
// # Error Handling
//
// Every failure is an *errors.Error carrying the phase (compile, encode
// or decode), a kind, and the member path from the schema root to the
// failing coder. The errors package exports predicates (IsValidation,
// IsTruncated, IsMalformedSchema, IsEncoding) for callers that only
// care about the class of failure.
//
// # Thread Safety
//
// Coders are immutable after construction and safe for concurrent use.
// Value containers (RecordValue, ChoiceValue, BitPackedValue) are plain
// mutable structs and are NOT safe for concurrent mutation.
package bincodec
