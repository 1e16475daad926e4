// Package codec implements a declarative binary codec framework.
//
// A wire format is expressed once, as a composition of coders, and the
// composition fixes the exact byte-level encoding: field order, byte
// order, widths, value ranges and union-tag dispatch. Every coder is
// immutable after construction and safe for concurrent use; encode and
// decode are direct, synchronous transformations with no hidden state
// between calls.
//
// # Schema Declaration
//
// Schemas are built from primitive coders (fixed-width integers,
// booleans, enumerations, single bytes, null-terminated strings) and
// composites (records, choices, sequences, bit-packed integers):
//
//	var Header = codec.MustRecord("Header",
//		codec.F("barker", codec.MustUnsignedInteger(codec.WithWidth(4), codec.WithDefault(0xcafebeef))),
//		codec.F("size", codec.MustUnsignedInteger(codec.WithWidth(2))),
//		codec.F("inverted_size", codec.MustUnsignedInteger(codec.WithWidth(2))),
//	)
//
//	var Command = codec.MustChoice("Command", map[uint64]codec.Coder{
//		0x54: General,
//		0x01: Upgrade,
//	})
//
// Constructors report malformed declarations as errors; the Must
// variants panic and suit package-level schema variables.
//
// # Encoding and Decoding
//
// Encode and Decode work on byte slices; EncodeTo and DecodeFrom work on
// streams. A decode leaves its reader positioned immediately after the
// consumed bytes, so successive values can be decoded off one Reader:
//
//	data, err := codec.Encode(Header, Header.New(codec.Values{"size": 128, "inverted_size": 0xff7f}))
//	...
//	v, err := codec.Decode(Header, data)
//	hdr := v.(*codec.RecordValue)
//
// # Value Model
//
// Decoded values use a small set of Go types: uint64 for unsigned
// integers and enumerations, int64 for signed integers, bool, byte,
// string, []any for sequences, and *RecordValue, *ChoiceValue,
// *BitPackedValue for the composites. On the encode side any Go integer
// type is accepted where an integer is expected; floats are not.
//
// # Errors
//
// All failures are *errors.Error values carrying the processing phase,
// an error kind and the member path from the outermost coder down to
// the failing field. See the errors package for matching helpers.
package codec
