package bincodec

import (
	"io"

	"github.com/wippyai/bincodec/codec"
)

// Coder is the contract every schema node implements. See the codec
// package for the schema declaration API.
type Coder = codec.Coder

// Values supplies named member values when constructing composite
// instances.
type Values = codec.Values

// Value containers produced by composite coders.
type (
	RecordValue    = codec.RecordValue
	ChoiceValue    = codec.ChoiceValue
	BitPackedValue = codec.BitPackedValue
)

// ByteOrder selects the byte significance order for multi-byte integers.
type ByteOrder = codec.ByteOrder

const (
	BigEndian    = codec.BigEndian
	LittleEndian = codec.LittleEndian
)

// Encode encodes v with c and returns the produced bytes.
func Encode(c Coder, v any) ([]byte, error) {
	return codec.Encode(c, v)
}

// EncodeTo encodes v with c into w, returning the number of bytes
// written.
func EncodeTo(c Coder, w io.Writer, v any) (int, error) {
	return codec.EncodeTo(c, w, v)
}

// Decode decodes a single value of c's type from the front of data.
// Trailing bytes are permitted.
func Decode(c Coder, data []byte) (any, error) {
	return codec.Decode(c, data)
}

// DecodeFrom decodes a single value of c's type from r, leaving r
// positioned after the consumed bytes.
func DecodeFrom(c Coder, r io.ByteReader) (any, error) {
	return codec.DecodeFrom(c, r)
}
