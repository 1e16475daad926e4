package codec

import (
	"bytes"
	"io"
)

// Coder is the interface implemented by every schema type. A Coder is
// immutable once constructed and safe for concurrent use.
type Coder interface {
	// WriteValue validates v and encodes it into w, returning the number of
	// bytes written. Nothing observable distinguishes a partially written
	// value from a failed one; callers should discard output on error.
	WriteValue(w *Writer, v any) (int, error)

	// ReadValue consumes exactly one value from r. When it returns
	// successfully, the reader is positioned immediately after the bytes
	// that encoded the value.
	ReadValue(r *Reader) (any, error)

	// DefaultValue returns the value considered empty for this type.
	DefaultValue() any
}

// ByteOrder selects the byte significance order for multi-byte integers.
type ByteOrder int

const (
	// BigEndian stores the most significant byte first.
	BigEndian ByteOrder = iota
	// LittleEndian stores the least significant byte first.
	LittleEndian
)

var byteOrderNames = [...]string{
	BigEndian:    "big",
	LittleEndian: "little",
}

func (o ByteOrder) String() string {
	if o < 0 || int(o) >= len(byteOrderNames) {
		return "unknown"
	}
	return byteOrderNames[o]
}

// Encode encodes v with c and returns the produced bytes.
func Encode(c Coder, v any) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteValue(NewWriter(&buf), v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo encodes v with c into w, returning the number of bytes written.
func EncodeTo(c Coder, w io.Writer, v any) (int, error) {
	return c.WriteValue(NewWriter(w), v)
}

// Decode decodes a single value of c's type from the front of data.
// Trailing bytes are permitted; decode successive values off one Reader
// when a buffer holds more than one.
func Decode(c Coder, data []byte) (any, error) {
	return c.ReadValue(NewBytesReader(data))
}

// DecodeFrom decodes a single value of c's type from r, leaving r
// positioned after the consumed bytes.
func DecodeFrom(c Coder, r io.ByteReader) (any, error) {
	return c.ReadValue(NewReader(r))
}
