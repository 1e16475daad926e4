package codec

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/wippyai/bincodec/errors"
)

// String encodes null-terminated ASCII text. The optional length limit
// counts the terminator, so a limit of 256 admits at most 255 characters.
type String struct {
	max int // 0 = unbounded
}

// NewString creates a string coder limited to maxLength bytes on the wire,
// terminator included.
func NewString(maxLength int) (*String, error) {
	if maxLength < 1 {
		return nil, errors.MalformedSchema(nil, "string limit %d leaves no room for the terminator", maxLength)
	}
	return &String{max: maxLength}, nil
}

// MustString is like NewString but panics on an invalid configuration.
func MustString(maxLength int) *String {
	c, err := NewString(maxLength)
	if err != nil {
		panic(err)
	}
	return c
}

// NewUnboundedString creates a string coder without a length limit.
func NewUnboundedString() *String {
	return &String{}
}

// MaxLength returns the wire-length limit, 0 when unbounded.
func (c *String) MaxLength() int { return c.max }

// WriteValue encodes v, which must be an ASCII string free of NUL
// characters. The terminator is written after the text.
func (c *String) WriteValue(w *Writer, v any) (int, error) {
	s, ok := v.(string)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), "string")
	}
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return 0, errors.BadEncoding(errors.PhaseEncode, nil, "byte %#x at index %d is not ASCII", s[i], i)
		}
	}
	if strings.IndexByte(s, 0) >= 0 {
		return 0, errors.BadEncoding(errors.PhaseEncode, nil, "NUL character cannot appear in the string")
	}
	total := len(s) + 1
	if c.max > 0 && total > c.max {
		return 0, errors.LengthOutOfRange(errors.PhaseEncode, nil, total, 1, c.max)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		return 0, err
	}
	if err := w.WriteByte(0); err != nil {
		return 0, err
	}
	return total, nil
}

// ReadValue consumes bytes up to and including the NUL terminator.
// Exhausting the limit or the input without seeing a terminator fails.
func (c *String) ReadValue(r *Reader) (any, error) {
	var buf bytes.Buffer
	read := 0
	for {
		if c.max > 0 && read >= c.max {
			return nil, errors.NoTerminator(nil, read)
		}
		b, err := r.ReadByte()
		if err != nil {
			if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
				return nil, errors.NoTerminator(nil, read)
			}
			return nil, err
		}
		read++
		if b == 0 {
			break
		}
		if b > 0x7f {
			return nil, errors.BadEncoding(errors.PhaseDecode, nil, "byte %#x is not ASCII", b)
		}
		buf.WriteByte(b)
	}
	return buf.String(), nil
}

// DefaultValue returns the empty string.
func (c *String) DefaultValue() any { return "" }
