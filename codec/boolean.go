package codec

import (
	"fmt"

	"github.com/wippyai/bincodec/errors"
)

// Boolean encodes truth values as a single byte: 0x01 for true, 0x00 for
// false. Any nonzero byte decodes to true.
type Boolean struct {
	def bool
}

// NewBoolean creates a boolean coder. Only WithDefault is meaningful among
// the integer options; a width other than 1 is rejected.
func NewBoolean(opts ...IntOption) (*Boolean, error) {
	o := applyIntOptions(opts)
	if o.width != 0 && o.width != 1 {
		return nil, errors.MalformedSchema(nil, "boolean is always 1 byte wide, got width %d", o.width)
	}
	def := false
	if o.def != nil {
		b, ok := o.def.(bool)
		if !ok {
			return nil, errors.MalformedSchema(nil, "default %v is not a bool", o.def)
		}
		def = b
	}
	return &Boolean{def: def}, nil
}

// MustBoolean is like NewBoolean but panics on an invalid configuration.
func MustBoolean(opts ...IntOption) *Boolean {
	c, err := NewBoolean(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// WriteValue encodes v, which must be a bool.
func (c *Boolean) WriteValue(w *Writer, v any) (int, error) {
	b, ok := v.(bool)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), "bool")
	}
	var enc byte
	if b {
		enc = 0x01
	}
	if err := w.WriteByte(enc); err != nil {
		return 0, err
	}
	return 1, nil
}

// ReadValue consumes one byte and returns a bool.
func (c *Boolean) ReadValue(r *Reader) (any, error) {
	data, err := r.ReadFull(1)
	if err != nil {
		return nil, err
	}
	return data[0] != 0, nil
}

// DefaultValue returns the configured default, false unless overridden.
func (c *Boolean) DefaultValue() any { return c.def }
