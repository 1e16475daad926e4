package codec

import (
	"fmt"

	"github.com/wippyai/bincodec/codec/internal/numeric"
	"github.com/wippyai/bincodec/errors"
)

// Char encodes a single raw byte. The default value is NUL.
var Char Coder = charCoder{}

type charCoder struct{}

func (charCoder) WriteValue(w *Writer, v any) (int, error) {
	u, ok := numeric.ToUint64(v)
	if !ok {
		if i, isInt := numeric.ToInt64(v); isInt {
			return 0, errors.OutOfRange(errors.PhaseEncode, nil, i, 0, 0xff)
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), "char")
	}
	if u > 0xff {
		return 0, errors.OutOfRange(errors.PhaseEncode, nil, u, 0, 0xff)
	}
	if err := w.WriteByte(byte(u)); err != nil {
		return 0, err
	}
	return 1, nil
}

func (charCoder) ReadValue(r *Reader) (any, error) {
	data, err := r.ReadFull(1)
	if err != nil {
		return nil, err
	}
	return data[0], nil
}

func (charCoder) DefaultValue() any { return byte(0) }
