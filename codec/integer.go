package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/wippyai/bincodec/codec/internal/numeric"
	"github.com/wippyai/bincodec/errors"
)

// IntOption configures integer-backed coders.
type IntOption func(*intOptions)

type intOptions struct {
	width int
	order ByteOrder
	min   any
	max   any
	def   any
}

// WithWidth sets the encoded width in bytes. Supported widths are 1, 2, 4
// and 8.
func WithWidth(w int) IntOption {
	return func(o *intOptions) { o.width = w }
}

// WithByteOrder sets the byte order. The default is BigEndian.
func WithByteOrder(bo ByteOrder) IntOption {
	return func(o *intOptions) { o.order = bo }
}

// WithMin sets a user-defined lower bound. A bound below the natural range
// of the width is ignored.
func WithMin(v any) IntOption {
	return func(o *intOptions) { o.min = v }
}

// WithMax sets a user-defined upper bound. A bound above the natural range
// of the width is ignored.
func WithMax(v any) IntOption {
	return func(o *intOptions) { o.max = v }
}

// WithDefault sets the default value.
func WithDefault(v any) IntOption {
	return func(o *intOptions) { o.def = v }
}

func applyIntOptions(opts []IntOption) intOptions {
	var o intOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

const defaultIntWidth = 4

func standardWidth(w int) bool {
	switch w {
	case 1, 2, 4, 8:
		return true
	}
	return false
}

func uintMaxForWidth(w int) uint64 {
	if w == 8 {
		return math.MaxUint64
	}
	return (uint64(1) << (8 * w)) - 1
}

func intBoundsForWidth(w int) (int64, int64) {
	if w == 8 {
		return math.MinInt64, math.MaxInt64
	}
	bits := uint(8*w - 1)
	return -(int64(1) << bits), (int64(1) << bits) - 1
}

// fixedCodec resolves the pack and unpack routines for a width and order
// once, at schema construction time. Encoding and decoding then follow a
// single dispatch-free path.
func fixedCodec(width int, order ByteOrder) (put func([]byte, uint64), get func([]byte) uint64) {
	le := order == LittleEndian
	switch width {
	case 1:
		put = func(b []byte, v uint64) { b[0] = byte(v) }
		get = func(b []byte) uint64 { return uint64(b[0]) }
	case 2:
		if le {
			put = func(b []byte, v uint64) { binary.LittleEndian.PutUint16(b, uint16(v)) }
			get = func(b []byte) uint64 { return uint64(binary.LittleEndian.Uint16(b)) }
		} else {
			put = func(b []byte, v uint64) { binary.BigEndian.PutUint16(b, uint16(v)) }
			get = func(b []byte) uint64 { return uint64(binary.BigEndian.Uint16(b)) }
		}
	case 4:
		if le {
			put = func(b []byte, v uint64) { binary.LittleEndian.PutUint32(b, uint32(v)) }
			get = func(b []byte) uint64 { return uint64(binary.LittleEndian.Uint32(b)) }
		} else {
			put = func(b []byte, v uint64) { binary.BigEndian.PutUint32(b, uint32(v)) }
			get = func(b []byte) uint64 { return uint64(binary.BigEndian.Uint32(b)) }
		}
	case 8:
		if le {
			put = binary.LittleEndian.PutUint64
			get = binary.LittleEndian.Uint64
		} else {
			put = binary.BigEndian.PutUint64
			get = binary.BigEndian.Uint64
		}
	}
	return put, get
}

// UnsignedInteger encodes unsigned integers as fixed-width byte sequences.
// Valid values are bounded by the intersection of the width's natural range
// and any user-supplied bounds. Validation runs on both encode and decode,
// so an out-of-range value is rejected whether it comes from the caller or
// from the wire.
type UnsignedInteger struct {
	put       func([]byte, uint64)
	get       func([]byte) uint64
	validator Validator
	width     int
	order     ByteOrder
	min, max  uint64
	def       uint64
}

// NewUnsignedInteger creates an unsigned integer coder. The default
// configuration is 4 bytes, big-endian, bounded by the natural range.
func NewUnsignedInteger(opts ...IntOption) (*UnsignedInteger, error) {
	o := applyIntOptions(opts)
	if o.width == 0 {
		o.width = defaultIntWidth
	}
	if !standardWidth(o.width) {
		return nil, errors.MalformedSchema(nil, "invalid width %d, supported widths are 1, 2, 4 and 8", o.width)
	}

	min, max := uint64(0), uintMaxForWidth(o.width)
	if o.min != nil {
		u, ok := numeric.ToUint64(o.min)
		if !ok {
			return nil, errors.MalformedSchema(nil, "lower bound %v is not an unsigned integer", o.min)
		}
		if u > min {
			min = u
		}
	}
	if o.max != nil {
		u, ok := numeric.ToUint64(o.max)
		if !ok {
			return nil, errors.MalformedSchema(nil, "upper bound %v is not an unsigned integer", o.max)
		}
		if u < max {
			max = u
		}
	}
	if min > max {
		return nil, errors.MalformedSchema(nil, "bounds [%d, %d] leave no encodable values", min, max)
	}

	def := uint64(0)
	if o.def != nil {
		u, ok := numeric.ToUint64(o.def)
		if !ok {
			return nil, errors.MalformedSchema(nil, "default %v is not an unsigned integer", o.def)
		}
		if u < min || u > max {
			return nil, errors.MalformedSchema(nil, "default %d out of range [%d, %d]", u, min, max)
		}
		def = u
	}

	c := &UnsignedInteger{
		width: o.width,
		order: o.order,
		min:   min,
		max:   max,
		def:   def,
	}
	c.put, c.get = fixedCodec(o.width, o.order)
	c.validator = UintRangeValidator{Min: min, Max: max}
	return c, nil
}

// MustUnsignedInteger is like NewUnsignedInteger but panics on an invalid
// configuration. It simplifies package-level schema declarations.
func MustUnsignedInteger(opts ...IntOption) *UnsignedInteger {
	c, err := NewUnsignedInteger(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// UnsignedCapableOf returns an unsigned integer coder using the smallest
// standard width able to represent max, with max installed as the upper
// bound. A width is considered capable when 2^(8*width) >= max.
func UnsignedCapableOf(max uint64, opts ...IntOption) (*UnsignedInteger, error) {
	width := 8
	for _, w := range []int{1, 2, 4} {
		if uint64(1)<<(8*w) >= max {
			width = w
			break
		}
	}
	all := make([]IntOption, 0, len(opts)+2)
	all = append(all, opts...)
	all = append(all, WithWidth(width), WithMax(max))
	return NewUnsignedInteger(all...)
}

// Width returns the encoded width in bytes.
func (c *UnsignedInteger) Width() int { return c.width }

// Order returns the configured byte order.
func (c *UnsignedInteger) Order() ByteOrder { return c.order }

// Bounds returns the effective inclusive value bounds.
func (c *UnsignedInteger) Bounds() (min, max uint64) { return c.min, c.max }

func (c *UnsignedInteger) typeName() string {
	return fmt.Sprintf("uint%d", 8*c.width)
}

// WriteValue encodes v, which may be any Go integer type.
func (c *UnsignedInteger) WriteValue(w *Writer, v any) (int, error) {
	u, ok := numeric.ToUint64(v)
	if !ok {
		// A negative integer is a range failure, not a type failure.
		if i, isInt := numeric.ToInt64(v); isInt {
			return 0, errors.OutOfRange(errors.PhaseEncode, nil, i, c.min, c.max)
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), c.typeName())
	}
	if err := c.validator.Validate(errors.PhaseEncode, u); err != nil {
		return 0, err
	}
	var buf [8]byte
	c.put(buf[:c.width], u)
	return w.Write(buf[:c.width])
}

// ReadValue consumes exactly Width bytes and returns the decoded uint64.
func (c *UnsignedInteger) ReadValue(r *Reader) (any, error) {
	data, err := r.ReadFull(c.width)
	if err != nil {
		return nil, err
	}
	u := c.get(data)
	if err := c.validator.Validate(errors.PhaseDecode, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DefaultValue returns the configured default as a uint64.
func (c *UnsignedInteger) DefaultValue() any { return c.def }

// SignedInteger encodes signed integers as fixed-width two's complement
// byte sequences. Bounds behave as for UnsignedInteger, intersected with
// the signed natural range of the width.
type SignedInteger struct {
	put       func([]byte, uint64)
	get       func([]byte) uint64
	validator Validator
	width     int
	order     ByteOrder
	min, max  int64
	def       int64
}

// NewSignedInteger creates a signed integer coder. The default
// configuration is 4 bytes, big-endian, bounded by the natural range.
func NewSignedInteger(opts ...IntOption) (*SignedInteger, error) {
	o := applyIntOptions(opts)
	if o.width == 0 {
		o.width = defaultIntWidth
	}
	if !standardWidth(o.width) {
		return nil, errors.MalformedSchema(nil, "invalid width %d, supported widths are 1, 2, 4 and 8", o.width)
	}

	min, max := intBoundsForWidth(o.width)
	if o.min != nil {
		i, ok := numeric.ToInt64(o.min)
		if !ok {
			return nil, errors.MalformedSchema(nil, "lower bound %v is not a signed integer", o.min)
		}
		if i > min {
			min = i
		}
	}
	if o.max != nil {
		i, ok := numeric.ToInt64(o.max)
		if !ok {
			return nil, errors.MalformedSchema(nil, "upper bound %v is not a signed integer", o.max)
		}
		if i < max {
			max = i
		}
	}
	if min > max {
		return nil, errors.MalformedSchema(nil, "bounds [%d, %d] leave no encodable values", min, max)
	}

	def := int64(0)
	if o.def != nil {
		i, ok := numeric.ToInt64(o.def)
		if !ok {
			return nil, errors.MalformedSchema(nil, "default %v is not a signed integer", o.def)
		}
		if i < min || i > max {
			return nil, errors.MalformedSchema(nil, "default %d out of range [%d, %d]", i, min, max)
		}
		def = i
	}

	c := &SignedInteger{
		width: o.width,
		order: o.order,
		min:   min,
		max:   max,
		def:   def,
	}
	c.put, c.get = fixedCodec(o.width, o.order)
	c.validator = IntRangeValidator{Min: min, Max: max}
	return c, nil
}

// MustSignedInteger is like NewSignedInteger but panics on an invalid
// configuration.
func MustSignedInteger(opts ...IntOption) *SignedInteger {
	c, err := NewSignedInteger(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Width returns the encoded width in bytes.
func (c *SignedInteger) Width() int { return c.width }

// Order returns the configured byte order.
func (c *SignedInteger) Order() ByteOrder { return c.order }

// Bounds returns the effective inclusive value bounds.
func (c *SignedInteger) Bounds() (min, max int64) { return c.min, c.max }

func (c *SignedInteger) typeName() string {
	return fmt.Sprintf("int%d", 8*c.width)
}

// WriteValue encodes v, which may be any Go integer type.
func (c *SignedInteger) WriteValue(w *Writer, v any) (int, error) {
	i, ok := numeric.ToInt64(v)
	if !ok {
		// A uint64 beyond MaxInt64 is a range failure, not a type failure.
		if u, isUint := numeric.ToUint64(v); isUint {
			return 0, errors.OutOfRange(errors.PhaseEncode, nil, u, c.min, c.max)
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), c.typeName())
	}
	if err := c.validator.Validate(errors.PhaseEncode, i); err != nil {
		return 0, err
	}
	var buf [8]byte
	c.put(buf[:c.width], uint64(i))
	return w.Write(buf[:c.width])
}

// ReadValue consumes exactly Width bytes and returns the decoded int64.
func (c *SignedInteger) ReadValue(r *Reader) (any, error) {
	data, err := r.ReadFull(c.width)
	if err != nil {
		return nil, err
	}
	i := signExtend(c.get(data), c.width)
	if err := c.validator.Validate(errors.PhaseDecode, i); err != nil {
		return nil, err
	}
	return i, nil
}

// DefaultValue returns the configured default as an int64.
func (c *SignedInteger) DefaultValue() any { return c.def }

func signExtend(u uint64, width int) int64 {
	shift := uint(64 - 8*width)
	return int64(u<<shift) >> shift
}
