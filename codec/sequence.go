package codec

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wippyai/bincodec/errors"
)

// SeqOption configures sequence coders.
type SeqOption func(*seqOptions)

type seqOptions struct {
	max           int
	min           int
	lengthWidth   int
	includeLength bool
}

// WithMaxLength sets the maximum number of elements.
func WithMaxLength(n int) SeqOption {
	return func(o *seqOptions) { o.max = n }
}

// WithMinLength sets the minimum number of elements. The default is 0.
func WithMinLength(n int) SeqOption {
	return func(o *seqOptions) { o.min = n }
}

// WithLengthPrefix encodes the element count before the elements. The
// count's width is the smallest standard width capable of the maximum
// length unless WithLengthWidth overrides it.
func WithLengthPrefix() SeqOption {
	return func(o *seqOptions) { o.includeLength = true }
}

// WithLengthWidth sets an explicit width in bytes for the count prefix and
// implies WithLengthPrefix.
func WithLengthWidth(w int) SeqOption {
	return func(o *seqOptions) { o.lengthWidth = w }
}

// Sequence encodes a bounded series of same-typed elements, optionally
// preceded by an element count. Without a count prefix, decoding consumes
// the remaining input and stops at the maximum length; it cannot
// distinguish trailing garbage from a further element, so malformed tails
// surface as element decode errors.
type Sequence struct {
	elem     Coder
	length   *UnsignedInteger
	min, max int
	prefixed bool
}

// NewSequence creates a sequence coder. Either a maximum length or an
// explicit length width must be given; unbounded sequences are not
// representable.
func NewSequence(elem Coder, opts ...SeqOption) (*Sequence, error) {
	o := seqOptions{max: -1}
	for _, opt := range opts {
		opt(&o)
	}
	if elem == nil {
		return nil, errors.MalformedSchema(nil, "sequence requires an element coder")
	}
	if o.min < 0 {
		return nil, errors.MalformedSchema(nil, "negative minimum length %d", o.min)
	}
	if o.max < 0 && o.lengthWidth == 0 {
		return nil, errors.MalformedSchema(nil, "either a maximum length or an explicit length width is required; unbounded sequences are not allowed")
	}
	if o.max >= 0 && o.min > o.max {
		return nil, errors.MalformedSchema(nil, "length bounds [%d, %d] leave no encodable counts", o.min, o.max)
	}

	var length *UnsignedInteger
	var err error
	if o.lengthWidth > 0 {
		lcOpts := []IntOption{WithWidth(o.lengthWidth), WithMin(o.min)}
		if o.max >= 0 {
			lcOpts = append(lcOpts, WithMax(o.max))
		}
		length, err = NewUnsignedInteger(lcOpts...)
	} else {
		length, err = UnsignedCapableOf(uint64(o.max), WithMin(o.min))
	}
	if err != nil {
		return nil, err
	}

	max := o.max
	if max < 0 {
		// Bounded only by the explicit prefix width.
		_, hi := length.Bounds()
		if hi > uint64(math.MaxInt) {
			max = math.MaxInt
		} else {
			max = int(hi)
		}
	}

	return &Sequence{
		elem:     elem,
		length:   length,
		min:      o.min,
		max:      max,
		prefixed: o.includeLength || o.lengthWidth > 0,
	}, nil
}

// MustSequence is like NewSequence but panics on an invalid configuration.
func MustSequence(elem Coder, opts ...SeqOption) *Sequence {
	c, err := NewSequence(elem, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// NewArray creates a fixed-size sequence with no count prefix.
func NewArray(elem Coder, size int) (*Sequence, error) {
	if size < 0 {
		return nil, errors.MalformedSchema(nil, "negative array size %d", size)
	}
	return NewSequence(elem, WithMinLength(size), WithMaxLength(size))
}

// MustArray is like NewArray but panics on an invalid configuration.
func MustArray(elem Coder, size int) *Sequence {
	c, err := NewArray(elem, size)
	if err != nil {
		panic(err)
	}
	return c
}

// Element returns the element coder.
func (c *Sequence) Element() Coder { return c.elem }

// MinLength returns the minimum element count.
func (c *Sequence) MinLength() int { return c.min }

// MaxLength returns the maximum element count.
func (c *Sequence) MaxLength() int { return c.max }

// Prefixed reports whether the element count is encoded on the wire.
func (c *Sequence) Prefixed() bool { return c.prefixed }

// WriteValue encodes v, which must be a []any with a count inside the
// declared bounds.
func (c *Sequence) WriteValue(w *Writer, v any) (int, error) {
	vs, ok := v.([]any)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), "sequence")
	}
	if len(vs) < c.min || len(vs) > c.max {
		return 0, errors.LengthOutOfRange(errors.PhaseEncode, nil, len(vs), c.min, c.max)
	}
	total := 0
	if c.prefixed {
		n, err := c.length.WriteValue(w, uint64(len(vs)))
		total += n
		if err != nil {
			return total, err
		}
	}
	for i, e := range vs {
		n, err := c.elem.WriteValue(w, e)
		total += n
		if err != nil {
			return total, errors.WithMember(err, strconv.Itoa(i))
		}
	}
	return total, nil
}

// ReadValue decodes a []any. With a count prefix the count is read and
// validated first; without one, elements are decoded until the input is
// exhausted or the maximum length is reached.
func (c *Sequence) ReadValue(r *Reader) (any, error) {
	if c.prefixed {
		return c.readCounted(r)
	}
	return c.readCountless(r)
}

func (c *Sequence) readCounted(r *Reader) (any, error) {
	v, err := c.length.ReadValue(r)
	if err != nil {
		return nil, err
	}
	count := v.(uint64)
	capHint := count
	if capHint > 1024 {
		capHint = 1024
	}
	items := make([]any, 0, capHint)
	for i := uint64(0); i < count; i++ {
		item, err := c.elem.ReadValue(r)
		if err != nil {
			return nil, errors.WithMember(err, strconv.FormatUint(i, 10))
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Sequence) readCountless(r *Reader) (any, error) {
	data, err := r.ReadRemaining()
	if err != nil {
		return nil, err
	}
	sub := NewBytesReader(data)
	items := []any{}
	for len(items) < c.max && sub.Position() < len(data) {
		item, err := c.elem.ReadValue(sub)
		if err != nil {
			return nil, errors.WithMember(err, strconv.Itoa(len(items)))
		}
		items = append(items, item)
	}
	if len(items) < c.min {
		return nil, errors.LengthOutOfRange(errors.PhaseDecode, nil, len(items), c.min, c.max)
	}
	return items, nil
}

// DefaultValue returns a slice holding the minimum element count, each
// element defaulted.
func (c *Sequence) DefaultValue() any {
	items := make([]any, c.min)
	for i := range items {
		items[i] = c.elem.DefaultValue()
	}
	return items
}
