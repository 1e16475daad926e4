package codec

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/wippyai/bincodec/codec/internal/numeric"
	"github.com/wippyai/bincodec/errors"
)

// BitField declares a named sub-range of a bit-packed integer, addressed
// by a mask.
type BitField struct {
	Name string
	Mask uint64
}

// BF declares a bit-field.
func BF(name string, mask uint64) BitField {
	return BitField{Name: name, Mask: mask}
}

type bitMask struct {
	name  string
	mask  uint64
	shift int
}

// BitPackedInteger packs several named bit-fields into one backing
// unsigned integer of fixed byte width. Each field's shift is the
// position of its mask's lowest set bit. Overlapping masks are legal and
// not policed.
type BitPackedInteger struct {
	name    string
	backing *UnsignedInteger
	fields  []bitMask
	index   map[string]int
}

// NewBitPackedInteger creates a bit-packed integer coder of the given
// byte width. Masks must fit the width; a zero mask is tolerated and
// always reads as zero.
func NewBitPackedInteger(name string, width int, fields ...BitField) (*BitPackedInteger, error) {
	if name == "" {
		return nil, errors.MalformedSchema(nil, "bit-packed integer requires a name")
	}
	backing, err := NewUnsignedInteger(WithWidth(width))
	if err != nil {
		return nil, errors.WithMember(err, name)
	}
	natMax := uintMaxForWidth(width)
	masks := make([]bitMask, len(fields))
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, errors.MalformedSchema([]string{name}, "bit-field %d has no name", i)
		}
		if _, dup := index[f.Name]; dup {
			return nil, errors.MalformedSchema([]string{name, f.Name}, "duplicate bit-field name")
		}
		if f.Mask > natMax {
			return nil, errors.MalformedSchema([]string{name, f.Name}, "mask %#x does not fit in %d byte(s)", f.Mask, width)
		}
		shift := 0
		if f.Mask != 0 {
			shift = bits.TrailingZeros64(f.Mask)
		}
		masks[i] = bitMask{name: f.Name, mask: f.Mask, shift: shift}
		index[f.Name] = i
	}
	return &BitPackedInteger{name: name, backing: backing, fields: masks, index: index}, nil
}

// MustBitPackedInteger is like NewBitPackedInteger but panics on an
// invalid declaration.
func MustBitPackedInteger(name string, width int, fields ...BitField) *BitPackedInteger {
	c, err := NewBitPackedInteger(name, width, fields...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the coder's declared name.
func (c *BitPackedInteger) Name() string { return c.name }

// Width returns the backing integer's width in bytes.
func (c *BitPackedInteger) Width() int { return c.backing.Width() }

// Fields returns the bit-fields in declaration order.
func (c *BitPackedInteger) Fields() []BitField {
	out := make([]BitField, len(c.fields))
	for i, f := range c.fields {
		out[i] = BitField{Name: f.name, Mask: f.mask}
	}
	return out
}

// New constructs an instance with the named fields set on a zeroed
// backing value. Names that match no field are ignored.
func (c *BitPackedInteger) New(vals Values) (*BitPackedValue, error) {
	v := &BitPackedValue{bp: c}
	for _, f := range c.fields {
		raw, ok := vals[f.name]
		if !ok {
			continue
		}
		u, ok := numeric.ToUint64(raw)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseEncode, []string{c.name, f.name}, fmt.Sprintf("%T", raw), "bit-field")
		}
		v.value |= f.mask & (u << f.shift)
	}
	return v, nil
}

// FromUint constructs an instance directly from a backing value.
func (c *BitPackedInteger) FromUint(value uint64) (*BitPackedValue, error) {
	if err := c.backing.validator.Validate(errors.PhaseEncode, value); err != nil {
		return nil, errors.WithMember(err, c.name)
	}
	return &BitPackedValue{bp: c, value: value}, nil
}

// WriteValue encodes v, which must be a *BitPackedValue constructed by
// this coder, as its backing integer.
func (c *BitPackedInteger) WriteValue(w *Writer, v any) (int, error) {
	bv, ok := v.(*BitPackedValue)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), c.name)
	}
	if bv.bp != c {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, bv.bp.name, c.name)
	}
	return c.backing.WriteValue(w, bv.value)
}

// ReadValue decodes the backing integer and returns a *BitPackedValue
// over it.
func (c *BitPackedInteger) ReadValue(r *Reader) (any, error) {
	raw, err := c.backing.ReadValue(r)
	if err != nil {
		return nil, err
	}
	return &BitPackedValue{bp: c, value: raw.(uint64)}, nil
}

// DefaultValue returns an instance with a zeroed backing value.
func (c *BitPackedInteger) DefaultValue() any {
	return &BitPackedValue{bp: c}
}

// BitPackedValue is a bit-packed integer instance. Fields read as
// (value & mask) >> shift. Setting a field ORs (mask & (new << shift))
// into the backing value without clearing the mask's previous bits, so
// re-setting a field can leave stale bits behind; zero the instance and
// set fields once to sidestep that.
type BitPackedValue struct {
	bp    *BitPackedInteger
	value uint64
}

// BitPacked returns the declaring coder.
func (v *BitPackedValue) BitPacked() *BitPackedInteger { return v.bp }

// Uint returns the backing value.
func (v *BitPackedValue) Uint() uint64 { return v.value }

// Get returns the named field's value. It panics if no such field is
// declared; use Lookup for the non-panicking variant.
func (v *BitPackedValue) Get(name string) uint64 {
	i, ok := v.bp.index[name]
	if !ok {
		panic(errors.FieldUnknown(errors.PhaseEncode, []string{v.bp.name}, name))
	}
	f := v.bp.fields[i]
	return (v.value & f.mask) >> f.shift
}

// Lookup returns the named field's value and whether the field exists.
func (v *BitPackedValue) Lookup(name string) (uint64, bool) {
	i, ok := v.bp.index[name]
	if !ok {
		return 0, false
	}
	f := v.bp.fields[i]
	return (v.value & f.mask) >> f.shift, true
}

// Set ORs the named field's value into the backing integer. Bits of val
// outside the field's mask are dropped. It panics if no such field is
// declared.
func (v *BitPackedValue) Set(name string, val uint64) {
	i, ok := v.bp.index[name]
	if !ok {
		panic(errors.FieldUnknown(errors.PhaseEncode, []string{v.bp.name}, name))
	}
	f := v.bp.fields[i]
	v.value |= f.mask & (val << f.shift)
}

// Equal reports whether both instances belong to the same coder and hold
// the same backing value.
func (v *BitPackedValue) Equal(o *BitPackedValue) bool {
	if v == nil || o == nil {
		return v == o
	}
	return v.bp == o.bp && v.value == o.value
}

// String renders the instance as its named field values.
func (v *BitPackedValue) String() string {
	var b strings.Builder
	b.WriteString(v.bp.name)
	b.WriteByte('{')
	for i, f := range v.bp.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", f.name, (v.value&f.mask)>>f.shift)
	}
	b.WriteByte('}')
	return b.String()
}
