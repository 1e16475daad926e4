package codec

import (
	"fmt"
	"sort"

	"github.com/wippyai/bincodec/codec/internal/numeric"
	"github.com/wippyai/bincodec/errors"
)

// EnumMember is one named value of an Enumeration.
type EnumMember struct {
	Name  string
	Value uint64
}

const defaultEnumWidth = 1

// Enumeration encodes a closed set of named unsigned values. Membership is
// validated in both directions: encoding a non-member and decoding a byte
// pattern outside the set both fail. Two names may share a value; the
// lexically smallest name is canonical for lookups by value.
type Enumeration struct {
	backing   *UnsignedInteger
	byName    map[string]uint64
	byValue   map[uint64]string
	validator Validator
	name      string
	members   []EnumMember
	def       uint64
}

// NewEnumeration creates an enumeration coder over members. The backing
// integer is 1 byte wide and big-endian unless overridden; the default
// value is the lowest declared member unless WithDefault names another.
func NewEnumeration(name string, members map[string]uint64, opts ...IntOption) (*Enumeration, error) {
	if name == "" {
		return nil, errors.MalformedSchema(nil, "enumeration requires a name")
	}
	if len(members) == 0 {
		return nil, errors.MalformedSchema([]string{name}, "enumeration has no members")
	}

	o := applyIntOptions(opts)
	if o.width == 0 {
		o.width = defaultEnumWidth
	}
	backing, err := NewUnsignedInteger(WithWidth(o.width), WithByteOrder(o.order))
	if err != nil {
		return nil, errors.WithMember(err, name)
	}

	_, natMax := backing.Bounds()
	byName := make(map[string]uint64, len(members))
	set := make(map[uint64]struct{}, len(members))
	list := make([]EnumMember, 0, len(members))
	for n, v := range members {
		if n == "" {
			return nil, errors.MalformedSchema([]string{name}, "member with empty name")
		}
		if v > natMax {
			return nil, errors.MalformedSchema([]string{name, n}, "value %d does not fit width %d", v, o.width)
		}
		byName[n] = v
		set[v] = struct{}{}
		list = append(list, EnumMember{Name: n, Value: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Value != list[j].Value {
			return list[i].Value < list[j].Value
		}
		return list[i].Name < list[j].Name
	})
	byValue := make(map[uint64]string, len(members))
	for _, m := range list {
		if _, ok := byValue[m.Value]; !ok {
			byValue[m.Value] = m.Name
		}
	}

	def := list[0].Value
	if o.def != nil {
		u, ok := numeric.ToUint64(o.def)
		if !ok {
			return nil, errors.MalformedSchema([]string{name}, "default %v is not an unsigned integer", o.def)
		}
		if _, ok := set[u]; !ok {
			return nil, errors.MalformedSchema([]string{name}, "default %d is not a member", u)
		}
		def = u
	}

	return &Enumeration{
		name:      name,
		backing:   backing,
		byName:    byName,
		byValue:   byValue,
		members:   list,
		def:       def,
		validator: MembershipValidator{Values: set, TypeName: name},
	}, nil
}

// MustEnumeration is like NewEnumeration but panics on an invalid
// configuration.
func MustEnumeration(name string, members map[string]uint64, opts ...IntOption) *Enumeration {
	c, err := NewEnumeration(name, members, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the enumeration's name.
func (c *Enumeration) Name() string { return c.name }

// Width returns the encoded width in bytes.
func (c *Enumeration) Width() int { return c.backing.Width() }

// Order returns the configured byte order.
func (c *Enumeration) Order() ByteOrder { return c.backing.Order() }

// Members returns the declared members ordered by value.
func (c *Enumeration) Members() []EnumMember {
	out := make([]EnumMember, len(c.members))
	copy(out, c.members)
	return out
}

// MemberNamed returns the value declared under name.
func (c *Enumeration) MemberNamed(name string) (uint64, bool) {
	v, ok := c.byName[name]
	return v, ok
}

// NameOf returns the canonical name for a member value.
func (c *Enumeration) NameOf(value uint64) (string, bool) {
	n, ok := c.byValue[value]
	return n, ok
}

// WriteValue encodes v, which must coerce to a declared member value.
func (c *Enumeration) WriteValue(w *Writer, v any) (int, error) {
	u, ok := numeric.ToUint64(v)
	if !ok {
		// Negative integers cannot name a member.
		if _, isInt := numeric.ToInt64(v); isInt {
			return 0, errors.NotAMember(errors.PhaseEncode, nil, v, c.name)
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), c.name)
	}
	if err := c.validator.Validate(errors.PhaseEncode, u); err != nil {
		return 0, err
	}
	return c.backing.WriteValue(w, u)
}

// ReadValue decodes a member value, rejecting byte patterns outside the
// declared set.
func (c *Enumeration) ReadValue(r *Reader) (any, error) {
	v, err := c.backing.ReadValue(r)
	if err != nil {
		return nil, err
	}
	u := v.(uint64)
	if err := c.validator.Validate(errors.PhaseDecode, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DefaultValue returns the default member value.
func (c *Enumeration) DefaultValue() any { return c.def }
