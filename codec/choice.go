package codec

import (
	"fmt"
	"sort"

	"github.com/wippyai/bincodec/errors"
)

const defaultTagWidth = 1

// ChoiceOption configures choice coders.
type ChoiceOption func(*choiceOptions)

type choiceOptions struct {
	tagWidth int
	order    ByteOrder
	orderSet bool
}

// WithTagWidth sets the tag's width in bytes. The default is 1.
func WithTagWidth(w int) ChoiceOption {
	return func(o *choiceOptions) { o.tagWidth = w }
}

// WithTagByteOrder sets the byte order of multi-byte tags. The default is
// BigEndian.
func WithTagByteOrder(order ByteOrder) ChoiceOption {
	return func(o *choiceOptions) { o.order = order; o.orderSet = true }
}

// Choice encodes one of several alternatives, each identified by an
// integer tag written before the alternative's payload. The tags form an
// enumeration whose member names are taken from the variant coders.
type Choice struct {
	name     string
	tagEnum  *Enumeration
	variants map[uint64]*Variant
	byName   map[string]*Variant
	tags     []uint64
}

// NewChoice creates a choice coder from a tag-to-coder mapping. Variant
// names come from coders that expose a Name method; anonymous coders are
// named after their tag, and duplicate names get a tag suffix.
func NewChoice(name string, variants map[uint64]Coder, opts ...ChoiceOption) (*Choice, error) {
	if name == "" {
		return nil, errors.MalformedSchema(nil, "choice requires a name")
	}
	if len(variants) == 0 {
		return nil, errors.MalformedSchema([]string{name}, "choice requires at least one variant")
	}
	o := choiceOptions{tagWidth: defaultTagWidth}
	for _, opt := range opts {
		opt(&o)
	}
	if !standardWidth(o.tagWidth) {
		return nil, errors.MalformedSchema([]string{name}, "tag width must be 1, 2, 4 or 8 bytes, got %d", o.tagWidth)
	}

	tags := make([]uint64, 0, len(variants))
	for t := range variants {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	natMax := uintMaxForWidth(o.tagWidth)
	members := make(map[string]uint64, len(tags))
	byTag := make(map[uint64]*Variant, len(tags))
	byName := make(map[string]*Variant, len(tags))
	for _, t := range tags {
		coder := variants[t]
		if coder == nil {
			return nil, errors.MalformedSchema([]string{name}, "variant %#x has no coder", t)
		}
		if t > natMax {
			return nil, errors.MalformedSchema([]string{name}, "tag %#x does not fit in %d byte(s)", t, o.tagWidth)
		}
		vname := variantName(coder, t)
		if _, taken := members[vname]; taken {
			vname = fmt.Sprintf("%s-%d", vname, t)
		}
		members[vname] = t
		v := &Variant{tag: t, name: vname, coder: coder}
		byTag[t] = v
		byName[vname] = v
	}

	enumOpts := []IntOption{WithWidth(o.tagWidth)}
	if o.orderSet {
		enumOpts = append(enumOpts, WithByteOrder(o.order))
	}
	tagEnum, err := NewEnumeration(name+"Tag", members, enumOpts...)
	if err != nil {
		return nil, err
	}

	c := &Choice{name: name, tagEnum: tagEnum, variants: byTag, byName: byName, tags: tags}
	for _, v := range byTag {
		v.owner = c
	}
	return c, nil
}

// MustChoice is like NewChoice but panics on an invalid declaration.
func MustChoice(name string, variants map[uint64]Coder, opts ...ChoiceOption) *Choice {
	c, err := NewChoice(name, variants, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func variantName(c Coder, tag uint64) string {
	if n, ok := c.(interface{ Name() string }); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("tag%d", tag)
}

// Name returns the choice's declared name.
func (c *Choice) Name() string { return c.name }

// TagWidth returns the tag's width in bytes.
func (c *Choice) TagWidth() int { return c.tagEnum.Width() }

// Tags returns the declared tags in ascending order.
func (c *Choice) Tags() []uint64 {
	out := make([]uint64, len(c.tags))
	copy(out, c.tags)
	return out
}

// Variants returns the variants in ascending tag order.
func (c *Choice) Variants() []*Variant {
	out := make([]*Variant, len(c.tags))
	for i, t := range c.tags {
		out[i] = c.variants[t]
	}
	return out
}

// Variant returns the variant declared for tag.
func (c *Choice) Variant(tag uint64) (*Variant, bool) {
	v, ok := c.variants[tag]
	return v, ok
}

// MustVariant is like Variant but panics when no variant has the tag.
func (c *Choice) MustVariant(tag uint64) *Variant {
	v, ok := c.variants[tag]
	if !ok {
		panic(errors.UnknownTag([]string{c.name}, tag, c.name))
	}
	return v
}

// VariantNamed returns the variant with the given name.
func (c *Choice) VariantNamed(name string) (*Variant, bool) {
	v, ok := c.byName[name]
	return v, ok
}

// MustVariantNamed is like VariantNamed but panics when no variant has
// the name.
func (c *Choice) MustVariantNamed(name string) *Variant {
	v, ok := c.byName[name]
	if !ok {
		panic(errors.FieldUnknown(errors.PhaseEncode, []string{c.name}, name))
	}
	return v
}

// New constructs an instance holding the given tag. A nil value takes the
// variant coder's default. The value itself is validated when the
// instance is encoded.
func (c *Choice) New(tag uint64, value any) (*ChoiceValue, error) {
	if err := c.tagEnum.validator.Validate(errors.PhaseEncode, tag); err != nil {
		return nil, err
	}
	if value == nil {
		value = c.variants[tag].coder.DefaultValue()
	}
	return &ChoiceValue{choice: c, tag: tag, value: value}, nil
}

// WriteValue encodes v, which must be a *ChoiceValue constructed by this
// choice: first the tag, then the variant payload.
func (c *Choice) WriteValue(w *Writer, v any) (int, error) {
	cv, ok := v.(*ChoiceValue)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), c.name)
	}
	if cv.choice != c {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, cv.choice.name, c.name)
	}
	total, err := c.tagEnum.WriteValue(w, cv.tag)
	if err != nil {
		return total, err
	}
	variant := c.variants[cv.tag]
	n, err := variant.coder.WriteValue(w, cv.value)
	total += n
	if err != nil {
		return total, errors.WithMember(err, variant.name)
	}
	return total, nil
}

// ReadValue decodes the tag, selects the matching variant and decodes its
// payload. A tag that selects no variant fails with an unknown tag error.
func (c *Choice) ReadValue(r *Reader) (any, error) {
	raw, err := c.tagEnum.backing.ReadValue(r)
	if err != nil {
		return nil, err
	}
	tag := raw.(uint64)
	variant, ok := c.variants[tag]
	if !ok {
		return nil, errors.UnknownTag(nil, tag, c.name)
	}
	val, err := variant.coder.ReadValue(r)
	if err != nil {
		return nil, errors.WithMember(err, variant.name)
	}
	return &ChoiceValue{choice: c, tag: tag, value: val}, nil
}

// DefaultValue returns an instance of the lowest-tagged variant holding
// that variant's default.
func (c *Choice) DefaultValue() any {
	tag := c.tagEnum.DefaultValue().(uint64)
	return &ChoiceValue{choice: c, tag: tag, value: c.variants[tag].coder.DefaultValue()}
}

// Variant binds a tag to its coder within a choice. Variants reached
// through a nested lookup remember the enclosing variant and wrap
// constructed values all the way out to the outermost choice.
type Variant struct {
	tag    uint64
	name   string
	coder  Coder
	owner  *Choice
	parent *Variant
}

// Tag returns the variant's tag.
func (v *Variant) Tag() uint64 { return v.tag }

// Name returns the variant's name within its choice.
func (v *Variant) Name() string { return v.name }

// Coder returns the variant's payload coder.
func (v *Variant) Coder() Coder { return v.coder }

// Variant resolves a nested variant by tag when this variant's payload is
// itself a choice.
func (v *Variant) Variant(tag uint64) (*Variant, bool) {
	ch, ok := v.coder.(*Choice)
	if !ok {
		return nil, false
	}
	inner, ok := ch.Variant(tag)
	if !ok {
		return nil, false
	}
	clone := *inner
	clone.parent = v
	return &clone, true
}

// MustVariant is like Variant but panics when the lookup fails.
func (v *Variant) MustVariant(tag uint64) *Variant {
	nested, ok := v.Variant(tag)
	if !ok {
		panic(errors.UnknownTag([]string{v.name}, tag, v.name))
	}
	return nested
}

// VariantNamed resolves a nested variant by name when this variant's
// payload is itself a choice.
func (v *Variant) VariantNamed(name string) (*Variant, bool) {
	ch, ok := v.coder.(*Choice)
	if !ok {
		return nil, false
	}
	inner, ok := ch.VariantNamed(name)
	if !ok {
		return nil, false
	}
	clone := *inner
	clone.parent = v
	return &clone, true
}

// MustVariantNamed is like VariantNamed but panics when the lookup fails.
func (v *Variant) MustVariantNamed(name string) *Variant {
	nested, ok := v.VariantNamed(name)
	if !ok {
		panic(errors.FieldUnknown(errors.PhaseEncode, []string{v.name}, name))
	}
	return nested
}

// New constructs an instance of this variant from member values and wraps
// it in the owning choice and any enclosing choices. The variant's coder
// must take named members, which records and bit-packed integers do.
func (v *Variant) New(vals Values) (*ChoiceValue, error) {
	switch coder := v.coder.(type) {
	case *Record:
		return v.wrap(coder.New(vals)), nil
	case *BitPackedInteger:
		bv, err := coder.New(vals)
		if err != nil {
			return nil, err
		}
		return v.wrap(bv), nil
	case *Choice:
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(v.owner.name, v.name).
			Detail("variant is a choice; construct it through one of its variants").
			Build()
	default:
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(v.owner.name, v.name).
			Detail("variant coder %T takes no named members; use Wrap", v.coder).
			Build()
	}
}

// Wrap wraps an already constructed payload value in the owning choice
// and any enclosing choices. The payload is validated when the result is
// encoded.
func (v *Variant) Wrap(val any) *ChoiceValue {
	return v.wrap(val)
}

// Default returns the variant's default payload wrapped in the owning
// choice and any enclosing choices.
func (v *Variant) Default() *ChoiceValue {
	return v.wrap(v.coder.DefaultValue())
}

func (v *Variant) wrap(val any) *ChoiceValue {
	cv := &ChoiceValue{choice: v.owner, tag: v.tag, value: val}
	if v.parent != nil {
		return v.parent.wrap(cv)
	}
	return cv
}

// ChoiceValue is a choice instance holding a tag and the matching
// variant's payload.
type ChoiceValue struct {
	choice *Choice
	tag    uint64
	value  any
}

// Choice returns the declaring choice coder.
func (v *ChoiceValue) Choice() *Choice { return v.choice }

// Tag returns the instance's tag.
func (v *ChoiceValue) Tag() uint64 { return v.tag }

// TagName returns the name of the variant the tag selects.
func (v *ChoiceValue) TagName() string {
	return v.choice.variants[v.tag].name
}

// Value returns the variant payload.
func (v *ChoiceValue) Value() any { return v.value }

// Equal reports whether both instances belong to the same choice, carry
// the same tag and hold structurally equal payloads.
func (v *ChoiceValue) Equal(o *ChoiceValue) bool {
	if v == nil || o == nil {
		return v == o
	}
	return v.choice == o.choice && v.tag == o.tag && valueEqual(v.value, o.value)
}
