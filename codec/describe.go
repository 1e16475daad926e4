package codec

import (
	"fmt"
	"strings"
)

// Descriptor is a JSON-serializable description of a schema tree: kind,
// width, byte order, bounds, and the nested members, variants or masks.
// It marshals with encoding/json; String renders it as indented text.
type Descriptor struct {
	Kind      string        `json:"kind"`
	Name      string        `json:"name,omitempty"`
	Width     int           `json:"width,omitempty"`
	ByteOrder string        `json:"byte_order,omitempty"`
	Min       any           `json:"min,omitempty"`
	Max       any           `json:"max,omitempty"`
	MinLength int           `json:"min_length,omitempty"`
	MaxLength int           `json:"max_length,omitempty"`
	Counted   bool          `json:"counted,omitempty"`
	Element   *Descriptor   `json:"element,omitempty"`
	Members   []MemberDesc  `json:"members,omitempty"`
	Fields    []FieldDesc   `json:"fields,omitempty"`
	Variants  []VariantDesc `json:"variants,omitempty"`
	Masks     []MaskDesc    `json:"masks,omitempty"`
}

// MemberDesc describes one enumeration member.
type MemberDesc struct {
	Name  string `json:"name"`
	Value uint64 `json:"value"`
}

// FieldDesc describes one record field in effective order.
type FieldDesc struct {
	Name   string      `json:"name"`
	Schema *Descriptor `json:"schema"`
}

// VariantDesc describes one choice variant.
type VariantDesc struct {
	Tag    uint64      `json:"tag"`
	Name   string      `json:"name"`
	Schema *Descriptor `json:"schema"`
}

// MaskDesc describes one bit-field of a bit-packed integer.
type MaskDesc struct {
	Name string `json:"name"`
	Mask uint64 `json:"mask"`
}

// Describe builds a descriptor for a schema tree. The result is meant for
// humans and tools inspecting a schema, not for reconstructing one.
func Describe(c Coder) *Descriptor {
	switch t := c.(type) {
	case *UnsignedInteger:
		min, max := t.Bounds()
		return &Descriptor{Kind: "uint", Width: t.Width(), ByteOrder: t.Order().String(), Min: min, Max: max}
	case *SignedInteger:
		min, max := t.Bounds()
		return &Descriptor{Kind: "int", Width: t.Width(), ByteOrder: t.Order().String(), Min: min, Max: max}
	case *Boolean:
		return &Descriptor{Kind: "bool", Width: 1}
	case charCoder:
		return &Descriptor{Kind: "char", Width: 1}
	case *Enumeration:
		d := &Descriptor{Kind: "enum", Name: t.Name(), Width: t.Width(), ByteOrder: t.Order().String()}
		for _, m := range t.Members() {
			d.Members = append(d.Members, MemberDesc{Name: m.Name, Value: m.Value})
		}
		return d
	case *String:
		return &Descriptor{Kind: "string", MaxLength: t.MaxLength()}
	case *Sequence:
		return &Descriptor{
			Kind:      "sequence",
			MinLength: t.MinLength(),
			MaxLength: t.MaxLength(),
			Counted:   t.Prefixed(),
			Element:   Describe(t.Element()),
		}
	case *Record:
		d := &Descriptor{Kind: "record", Name: t.Name()}
		for _, f := range t.Fields() {
			d.Fields = append(d.Fields, FieldDesc{Name: f.Name, Schema: Describe(f.Coder)})
		}
		return d
	case *Choice:
		d := &Descriptor{Kind: "choice", Name: t.Name(), Width: t.TagWidth()}
		for _, v := range t.Variants() {
			d.Variants = append(d.Variants, VariantDesc{Tag: v.Tag(), Name: v.Name(), Schema: Describe(v.Coder())})
		}
		return d
	case *BitPackedInteger:
		d := &Descriptor{Kind: "bits", Name: t.Name(), Width: t.Width()}
		for _, f := range t.Fields() {
			d.Masks = append(d.Masks, MaskDesc{Name: f.Name, Mask: f.Mask})
		}
		return d
	default:
		return &Descriptor{Kind: fmt.Sprintf("%T", c)}
	}
}

// String renders the descriptor as indented text, one line per coder.
func (d *Descriptor) String() string {
	var b strings.Builder
	d.render(&b, "", 0)
	return b.String()
}

func (d *Descriptor) render(b *strings.Builder, label string, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	if label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}
	switch d.Kind {
	case "uint", "int":
		fmt.Fprintf(b, "%s%d %s-endian [%v, %v]\n", d.Kind, 8*d.Width, d.ByteOrder, d.Min, d.Max)
	case "bool":
		b.WriteString("bool\n")
	case "char":
		b.WriteString("char\n")
	case "enum":
		fmt.Fprintf(b, "enum %s uint%d %s-endian {", d.Name, 8*d.Width, d.ByteOrder)
		for i, m := range d.Members {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s=%#x", m.Name, m.Value)
		}
		b.WriteString("}\n")
	case "string":
		if d.MaxLength > 0 {
			fmt.Fprintf(b, "string max %d\n", d.MaxLength)
		} else {
			b.WriteString("string\n")
		}
	case "sequence":
		if d.Counted {
			fmt.Fprintf(b, "sequence counted [%d, %d]\n", d.MinLength, d.MaxLength)
		} else {
			fmt.Fprintf(b, "sequence [%d, %d]\n", d.MinLength, d.MaxLength)
		}
		d.Element.render(b, "elem", depth+1)
	case "record":
		fmt.Fprintf(b, "record %s\n", d.Name)
		for _, f := range d.Fields {
			f.Schema.render(b, f.Name, depth+1)
		}
	case "choice":
		fmt.Fprintf(b, "choice %s tag uint%d\n", d.Name, 8*d.Width)
		for _, v := range d.Variants {
			v.Schema.render(b, fmt.Sprintf("%#x %s", v.Tag, v.Name), depth+1)
		}
	case "bits":
		fmt.Fprintf(b, "bits %s uint%d\n", d.Name, 8*d.Width)
		for _, m := range d.Masks {
			fmt.Fprintf(b, "%s  %s: mask %#x\n", indent, m.Name, m.Mask)
		}
	default:
		b.WriteString(d.Kind)
		b.WriteByte('\n')
	}
}
