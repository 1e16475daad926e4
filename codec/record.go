package codec

import (
	"fmt"

	"github.com/wippyai/bincodec/errors"
)

// Record encodes a fixed set of named members back to back in a
// deterministic order. A record with no members is legal and encodes to
// zero bytes; such records serve as empty message bodies.
type Record struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewRecord creates a record coder from the given fields. Field positions
// follow FOrd annotations first, then declaration order.
func NewRecord(name string, fields ...Field) (*Record, error) {
	if name == "" {
		return nil, errors.MalformedSchema(nil, "record requires a name")
	}
	ordered := orderFields(fields)
	index := make(map[string]int, len(ordered))
	for i, f := range ordered {
		if f.Name == "" {
			return nil, errors.MalformedSchema([]string{name}, "field %d has no name", i)
		}
		if f.Coder == nil {
			return nil, errors.MalformedSchema([]string{name, f.Name}, "field has no coder")
		}
		if _, dup := index[f.Name]; dup {
			return nil, errors.MalformedSchema([]string{name, f.Name}, "duplicate field name")
		}
		index[f.Name] = i
	}
	return &Record{name: name, fields: ordered, index: index}, nil
}

// MustRecord is like NewRecord but panics on an invalid declaration.
func MustRecord(name string, fields ...Field) *Record {
	c, err := NewRecord(name, fields...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the record's declared name.
func (c *Record) Name() string { return c.name }

// Fields returns the members in serialization order.
func (c *Record) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// New constructs an instance. Missing members take their coder's default
// and names that match no member are ignored. Values are validated when
// the instance is encoded, not here.
func (c *Record) New(vals Values) *RecordValue {
	values := make([]any, len(c.fields))
	for i, f := range c.fields {
		if v, ok := vals[f.Name]; ok {
			values[i] = v
		} else {
			values[i] = f.Coder.DefaultValue()
		}
	}
	return &RecordValue{rec: c, values: values}
}

// WriteValue encodes v, which must be a *RecordValue constructed by this
// record. Members are encoded in serialization order; a member failure is
// reported with the member's name on the error path.
func (c *Record) WriteValue(w *Writer, v any) (int, error) {
	rv, ok := v.(*RecordValue)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, fmt.Sprintf("%T", v), c.name)
	}
	if rv.rec != c {
		return 0, errors.TypeMismatch(errors.PhaseEncode, nil, rv.rec.name, c.name)
	}
	total := 0
	for i, f := range c.fields {
		n, err := f.Coder.WriteValue(w, rv.values[i])
		total += n
		if err != nil {
			return total, errors.WithMember(err, f.Name)
		}
	}
	return total, nil
}

// ReadValue decodes each member in serialization order and returns the
// assembled *RecordValue.
func (c *Record) ReadValue(r *Reader) (any, error) {
	values := make([]any, len(c.fields))
	for i, f := range c.fields {
		v, err := f.Coder.ReadValue(r)
		if err != nil {
			return nil, errors.WithMember(err, f.Name)
		}
		values[i] = v
	}
	return &RecordValue{rec: c, values: values}, nil
}

// DefaultValue returns an instance with every member defaulted.
func (c *Record) DefaultValue() any {
	return c.New(nil)
}

// RecordValue is a record instance holding one value per member.
type RecordValue struct {
	rec    *Record
	values []any
}

// Record returns the declaring record coder.
func (v *RecordValue) Record() *Record { return v.rec }

// Get returns the named member's value. It panics if the record declares
// no such member; use Lookup for the non-panicking variant.
func (v *RecordValue) Get(name string) any {
	i, ok := v.rec.index[name]
	if !ok {
		panic(errors.FieldUnknown(errors.PhaseEncode, []string{v.rec.name}, name))
	}
	return v.values[i]
}

// Lookup returns the named member's value and whether the member exists.
func (v *RecordValue) Lookup(name string) (any, bool) {
	i, ok := v.rec.index[name]
	if !ok {
		return nil, false
	}
	return v.values[i], true
}

// Set replaces the named member's value. It panics if the record declares
// no such member. The value is validated when the instance is encoded.
func (v *RecordValue) Set(name string, val any) {
	i, ok := v.rec.index[name]
	if !ok {
		panic(errors.FieldUnknown(errors.PhaseEncode, []string{v.rec.name}, name))
	}
	v.values[i] = val
}

// Equal reports whether both instances belong to the same record and hold
// structurally equal member values.
func (v *RecordValue) Equal(o *RecordValue) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.rec != o.rec {
		return false
	}
	for i := range v.values {
		if !valueEqual(v.values[i], o.values[i]) {
			return false
		}
	}
	return true
}
