package codec

import (
	"math"
	"sort"
)

// Field declares a named record member.
type Field struct {
	Name  string
	Coder Coder

	order    int
	explicit bool
}

// F declares a field whose position follows the declaration order.
func F(name string, c Coder) Field {
	return Field{Name: name, Coder: c}
}

// FOrd declares a field with an explicit position. Explicitly positioned
// fields always precede declaration-ordered ones and sort among themselves
// by position; equal positions keep their declaration order.
func FOrd(pos int, name string, c Coder) Field {
	return Field{Name: name, Coder: c, order: pos, explicit: true}
}

// orderFields returns a copy of fields in serialization order.
func orderFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := math.MaxInt, math.MaxInt
		if out[i].explicit {
			oi = out[i].order
		}
		if out[j].explicit {
			oj = out[j].order
		}
		return oi < oj
	})
	return out
}
