package codec

import (
	"github.com/wippyai/bincodec/codec/internal/numeric"
)

// Values supplies member values by name when constructing record, choice
// and bit-packed instances. Names that do not match a declared member are
// ignored, mirroring keyword-style construction.
type Values map[string]any

// valueEqual compares two canonical values structurally. Numeric values
// compare by magnitude regardless of the concrete Go integer type, so a
// constructed int member equals its decoded uint64 counterpart.
func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case *RecordValue:
		bv, ok := b.(*RecordValue)
		return ok && av.Equal(bv)
	case *ChoiceValue:
		bv, ok := b.(*ChoiceValue)
		return ok && av.Equal(bv)
	case *BitPackedValue:
		bv, ok := b.(*BitPackedValue)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		if au, ok := numeric.ToUint64(a); ok {
			if bu, ok := numeric.ToUint64(b); ok {
				return au == bu
			}
			return false
		}
		if ai, ok := numeric.ToInt64(a); ok {
			if bi, ok := numeric.ToInt64(b); ok {
				return ai == bi
			}
			return false
		}
		return a == b
	}
}
