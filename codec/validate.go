package codec

import (
	"fmt"

	"github.com/wippyai/bincodec/codec/internal/numeric"
	"github.com/wippyai/bincodec/errors"
)

// Validator checks candidate values before they are encoded and after they
// are decoded. The phase records which direction triggered the check.
type Validator interface {
	Validate(phase errors.Phase, v any) error
}

// UintRangeValidator validates unsigned integers against inclusive bounds.
type UintRangeValidator struct {
	Min, Max uint64
}

func (rv UintRangeValidator) Validate(phase errors.Phase, v any) error {
	u, ok := numeric.ToUint64(v)
	if !ok {
		return errors.TypeMismatch(phase, nil, fmt.Sprintf("%T", v), "unsigned integer")
	}
	if u < rv.Min || u > rv.Max {
		return errors.OutOfRange(phase, nil, u, rv.Min, rv.Max)
	}
	return nil
}

// IntRangeValidator validates signed integers against inclusive bounds.
type IntRangeValidator struct {
	Min, Max int64
}

func (rv IntRangeValidator) Validate(phase errors.Phase, v any) error {
	i, ok := numeric.ToInt64(v)
	if !ok {
		return errors.TypeMismatch(phase, nil, fmt.Sprintf("%T", v), "signed integer")
	}
	if i < rv.Min || i > rv.Max {
		return errors.OutOfRange(phase, nil, i, rv.Min, rv.Max)
	}
	return nil
}

// MembershipValidator validates that a value belongs to a fixed set, such
// as the declared members of an enumeration.
type MembershipValidator struct {
	Values   map[uint64]struct{}
	TypeName string
}

func (mv MembershipValidator) Validate(phase errors.Phase, v any) error {
	u, ok := numeric.ToUint64(v)
	if !ok {
		return errors.TypeMismatch(phase, nil, fmt.Sprintf("%T", v), mv.TypeName)
	}
	if _, ok := mv.Values[u]; !ok {
		return errors.NotAMember(phase, nil, u, mv.TypeName)
	}
	return nil
}
