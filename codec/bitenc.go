package codec

// BitEncoder packs values of arbitrary bit widths into bytes, most
// significant bit first. Values accumulate as they are pushed and Bytes
// assembles them in one pass.
type BitEncoder struct {
	parts []bitPart
}

type bitPart struct {
	bits  int
	value uint64
}

// Push appends a value occupying the given number of bits. Bits of value
// above the requested width are dropped; a non-positive width pushes
// nothing.
func (e *BitEncoder) Push(bits int, value uint64) {
	if bits <= 0 {
		return
	}
	if bits < 64 {
		value &= lowMask(bits)
	}
	e.parts = append(e.parts, bitPart{bits: bits, value: value})
}

// Bytes assembles the pushed values into a byte slice. Only whole bytes
// are emitted; a trailing run shorter than a byte is withheld.
func (e *BitEncoder) Bytes() []byte {
	var out []byte
	offset := 0
	mid := uint64(0)
	for _, p := range e.parts {
		bits, value := p.bits, p.value
		toenc := 8 - offset
		if bits < toenc {
			toenc = bits
		}
		mid <<= toenc
		bits -= toenc
		mid |= value >> bits
		value &= lowMask(bits)
		offset += toenc
		if offset == 8 {
			out = append(out, byte(mid))
			offset, mid = 0, 0
		}
		for bits >= 8 {
			bits -= 8
			out = append(out, byte(value>>bits))
			value &= lowMask(bits)
		}
		mid <<= bits
		mid |= value
		offset += bits
	}
	return out
}

func lowMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}
