package codec

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/bincodec/errors"
)

func TestBitPackedGolden(t *testing.T) {
	v, err := testFlags.New(Values{
		"packet_type": 2,
		"protocol":    1,
		"request_ack": 1,
		"field_d":     5,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v.Uint() != 0x9d {
		t.Fatalf("Uint: got %#x, want 0x9d", v.Uint())
	}
	data, err := Encode(testFlags, v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(data, []byte{0x9d}) {
		t.Fatalf("Encode: got % x, want 9d", data)
	}

	back, err := Decode(testFlags, data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	bv := back.(*BitPackedValue)
	tests := []struct {
		field string
		want  uint64
	}{
		{"packet_type", 2},
		{"protocol", 1},
		{"request_ack", 1},
		{"field_d", 5},
	}
	for _, tt := range tests {
		if got := bv.Get(tt.field); got != tt.want {
			t.Errorf("Get(%s): got %d, want %d", tt.field, got, tt.want)
		}
	}
	if !bv.Equal(v) {
		t.Error("decoded value should equal the constructed one")
	}
}

func TestBitPackedSetKeepsStaleBits(t *testing.T) {
	v, err := testFlags.New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v.Set("field_d", 5)
	v.Set("field_d", 2)
	// Set ORs without clearing, so 0b101 | 0b010 leaves 0b111.
	if got := v.Get("field_d"); got != 7 {
		t.Errorf("Get(field_d): got %d, want 7", got)
	}
}

func TestBitPackedSetMasksValue(t *testing.T) {
	v, err := testFlags.New(Values{"field_d": 9})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// 9 is 0b1001; only the low three bits belong to field_d.
	if got := v.Get("field_d"); got != 1 {
		t.Errorf("Get(field_d): got %d, want 1", got)
	}
	if got := v.Get("request_ack"); got != 0 {
		t.Errorf("Get(request_ack): got %d, want 0", got)
	}
}

func TestBitPackedFromUint(t *testing.T) {
	v, err := testFlags.FromUint(0x9d)
	if err != nil {
		t.Fatalf("FromUint: %v", err)
	}
	if got := v.Get("packet_type"); got != 2 {
		t.Errorf("Get(packet_type): got %d, want 2", got)
	}
	if _, err := testFlags.FromUint(0x100); !errors.IsValidation(err) {
		t.Errorf("FromUint(0x100): got %v, want validation error", err)
	}
}

func TestBitPackedNewCoercion(t *testing.T) {
	if _, err := testFlags.New(Values{"packet_type": uint8(3)}); err != nil {
		t.Errorf("New(uint8): %v", err)
	}
	_, err := testFlags.New(Values{"packet_type": "3"})
	if !errors.IsEncoding(err) {
		t.Fatalf("New(string): got %v, want encoding error", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if len(e.Path) != 2 || e.Path[0] != "Flags" || e.Path[1] != "packet_type" {
		t.Errorf("path: got %v, want [Flags packet_type]", e.Path)
	}
}

func TestBitPackedUnknownNames(t *testing.T) {
	v, err := testFlags.New(Values{"bogus": 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v.Uint() != 0 {
		t.Errorf("Uint: got %#x, want 0", v.Uint())
	}
	if _, ok := v.Lookup("bogus"); ok {
		t.Error("Lookup(bogus): expected miss")
	}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unknown field")
		}
		e, ok := r.(*errors.Error)
		if !ok || e.Kind != errors.KindFieldUnknown {
			t.Fatalf("panic value: got %v", r)
		}
	}()
	v.Get("bogus")
}

func TestBitPackedMultiByte(t *testing.T) {
	w := MustBitPackedInteger("Wide", 2,
		BF("hi", 0xff00),
		BF("lo", 0x00ff),
	)
	v, err := w.New(Values{"hi": 0xab, "lo": 0xcd})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := Encode(w, v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(data, []byte{0xab, 0xcd}) {
		t.Errorf("Encode: got % x, want ab cd", data)
	}
}

func TestBitPackedZeroMask(t *testing.T) {
	z := MustBitPackedInteger("Z", 1, BF("ghost", 0))
	v, err := z.New(Values{"ghost": 0xff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := v.Get("ghost"); got != 0 {
		t.Errorf("Get(ghost): got %d, want 0", got)
	}
	if v.Uint() != 0 {
		t.Errorf("Uint: got %#x, want 0", v.Uint())
	}
}

func TestBitPackedString(t *testing.T) {
	v, err := testFlags.FromUint(0x9d)
	if err != nil {
		t.Fatalf("FromUint: %v", err)
	}
	want := "Flags{packet_type: 2, protocol: 1, request_ack: 1, field_d: 5}"
	if got := v.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}

func TestBitPackedRejectsForeignValues(t *testing.T) {
	if _, err := Encode(testFlags, uint64(0x9d)); !errors.IsEncoding(err) {
		t.Errorf("Encode(uint64): got %v, want type mismatch", err)
	}
	other := MustBitPackedInteger("Other", 1, BF("x", 0x01))
	foreign, err := other.New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := Encode(testFlags, foreign); !errors.IsEncoding(err) {
		t.Errorf("Encode(foreign): got %v, want type mismatch", err)
	}
}

func TestBitPackedDefaultValue(t *testing.T) {
	d := testFlags.DefaultValue().(*BitPackedValue)
	if d.Uint() != 0 {
		t.Errorf("Uint: got %#x, want 0", d.Uint())
	}
}

func TestBitPackedConstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"empty name", func() error {
			_, err := NewBitPackedInteger("", 1, BF("a", 0x01))
			return err
		}()},
		{"bad width", func() error {
			_, err := NewBitPackedInteger("B", 3, BF("a", 0x01))
			return err
		}()},
		{"unnamed field", func() error {
			_, err := NewBitPackedInteger("B", 1, BF("", 0x01))
			return err
		}()},
		{"duplicate field", func() error {
			_, err := NewBitPackedInteger("B", 1, BF("a", 0x01), BF("a", 0x02))
			return err
		}()},
		{"mask beyond width", func() error {
			_, err := NewBitPackedInteger("B", 1, BF("a", 0x100))
			return err
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.IsMalformedSchema(tt.err) {
				t.Fatalf("got %v, want malformed schema", tt.err)
			}
		})
	}
}

func TestBitPackedTruncatedDecode(t *testing.T) {
	w := MustBitPackedInteger("Wide", 2, BF("hi", 0xff00))
	if _, err := Decode(w, []byte{0xab}); !errors.IsTruncated(err) {
		t.Errorf("Decode: got %v, want truncated", err)
	}
}
