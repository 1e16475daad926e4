package codec

import (
	"bytes"
	"testing"

	"github.com/wippyai/bincodec/errors"
)

func TestBooleanEncode(t *testing.T) {
	c := MustBoolean()

	data, err := Encode(c, true)
	if err != nil {
		t.Fatalf("Encode(true): %v", err)
	}
	if !bytes.Equal(data, []byte{0x01}) {
		t.Errorf("Encode(true): got % x, want 01", data)
	}

	data, err = Encode(c, false)
	if err != nil {
		t.Fatalf("Encode(false): %v", err)
	}
	if !bytes.Equal(data, []byte{0x00}) {
		t.Errorf("Encode(false): got % x, want 00", data)
	}
}

func TestBooleanDecodeNonzeroIsTrue(t *testing.T) {
	c := MustBoolean()
	tests := []struct {
		data []byte
		want bool
	}{
		{[]byte{0x00}, false},
		{[]byte{0x01}, true},
		{[]byte{0xab}, true},
		{[]byte{0xff}, true},
	}
	for _, tt := range tests {
		v, err := Decode(c, tt.data)
		if err != nil {
			t.Errorf("Decode(% x): %v", tt.data, err)
			continue
		}
		if v.(bool) != tt.want {
			t.Errorf("Decode(% x): got %v, want %v", tt.data, v, tt.want)
		}
	}
}

func TestBooleanRejectsNonBool(t *testing.T) {
	c := MustBoolean()
	for _, v := range []any{1, uint64(1), "true", 1.0} {
		if _, err := Encode(c, v); !errors.IsEncoding(err) {
			t.Errorf("Encode(%T): got %v, want type mismatch", v, err)
		}
	}
}

func TestBooleanOptions(t *testing.T) {
	if d := MustBoolean(WithDefault(true)).DefaultValue().(bool); !d {
		t.Error("default: got false, want true")
	}
	if d := MustBoolean().DefaultValue().(bool); d {
		t.Error("default: got true, want false")
	}
	if _, err := NewBoolean(WithWidth(2)); !errors.IsMalformedSchema(err) {
		t.Errorf("width 2: got %v, want malformed schema", err)
	}
	if _, err := NewBoolean(WithDefault(1)); !errors.IsMalformedSchema(err) {
		t.Errorf("integer default: got %v, want malformed schema", err)
	}
}

func TestBooleanTruncated(t *testing.T) {
	if _, err := Decode(MustBoolean(), nil); !errors.IsTruncated(err) {
		t.Errorf("Decode(empty): got %v, want truncated", err)
	}
}
