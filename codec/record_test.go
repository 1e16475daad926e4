package codec

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/bincodec/errors"
)

func TestRecordFieldOrder(t *testing.T) {
	u8 := MustUnsignedInteger(WithWidth(1))

	// Declaration order is the wire order.
	declared := MustRecord("Declared",
		F("first", u8),
		F("second", u8),
		F("third", u8),
	)
	data, err := Encode(declared, declared.New(Values{"first": 1, "second": 2, "third": 3}))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Fatalf("declared order: got % x, want 01 02 03", data)
	}

	// Explicit positions always precede declaration-ordered fields and
	// sort among themselves.
	pinned := MustRecord("Pinned",
		F("tail", u8),
		FOrd(2, "late", u8),
		FOrd(1, "early", u8),
	)
	data, err = Encode(pinned, pinned.New(Values{"tail": 3, "late": 2, "early": 1}))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Fatalf("pinned order: got % x, want 01 02 03", data)
	}

	fields := pinned.Fields()
	wantNames := []string{"early", "late", "tail"}
	for i, n := range wantNames {
		if fields[i].Name != n {
			t.Errorf("Fields[%d]: got %s, want %s", i, fields[i].Name, n)
		}
	}
}

func TestRecordEmptyEncodesNothing(t *testing.T) {
	data, err := Encode(testReset, testReset.New(nil))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("Encode: got % x, want no bytes", data)
	}
	if _, err := Decode(testReset, nil); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestRecordNewDefaultsAndUnknowns(t *testing.T) {
	hdr := testHeader.New(Values{"size": 5, "bogus": 99})
	if got := hdr.Get("barker").(uint64); got != 0xcafebeef {
		t.Errorf("barker: got %#x, want default 0xcafebeef", got)
	}
	if got := hdr.Get("size"); got.(int) != 5 {
		t.Errorf("size: got %v, want 5", got)
	}
	if _, ok := hdr.Lookup("bogus"); ok {
		t.Error("unknown name should not become a member")
	}
}

func TestRecordGetSetLookup(t *testing.T) {
	hdr := testHeader.New(nil)
	hdr.Set("size", 42)
	if got := hdr.Get("size").(int); got != 42 {
		t.Errorf("size after Set: got %d, want 42", got)
	}
	if v, ok := hdr.Lookup("inverted_size"); !ok || v.(uint64) != 0 {
		t.Errorf("Lookup(inverted_size): got %v, %v", v, ok)
	}
	if _, ok := hdr.Lookup("nope"); ok {
		t.Error("Lookup(nope): expected miss")
	}
}

func TestRecordGetUnknownPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unknown member")
		}
		e, ok := r.(*errors.Error)
		if !ok {
			t.Fatalf("panic value: got %T, want *errors.Error", r)
		}
		if e.Kind != errors.KindFieldUnknown {
			t.Errorf("kind: got %s, want field_unknown", e.Kind)
		}
	}()
	testHeader.New(nil).Get("nope")
}

func TestRecordMemberErrorPath(t *testing.T) {
	inner := MustRecord("Inner",
		F("level", MustUnsignedInteger(WithWidth(1), WithMax(10))),
	)
	outer := MustRecord("Outer",
		F("inner", inner),
	)

	v := outer.New(Values{"inner": inner.New(Values{"level": 99})})
	_, err := Encode(outer, v)
	if !errors.IsValidation(err) {
		t.Fatalf("Encode: got %v, want validation error", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	wantPath := []string{"inner", "level"}
	if len(e.Path) != 2 || e.Path[0] != wantPath[0] || e.Path[1] != wantPath[1] {
		t.Errorf("path: got %v, want %v", e.Path, wantPath)
	}
}

func TestRecordRejectsForeignValues(t *testing.T) {
	if _, err := Encode(testHeader, "not a record"); !errors.IsEncoding(err) {
		t.Errorf("Encode(string): got %v, want type mismatch", err)
	}
	// A value constructed by another record is rejected even when shapes
	// line up.
	if _, err := Encode(testHeader, testGetStatus.New(nil)); !errors.IsEncoding(err) {
		t.Errorf("Encode(foreign record): got %v, want type mismatch", err)
	}
}

func TestRecordEquality(t *testing.T) {
	a := testHeader.New(Values{"size": 5})
	b := testHeader.New(Values{"size": uint64(5)})
	if !a.Equal(b) {
		t.Error("int and uint64 member values should compare equal")
	}

	c := testHeader.New(Values{"size": 6})
	if a.Equal(c) {
		t.Error("different member values should not compare equal")
	}

	if a.Equal(nil) {
		t.Error("nil should not compare equal")
	}

	// Round-tripping yields an equal value.
	data, err := Encode(testHeader, a)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(testHeader, data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !back.(*RecordValue).Equal(a) {
		t.Error("decoded value should equal the encoded one")
	}
}

func TestRecordDefaultValue(t *testing.T) {
	d := testGetStatus.DefaultValue().(*RecordValue)
	if d.Get("is_active").(bool) {
		t.Error("is_active default: got true, want false")
	}
	if d.Get("uptime").(uint64) != 0 {
		t.Error("uptime default: got nonzero, want 0")
	}
}

func TestRecordConstructionErrors(t *testing.T) {
	u8 := MustUnsignedInteger(WithWidth(1))
	if _, err := NewRecord(""); !errors.IsMalformedSchema(err) {
		t.Errorf("empty name: got %v, want malformed schema", err)
	}
	if _, err := NewRecord("R", F("a", u8), F("a", u8)); !errors.IsMalformedSchema(err) {
		t.Errorf("duplicate field: got %v, want malformed schema", err)
	}
	if _, err := NewRecord("R", F("", u8)); !errors.IsMalformedSchema(err) {
		t.Errorf("unnamed field: got %v, want malformed schema", err)
	}
	if _, err := NewRecord("R", F("a", nil)); !errors.IsMalformedSchema(err) {
		t.Errorf("nil coder: got %v, want malformed schema", err)
	}
}

func TestRecordDecodeStopsAtFirstError(t *testing.T) {
	// Header wants 8 bytes; give it 5.
	_, err := Decode(testHeader, []byte{0xba, 0x5e, 0xba, 0x11, 0x12})
	if !errors.IsTruncated(err) {
		t.Fatalf("Decode: got %v, want truncated", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if len(e.Path) == 0 || e.Path[0] != "size" {
		t.Errorf("path: got %v, want size first", e.Path)
	}
}
