package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseEncode,
				Kind:       KindTypeMismatch,
				Path:       []string{"packet", "header", "size"},
				GoType:     "string",
				SchemaType: "uint16",
				Detail:     "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "packet.header.size", "string", "uint16", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfRange,
			},
			contains: []string{"[decode]", "out_of_range"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindTruncated,
				Detail: "premature end of data",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[decode]", "truncated", "premature end of data", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindBadEncoding,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindTypeMismatch,
		Path:  []string{"foo"},
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindOutOfRange}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseEncode, Kind: KindTypeMismatch}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindTypeMismatch).
		Path("header", "size").
		GoType("string").
		SchemaType("uint16").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "integer", "string").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "header" || err.Path[1] != "size" {
		t.Errorf("Path = %v, want [header size]", err.Path)
	}
	if err.GoType != "string" {
		t.Errorf("GoType = %v, want 'string'", err.GoType)
	}
	if err.SchemaType != "uint16" {
		t.Errorf("SchemaType = %v, want 'uint16'", err.SchemaType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected integer, got string" {
		t.Errorf("Detail = %v, want 'expected integer, got string'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("MalformedSchema", func(t *testing.T) {
		err := MalformedSchema([]string{"header"}, "unsupported width %d", 3)
		if err.Phase != PhaseCompile {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseCompile)
		}
		if err.Kind != KindMalformedSchema {
			t.Errorf("Kind = %v, want %v", err.Kind, KindMalformedSchema)
		}
		if !containsSubstring(err.Detail, "width 3") {
			t.Errorf("Detail = %v, should contain formatted width", err.Detail)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		err := OutOfRange(PhaseEncode, []string{"size"}, 300, 0, 255)
		if err.Kind != KindOutOfRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
		}
		if err.Value != 300 {
			t.Errorf("Value = %v, want 300", err.Value)
		}
		for _, s := range []string{"300", "0", "255"} {
			if !containsSubstring(err.Detail, s) {
				t.Errorf("Detail = %v, should contain %s", err.Detail, s)
			}
		}
	})

	t.Run("NotAMember", func(t *testing.T) {
		err := NotAMember(PhaseDecode, []string{"opcode"}, uint64(9), "command")
		if err.Kind != KindNotAMember {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotAMember)
		}
		if err.SchemaType != "command" {
			t.Errorf("SchemaType = %v, want 'command'", err.SchemaType)
		}
	})

	t.Run("UnknownTag", func(t *testing.T) {
		err := UnknownTag([]string{"command"}, 0x99, "command")
		if err.Phase != PhaseDecode {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
		}
		if err.Kind != KindUnknownTag {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnknownTag)
		}
		if !containsSubstring(err.Detail, "0x99") {
			t.Errorf("Detail = %v, should contain hex tag", err.Detail)
		}
	})

	t.Run("LengthOutOfRange", func(t *testing.T) {
		err := LengthOutOfRange(PhaseEncode, []string{"payload"}, 12, 0, 10)
		if err.Kind != KindLengthOutOfRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindLengthOutOfRange)
		}
		if err.Value != 12 {
			t.Errorf("Value = %v, want 12", err.Value)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		err := Truncated([]string{"size"}, 4, 2)
		if err.Kind != KindTruncated {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTruncated)
		}
		if !containsSubstring(err.Detail, "premature end of data") {
			t.Errorf("Detail = %v, should name premature end of data", err.Detail)
		}
		if !containsSubstring(err.Detail, "want 4 bytes, have 2") {
			t.Errorf("Detail = %v, should carry want/have counts", err.Detail)
		}
	})

	t.Run("NoTerminator", func(t *testing.T) {
		err := NoTerminator([]string{"name"}, 16)
		if err.Kind != KindTruncated {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTruncated)
		}
		if !containsSubstring(err.Detail, "no terminator") {
			t.Errorf("Detail = %v, should mention terminator", err.Detail)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseEncode, []string{"field"}, "int", "string")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.GoType != "int" || err.SchemaType != "string" {
			t.Errorf("GoType=%v SchemaType=%v", err.GoType, err.SchemaType)
		}
	})

	t.Run("BadEncoding", func(t *testing.T) {
		err := BadEncoding(PhaseEncode, []string{"name"}, "byte %#x is not ASCII", 0xc3)
		if err.Kind != KindBadEncoding {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBadEncoding)
		}
		if !containsSubstring(err.Detail, "0xc3") {
			t.Errorf("Detail = %v, should contain offending byte", err.Detail)
		}
	})

	t.Run("FieldUnknown", func(t *testing.T) {
		err := FieldUnknown(PhaseDecode, []string{"record"}, "extra")
		if err.Kind != KindFieldUnknown {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldUnknown)
		}
	})
}

func TestWithMember(t *testing.T) {
	t.Run("prepends to path", func(t *testing.T) {
		inner := OutOfRange(PhaseEncode, []string{"size"}, 300, 0, 255)
		err := WithMember(inner, "header")

		var e *Error
		if !errors.As(err, &e) {
			t.Fatal("WithMember should return *Error")
		}
		if len(e.Path) != 2 || e.Path[0] != "header" || e.Path[1] != "size" {
			t.Errorf("Path = %v, want [header size]", e.Path)
		}
		// Original untouched
		if len(inner.Path) != 1 {
			t.Errorf("original Path mutated: %v", inner.Path)
		}
	})

	t.Run("wraps foreign errors", func(t *testing.T) {
		cause := errors.New("io failure")
		err := WithMember(cause, "payload")

		var e *Error
		if !errors.As(err, &e) {
			t.Fatal("WithMember should wrap into *Error")
		}
		if !errors.Is(err, cause) {
			t.Error("wrapped error should match cause via errors.Is")
		}
	})

	t.Run("nil passthrough", func(t *testing.T) {
		if WithMember(nil, "x") != nil {
			t.Error("WithMember(nil) should be nil")
		}
	})
}

func TestCategoryPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		want      bool
	}{
		{"out_of_range is validation", OutOfRange(PhaseEncode, nil, 1, 2, 3), IsValidation, true},
		{"not_a_member is validation", NotAMember(PhaseDecode, nil, 5, "e"), IsValidation, true},
		{"unknown_tag is validation", UnknownTag(nil, 9, "c"), IsValidation, true},
		{"length is validation", LengthOutOfRange(PhaseEncode, nil, 9, 0, 4), IsValidation, true},
		{"truncated is not validation", Truncated(nil, 4, 0), IsValidation, false},
		{"malformed schema", MalformedSchema(nil, "bad"), IsMalformedSchema, true},
		{"truncated", Truncated(nil, 2, 1), IsTruncated, true},
		{"no terminator is truncated", NoTerminator(nil, 8), IsTruncated, true},
		{"bad encoding", BadEncoding(PhaseEncode, nil, "x"), IsEncoding, true},
		{"type mismatch is encoding", TypeMismatch(PhaseEncode, nil, "a", "b"), IsEncoding, true},
		{"foreign error matches nothing", errors.New("plain"), IsValidation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.predicate(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("matches through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("decode packet: %w", Truncated(nil, 4, 1))
		if !IsTruncated(wrapped) {
			t.Error("IsTruncated should see through fmt.Errorf wrapping")
		}
	})
}

func containsSubstring(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && containsSubstringHelper(s, substr)))
}

func containsSubstringHelper(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
