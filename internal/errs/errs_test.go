package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with subject",
			err:  New(MalformedKey, "bad_key_no_dot", "key must have exactly one '.'"),
			want: "[malformed-key] key must have exactly one '.' (bad_key_no_dot)",
		},
		{
			name: "message only",
			err:  New(InvalidOrdinal, "", "ordinal %d is not positive", 0),
			want: "[invalid-ordinal] ordinal 0 is not positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("write model.cif: %w", New(LoopValueTooComplex, "_x.y", "multi-line value"))
	if !errors.Is(err, LoopValueTooComplex) {
		t.Fatalf("errors.Is should match the bare code")
	}
	if errors.Is(err, MalformedKey) {
		t.Fatalf("errors.Is matched the wrong code")
	}
	if got := CodeOf(err); got != LoopValueTooComplex {
		t.Fatalf("CodeOf = %q", got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Fatalf("CodeOf(plain) = %q, want empty", got)
	}
}

func TestCodes_Stable(t *testing.T) {
	if MalformedKey != "malformed-key" || InconsistentColumnLength != "inconsistent-column-length" ||
		UnsupportedValueShape != "unsupported-value-shape" || LoopValueTooComplex != "loop-value-too-complex" ||
		InvalidOrdinal != "invalid-ordinal" || InvalidCopyCount != "invalid-copy-count" ||
		UnknownMoleculeType != "unknown-molecule-type" {
		t.Fatalf("error code constants changed")
	}
}
