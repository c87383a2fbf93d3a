package faults_test

import (
	"errors"
	"strings"
	"testing"

	"adrtools/internal/faults"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := faults.Wrap(faults.ErrRowParse, "normalize", "read rows", "missing tcin", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, faults.ErrRowParse) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"normalize", "read rows", "missing tcin"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := faults.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestRecoverableAndKind(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		recoverable bool
		kind        string
	}{
		{"nil", nil, false, ""},
		{"configuration", faults.Wrap(faults.ErrConfiguration, "batch", "registry", "missing", nil), false, "configuration"},
		{"row parse", faults.Wrap(faults.ErrRowParse, "normalize", "", "", nil), true, "row_parse"},
		{"variation", faults.Wrap(faults.ErrVariationMismatch, "speakers", "", "", nil), true, "variation_mismatch"},
		{"plain", errors.New("disk full"), true, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := faults.Recoverable(tt.err); got != tt.recoverable {
				t.Errorf("Recoverable() = %v, want %v", got, tt.recoverable)
			}
			if got := faults.Kind(tt.err); got != tt.kind {
				t.Errorf("Kind() = %q, want %q", got, tt.kind)
			}
		})
	}
}
