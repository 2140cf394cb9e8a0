package seqerr

import (
	"fmt"
	"strings"
	"testing"
)

func TestWrappedErrorsAreDetected(t *testing.T) {
	pe := &ParseError{Source: "in.fa", Offset: 12, Reason: "invalid UTF-8"}
	wrapped := fmt.Errorf("reading: %w", pe)
	if !IsParse(wrapped) {
		t.Fatalf("expected IsParse to see through wrapping")
	}
	if IsValidation(wrapped) {
		t.Fatalf("parse error must not be reported as validation error")
	}
	if !strings.Contains(pe.Error(), "byte 12") {
		t.Fatalf("unexpected message: %s", pe.Error())
	}

	ve := Invalid("min_orf_length", -3, "must not be negative")
	if !IsValidation(fmt.Errorf("analyze: %w", ve)) {
		t.Fatalf("expected IsValidation to see through wrapping")
	}
	if got := ve.Error(); got != "invalid min_orf_length (-3): must not be negative" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestParseErrorWithoutOffset(t *testing.T) {
	pe := &ParseError{Source: "<input>", Offset: -1, Reason: "read failed"}
	if got := pe.Error(); got != "parse <input>: read failed" {
		t.Fatalf("unexpected message: %q", got)
	}
}
