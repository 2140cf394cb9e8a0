package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"gene_analyzer_go/seqerr"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"":        log.InfoLevel,
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hidden message")
	logger.Warn("shown message", "records", 3)

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Fatalf("info line leaked through warn level:\n%s", out)
	}
	if !strings.Contains(out, "shown message") || !strings.Contains(out, "records=3") {
		t.Fatalf("missing warn line:\n%s", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Fatalf("missing prefix:\n%s", out)
	}
}

func TestNewUnknownLevelStillLogs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "chatty")
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
	logger.Info("fallback")
	if !strings.Contains(buf.String(), "fallback") {
		t.Fatalf("expected info output, got %q", buf.String())
	}
}
