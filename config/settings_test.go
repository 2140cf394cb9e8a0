package config

import (
	"os"
	"path/filepath"
	"testing"

	"gene_analyzer_go/analyzer"
	"gene_analyzer_go/seqerr"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != Defaults() {
		t.Fatalf("expected defaults, got %+v", s)
	}
}

func TestLoadOverridesSomeFields(t *testing.T) {
	path := writeSettings(t, `{"min_orf_length": 30, "aggregate": true, "codon_scope": "sequence"}`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.MinORFLength != 30 || !s.Aggregate || s.CodonScope != "sequence" {
		t.Fatalf("file values not applied: %+v", s)
	}
	if s.TopCodons != 10 || s.TextWidth != 60 || s.LogLevel != "info" {
		t.Fatalf("defaults lost for absent fields: %+v", s)
	}

	opts, err := s.AnalyzerOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.MinORFLength != 30 || opts.CodonScope != analyzer.ScopeSequence || !opts.Aggregate {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	if _, err := Load(writeSettings(t, `{"min_orf_length": `)); err == nil {
		t.Fatal("expected decode error for truncated JSON")
	}
	if _, err := Load(writeSettings(t, `{"min_orf": 30}`)); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if _, err := Load(writeSettings(t, `{"workers": -2}`)); !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []func(*Settings){
		func(s *Settings) { s.MinORFLength = -1 },
		func(s *Settings) { s.TopCodons = -1 },
		func(s *Settings) { s.TextWidth = -5 },
		func(s *Settings) { s.CodonScope = "genome" },
		func(s *Settings) { s.LogLevel = "shout" },
	}
	for i, mutate := range cases {
		s := Defaults()
		mutate(&s)
		if err := s.Validate(); !seqerr.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
