// Package config holds tool versions and the optional JSON settings file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gene_analyzer_go/analyzer"
	"gene_analyzer_go/logging"
	"gene_analyzer_go/orf_finder"
	"gene_analyzer_go/seqerr"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "gene_analyzer.json"

// Settings are the defaults for the analyze tool. Command line flags that
// are set explicitly win over these.
type Settings struct {
	MinORFLength int    `json:"min_orf_length"`
	TopCodons    int    `json:"top_codons"`
	Workers      int    `json:"workers"`
	Aggregate    bool   `json:"aggregate"`
	CodonScope   string `json:"codon_scope"`
	LogLevel     string `json:"log_level"`
	TextWidth    int    `json:"text_width"`
}

// Defaults returns the settings used when no file is present.
func Defaults() Settings {
	return Settings{
		MinORFLength: orf_finder.DefaultMinLength,
		TopCodons:    10,
		Workers:      0,
		CodonScope:   string(analyzer.ScopeORFs),
		LogLevel:     "info",
		TextWidth:    60,
	}
}

// Load reads settings from path. An empty path means DefaultPath. A missing
// file is not an error: defaults are returned. Fields absent from the file
// keep their default values.
func Load(path string) (Settings, error) {
	if path == "" {
		path = DefaultPath
	}
	s := Defaults()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Defaults(), fmt.Errorf("reading settings %s: %w", path, err)
	}
	return s, s.Validate()
}

// Validate reports the first out-of-range field.
func (s Settings) Validate() error {
	if s.MinORFLength < 0 {
		return seqerr.Invalid("min_orf_length", s.MinORFLength, "must not be negative")
	}
	if s.TopCodons < 0 {
		return seqerr.Invalid("top_codons", s.TopCodons, "must not be negative")
	}
	if s.Workers < 0 {
		return seqerr.Invalid("workers", s.Workers, "must not be negative")
	}
	if s.TextWidth < 0 {
		return seqerr.Invalid("text_width", s.TextWidth, "must not be negative")
	}
	if _, err := analyzer.ParseCodonScope(s.CodonScope); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// AnalyzerOptions converts the settings into analyzer options.
func (s Settings) AnalyzerOptions() (analyzer.Options, error) {
	scope, err := analyzer.ParseCodonScope(s.CodonScope)
	if err != nil {
		return analyzer.Options{}, err
	}
	return analyzer.Options{
		MinORFLength: s.MinORFLength,
		Aggregate:    s.Aggregate,
		Workers:      s.Workers,
		CodonScope:   scope,
	}, nil
}
