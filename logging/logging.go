// Package logging builds the charm logger shared by every tool.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"gene_analyzer_go/seqerr"
)

// Prefix is printed ahead of every log line.
const Prefix = "gene_analyzer"

// ParseLevel maps a config or flag value onto a log level. An empty value
// means info.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return log.InfoLevel, seqerr.Invalid("log_level", s, "expected debug, info, warn or error")
}

// New returns a timestamped logger writing to w at the given level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          Prefix,
		Level:           lvl,
	})
	return logger, err
}

// Discard returns a logger that drops everything. Tests and library callers
// that do not care about progress output use it.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
