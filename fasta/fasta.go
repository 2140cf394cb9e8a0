// Package fasta turns FASTA text into ordered, normalized sequence records.
// Parsing is permissive: text before the first header is skipped, blank lines
// are ignored and unusual symbols are kept so downstream stats can bucket them.
package fasta

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"gene_analyzer_go/seqerr"
)

// Record is a single FASTA entry.
type Record struct {
	ID          string // header token up to the first whitespace
	Description string // remainder of the header line
	Sequence    string // uppercased, whitespace free
}

// Header rebuilds the header line without the leading '>'.
func (r Record) Header() string {
	if r.Description == "" {
		return r.ID
	}
	return r.ID + " " + r.Description
}

// Parse splits text into records in input order. It never fails; a text
// without any '>' header yields zero records.
func Parse(text string) []Record {
	var (
		records  []Record
		current  Record
		inRecord bool
		buffer   strings.Builder
	)

	flush := func() {
		if !inRecord {
			return
		}
		current.Sequence = buffer.String()
		records = append(records, current)
		buffer.Reset()
	}

	for _, raw := range strings.Split(text, "\n") {
		// only a '>' in the first column starts a record
		if strings.HasPrefix(raw, ">") {
			flush()
			current = splitHeader(raw[1:])
			inRecord = true
			continue
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !inRecord {
			continue // leading junk before the first header
		}
		buffer.WriteString(strings.ToUpper(removeSpace(line)))
	}
	flush()

	return records
}

// ParseBytes validates that data is UTF-8 text before parsing it.
func ParseBytes(data []byte) ([]Record, error) {
	return parseSource("<input>", data)
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader) ([]Record, error) {
	return parseReaderSource("<input>", r)
}

func parseReaderSource(source string, r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &seqerr.ParseError{Source: source, Offset: -1, Reason: err.Error()}
	}
	return parseSource(source, data)
}

func parseSource(source string, data []byte) ([]Record, error) {
	if off := invalidUTF8Offset(data); off >= 0 {
		return nil, &seqerr.ParseError{Source: source, Offset: off, Reason: "input is not valid UTF-8 text"}
	}
	return Parse(string(data)), nil
}

func splitHeader(header string) Record {
	header = strings.TrimSpace(header)
	cut := strings.IndexFunc(header, unicode.IsSpace)
	if cut < 0 {
		return Record{ID: header}
	}
	return Record{
		ID:          header[:cut],
		Description: strings.TrimSpace(header[cut:]),
	}
}

func removeSpace(line string) string {
	if strings.IndexFunc(line, unicode.IsSpace) < 0 {
		return line
	}
	return strings.Join(strings.Fields(line), "")
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
