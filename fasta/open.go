package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gene_analyzer_go/seqerr"
)

// Extensions accepted for FASTA input. A trailing ".gz" is also allowed.
var Extensions = []string{".fasta", ".fa", ".fna", ".faa"}

// AcceptedExtension reports whether name ends in one of Extensions,
// optionally followed by ".gz". Matching is case-insensitive.
func AcceptedExtension(name string) bool {
	lower := strings.ToLower(name)
	lower = strings.TrimSuffix(lower, ".gz")
	ext := filepath.Ext(lower)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Open opens a plain or gzip-compressed file. Compression is detected from
// the gzip magic number rather than the file name.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	br := bufio.NewReader(f)
	magic, _ := br.Peek(2)
	if len(magic) == 2 && magic[0] == 0x1F && magic[1] == 0x8B {
		gr, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip reader: %w", err)
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: f}, nil
	}

	return struct {
		io.Reader
		io.Closer
	}{Reader: br, Closer: f}, nil
}

func extensionError(path string) error {
	return seqerr.Invalid("file extension", filepath.Ext(path),
		"expected one of "+strings.Join(Extensions, ", "))
}

// ReadFile checks the extension of path, opens it and parses every record.
func ReadFile(path string) ([]Record, error) {
	if !AcceptedExtension(path) {
		return nil, extensionError(path)
	}
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return parseReaderSource(path, rc)
}

// ReadFileSniff is ReadFile, except that a file whose extension is not
// accepted is still read when its (decompressed) content starts with '>'.
func ReadFileSniff(path string) ([]Record, error) {
	if AcceptedExtension(path) {
		return ReadFile(path)
	}
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	first, err := br.Peek(1)
	if err != nil && err != io.EOF {
		return nil, &seqerr.ParseError{Source: path, Offset: -1, Reason: err.Error()}
	}
	if len(first) == 0 || first[0] != '>' {
		return nil, extensionError(path)
	}
	return parseReaderSource(path, br)
}
