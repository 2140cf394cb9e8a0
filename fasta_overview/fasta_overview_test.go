package fasta_overview

import (
	"bytes"
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gene_analyzer_go/seqerr"
)

const sample = `stray line
>seq1 first
ACGTACGTAC
GGCC

>seq1 duplicate
ATGXN
>
>short
ACG
`

func TestCheck(t *testing.T) {
	rep, err := Check(strings.NewReader(sample), "sample.fasta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Headers != 4 || rep.DuplicateHeaders != 1 || rep.EmptyHeaders != 1 {
		t.Fatalf("unexpected header counts %+v", rep)
	}
	if rep.LinesBeforeHeader != 1 || rep.BlankLinesInSequence != 1 {
		t.Fatalf("unexpected layout counts %+v", rep)
	}
	if rep.EmptySequences != 1 || rep.ShortSequences != 2 {
		t.Fatalf("unexpected length classes %+v", rep)
	}
	if rep.InvalidBases['X'] != 1 || len(rep.InvalidBases) != 1 {
		t.Fatalf("unexpected invalid bases %v", rep.InvalidBases)
	}
	if rep.TotalBases != 14+5+3 {
		t.Fatalf("unexpected total bases %d", rep.TotalBases)
	}
	if rep.WrappedRecords != 1 || rep.UnwrappedRecords != 2 {
		t.Fatalf("unexpected wrapping counts %+v", rep)
	}
	if len(rep.Records) != 4 || rep.Records[0].Length != 14 || rep.Records[2].ID != "unnamed_8" {
		t.Fatalf("unexpected records %+v", rep.Records)
	}
	if math.Abs(rep.Records[0].GCPercent-9.0/14.0*100) > 1e-9 {
		t.Fatalf("unexpected GC %f", rep.Records[0].GCPercent)
	}
}

func TestCheckIndentedMarkerIsNotHeader(t *testing.T) {
	rep, err := Check(strings.NewReader("  >stray\n>a\nACGT\n  >GG\n"), "indent.fasta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Headers != 1 || rep.LinesBeforeHeader != 1 {
		t.Fatalf("unexpected header counts %+v", rep)
	}
	if rep.InvalidBases['>'] != 1 || rep.TotalBases != 7 {
		t.Fatalf("indented marker should be sequence content: %+v", rep)
	}
}

func TestWriteReport(t *testing.T) {
	rep, err := Check(strings.NewReader(sample), "sample.fasta")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteReport(&buf, rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Headers found: 4",
		"Duplicate headers found: 1",
		"X: 1",
		"Shortest: 0 bp",
		"Longest:  14 bp",
		"seq1: 14 bp, GC = 64.29%",
		"1 sequences use line wrapping",
		"10 bp: 1 line(s)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestCheckFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.fa.gz")
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(">a\nGGCC\n"))
	zw.Close()
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	rep, err := CheckFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Headers != 1 || rep.Records[0].GCPercent != 100 {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestCheckFileBadExtension(t *testing.T) {
	if _, err := CheckFile("reads.txt"); !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
