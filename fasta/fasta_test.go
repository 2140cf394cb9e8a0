package fasta

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gene_analyzer_go/seqerr"
)

func TestParseSimple(t *testing.T) {
	input := ">seq1\nATGC\n>seq2 some description here\nggtt\nAA\n"
	recs := Parse(input)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID != "seq1" || recs[0].Description != "" || recs[0].Sequence != "ATGC" {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
	if recs[1].ID != "seq2" || recs[1].Description != "some description here" || recs[1].Sequence != "GGTTAA" {
		t.Fatalf("unexpected second record: %+v", recs[1])
	}
	if recs[1].Header() != "seq2 some description here" {
		t.Fatalf("unexpected header: %q", recs[1].Header())
	}
}

func TestParseRoundTrip(t *testing.T) {
	lines := [][]string{
		{"ACGTACGTAC", "GTACGT", "A"},
		{"NNNN"},
		{"ATGAAATAG", "ATGCCC"},
	}
	var sb strings.Builder
	for i, seqLines := range lines {
		sb.WriteString(">rec" + string(rune('A'+i)) + "\n")
		for _, l := range seqLines {
			sb.WriteString(l + "\n")
		}
	}

	recs := Parse(sb.String())
	if len(recs) != len(lines) {
		t.Fatalf("expected %d records, got %d", len(lines), len(recs))
	}
	for i, rec := range recs {
		if want := "rec" + string(rune('A'+i)); rec.ID != want {
			t.Fatalf("record %d: expected id %s, got %s", i, want, rec.ID)
		}
		if want := strings.Join(lines[i], ""); rec.Sequence != want {
			t.Fatalf("record %d: expected %s, got %s", i, want, rec.Sequence)
		}
	}
}

func TestParseEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Record
	}{
		{"empty", "", nil},
		{"no header", "ACGT\nACGT\n", nil},
		{"junk before header", "junk line\n\n>x\nAC\n", []Record{{ID: "x", Sequence: "AC"}}},
		{"blank lines and crlf", ">x desc\r\n\r\nAC \r\n\n  GT\r\n", []Record{{ID: "x", Description: "desc", Sequence: "ACGT"}}},
		{"header without sequence", ">a\n>b\nTT\n", []Record{{ID: "a"}, {ID: "b", Sequence: "TT"}}},
		{"interior whitespace", ">a\nAC GT\tTT\n", []Record{{ID: "a", Sequence: "ACGTTT"}}},
		{"non standard symbols kept", ">a\nacgu-*rx\n", []Record{{ID: "a", Sequence: "ACGU-*RX"}}},
		{"header tab separated", ">id\tdesc  words \nA\n", []Record{{ID: "id", Description: "desc  words", Sequence: "A"}}},
		{"indented marker before header", "  >junk\n>x\nAC\n", []Record{{ID: "x", Sequence: "AC"}}},
		{"indented marker inside record", ">x\nAC\n  >GT\n", []Record{{ID: "x", Sequence: "AC>GT"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d records, got %d (%+v)", len(tc.want), len(got), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("record %d: expected %+v, got %+v", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestParseBytesRejectsInvalidUTF8(t *testing.T) {
	data := []byte(">a\nAC\xffGT\n")
	_, err := ParseBytes(data)
	if err == nil {
		t.Fatal("expected parse error for invalid UTF-8")
	}
	if !seqerr.IsParse(err) {
		t.Fatalf("expected *seqerr.ParseError, got %T", err)
	}

	recs, err := ParseBytes([]byte(">a\nAC\n"))
	if err != nil || len(recs) != 1 {
		t.Fatalf("unexpected result: %v %v", recs, err)
	}
}

func TestAcceptedExtension(t *testing.T) {
	for _, name := range []string{"a.fasta", "b.FA", "dir/c.fna", "d.faa", "e.fa.gz"} {
		if !AcceptedExtension(name) {
			t.Fatalf("expected %s to be accepted", name)
		}
	}
	for _, name := range []string{"a.txt", "b.vcf", "c", "d.gz", "e.fastq"} {
		if AcceptedExtension(name) {
			t.Fatalf("expected %s to be rejected", name)
		}
	}
}

func TestReadFilePlainAndGzip(t *testing.T) {
	dir := t.TempDir()
	content := ">s1 first\nATGAAA\nTAG\n>s2\nGGCC\n"

	plain := filepath.Join(dir, "in.fa")
	if err := os.WriteFile(plain, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	gzPath := filepath.Join(dir, "in.fasta.gz")
	f, err := os.Create(gzPath)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte(content)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	gw.Close()
	f.Close()

	for _, path := range []string{plain, gzPath} {
		recs, err := ReadFile(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if len(recs) != 2 || recs[0].Sequence != "ATGAAATAG" || recs[1].ID != "s2" {
			t.Fatalf("%s: unexpected records %+v", path, recs)
		}
	}
}

func TestReadFileRejectsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte(">a\nAC\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := ReadFile(path)
	if !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.fa"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if seqerr.IsParse(err) || seqerr.IsValidation(err) {
		t.Fatalf("missing file should be an I/O error, got %v", err)
	}
}

func TestReadFileSniff(t *testing.T) {
	dir := t.TempDir()

	fastaLike := filepath.Join(dir, "reads.txt")
	if err := os.WriteFile(fastaLike, []byte(">a\nAC\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := ReadFileSniff(fastaLike)
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "a" || recs[0].Sequence != "AC" {
		t.Fatalf("unexpected records %+v", recs)
	}

	gzPath := filepath.Join(dir, "reads.dat.gz")
	f, err := os.Create(gzPath)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw := gzip.NewWriter(f)
	gw.Write([]byte(">b\nGG\n"))
	gw.Close()
	f.Close()
	recs, err = ReadFileSniff(gzPath)
	if err != nil || len(recs) != 1 || recs[0].Sequence != "GG" {
		t.Fatalf("gzip sniff: %+v, %v", recs, err)
	}

	notFasta := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notFasta, []byte("hello\n>a\nAC\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadFileSniff(notFasta); !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadFileSniff(empty); !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error for empty file, got %v", err)
	}
}
