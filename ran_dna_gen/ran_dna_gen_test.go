package ran_dna_gen

import (
	"path/filepath"
	"strings"
	"testing"

	"gene_analyzer_go/fasta"
	"gene_analyzer_go/seqerr"
)

func TestSequenceIsReproducible(t *testing.T) {
	a, err := New(11).Sequence(500, 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := New(11).Sequence(500, 0.6)
	if a != b {
		t.Fatal("same seed produced different sequences")
	}
	if len(a) != 500 {
		t.Fatalf("expected length 500, got %d", len(a))
	}
	if strings.Trim(a, "ACGT") != "" {
		t.Fatalf("unexpected characters in %s", a)
	}
}

func TestSequenceGCExtremes(t *testing.T) {
	gen := New(5)
	allGC, _ := gen.Sequence(200, 1.0)
	if strings.Trim(allGC, "GC") != "" {
		t.Fatalf("gc_bias 1.0 should yield only G/C: %s", allGC)
	}
	allAT, _ := gen.Sequence(200, 0.0)
	if strings.Trim(allAT, "AT") != "" {
		t.Fatalf("gc_bias 0.0 should yield only A/T: %s", allAT)
	}
}

func TestSequenceValidation(t *testing.T) {
	gen := New(1)
	if _, err := gen.Sequence(-1, 0.5); !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error for negative length, got %v", err)
	}
	if _, err := gen.Sequence(10, 1.5); !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error for bias, got %v", err)
	}
}

func TestORFShape(t *testing.T) {
	gen := New(9)
	for _, n := range []int{0, 2, 5, 60} {
		orf := gen.ORF(n)
		want := n
		if want < 2 {
			want = 2
		}
		if len(orf) != want*3 {
			t.Fatalf("codons %d: expected length %d, got %d", n, want*3, len(orf))
		}
		if !strings.HasPrefix(orf, "ATG") {
			t.Fatalf("missing start codon: %s", orf)
		}
		for i := 3; i < len(orf)-3; i += 3 {
			switch orf[i : i+3] {
			case "TAA", "TAG", "TGA":
				t.Fatalf("premature stop at %d in %s", i, orf)
			}
		}
		switch orf[len(orf)-3:] {
		case "TAA", "TAG", "TGA":
		default:
			t.Fatalf("missing stop codon: %s", orf)
		}
	}
}

func TestPlantAndWrap(t *testing.T) {
	if got := Plant("AAAA", "GG", 2); got != "AAGGAA" {
		t.Fatalf("unexpected plant result %s", got)
	}
	if got := Plant("AA", "GG", 10); got != "AAGG" {
		t.Fatalf("unexpected clamped plant result %s", got)
	}
	if got := WrapFasta("ACGTACGTAC", 4); got != "ACGT\nACGT\nAC\n" {
		t.Fatalf("unexpected wrap %q", got)
	}
	if got := Record("x", "ACG", 0); got != ">x\nACG\n" {
		t.Fatalf("unexpected record %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	text := Record("r1", "ACGTACGTAA", 4) + Record("r2", "GGCC", 60)

	for _, compress := range []bool{false, true} {
		path, err := WriteFile(filepath.Join(dir, "out.fasta"), text, compress)
		if err != nil {
			t.Fatalf("compress=%v: unexpected error: %v", compress, err)
		}
		if compress != strings.HasSuffix(path, ".gz") {
			t.Fatalf("compress=%v: unexpected path %s", compress, path)
		}
		recs, err := fasta.ReadFile(path)
		if err != nil {
			t.Fatalf("compress=%v: reading back: %v", compress, err)
		}
		if len(recs) != 2 || recs[0].Sequence != "ACGTACGTAA" || recs[1].Sequence != "GGCC" {
			t.Fatalf("compress=%v: unexpected records %+v", compress, recs)
		}
	}

	if _, err := WriteFile(filepath.Join(dir, "missing", "out.fasta"), text, true); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
