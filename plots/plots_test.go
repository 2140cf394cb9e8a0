package plots

import (
	"strings"
	"testing"

	"gene_analyzer_go/analyzer"
	"gene_analyzer_go/codon_usage"
	"gene_analyzer_go/fasta"
	"gene_analyzer_go/seqerr"
)

func batch(t *testing.T) *analyzer.Result {
	t.Helper()
	text := ">a\nATGAAATAGGGCC\n>b\nATGCCCGGGTTTTGAAT\n>c\n>d\nGGGGCCCCATGTAA\n"
	res, err := analyzer.Analyze(fasta.Parse(text), analyzer.Options{MinORFLength: 6})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return res
}

func TestCodonUsageSVG(t *testing.T) {
	table := codon_usage.New()
	if err := table.Accumulate("ATGAAAAAACCCTAG", 0); err != nil {
		t.Fatal(err)
	}
	svg, err := CodonUsageSVG(table, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Fatalf("output is not SVG: %.80s", svg)
	}

	if _, err := CodonUsageSVG(codon_usage.New(), 3); !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error for empty table, got %v", err)
	}
}

func TestGCDistributionSVG(t *testing.T) {
	svg, err := GCDistributionSVG(batch(t).Reports)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Fatalf("output is not SVG: %.80s", svg)
	}

	single := []analyzer.Report{batch(t).Reports[0]}
	if _, err := GCDistributionSVG(single); err != nil {
		t.Fatalf("single record should still plot: %v", err)
	}
	if _, err := GCDistributionSVG(nil); !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestORFLengthSVG(t *testing.T) {
	svg, err := ORFLengthSVG(batch(t).Reports, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Fatalf("output is not SVG: %.80s", svg)
	}

	empty := []analyzer.Report{{Record: fasta.Record{ID: "x"}}}
	if _, err := ORFLengthSVG(empty, 5); !seqerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
