// Package analyzer runs stats, ORF discovery and codon usage over a batch of
// FASTA records and returns one report per record, in input order.
package analyzer

import (
	"fmt"
	"runtime"
	"sync"

	"gene_analyzer_go/codon_usage"
	"gene_analyzer_go/fasta"
	"gene_analyzer_go/orf_finder"
	"gene_analyzer_go/seq_stats"
	"gene_analyzer_go/seqerr"
)

// CodonScope selects what part of a record feeds its codon table.
type CodonScope string

const (
	// ScopeORFs counts the codons of every reported ORF.
	ScopeORFs CodonScope = "orfs"
	// ScopeSequence counts the whole sequence in frame 1.
	ScopeSequence CodonScope = "sequence"
)

// ParseCodonScope maps a config or flag value to a CodonScope.
func ParseCodonScope(s string) (CodonScope, error) {
	switch CodonScope(s) {
	case ScopeORFs, "":
		return ScopeORFs, nil
	case ScopeSequence:
		return ScopeSequence, nil
	}
	return "", seqerr.Invalid("codon_scope", s, "expected 'orfs' or 'sequence'")
}

// Options controls a batch analysis.
type Options struct {
	MinORFLength int        // normalized with orf_finder.NormalizeMinLength
	Aggregate    bool       // also build a batch-wide codon table
	Workers      int        // <= 0 means runtime.NumCPU()
	CodonScope   CodonScope // "" means ScopeORFs
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		MinORFLength: orf_finder.DefaultMinLength,
		Workers:      runtime.NumCPU(),
		CodonScope:   ScopeORFs,
	}
}

// Report is the analysis of one record.
type Report struct {
	Record     fasta.Record
	Stats      seq_stats.Stats
	ORFs       []orf_finder.ORF
	CodonUsage *codon_usage.Table
	Err        error // non-nil if the record could not be analyzed; other fields are neutral
}

// Result is the output of Analyze.
type Result struct {
	Reports      []Report
	Aggregate    *codon_usage.Table // nil unless Options.Aggregate
	MinORFLength int                // the normalized minimum actually used
}

// Analyze processes every record independently. A degenerate record yields
// a neutral report instead of failing the batch; only invalid options are
// returned as errors.
func Analyze(records []fasta.Record, opts Options) (*Result, error) {
	minLen, err := orf_finder.NormalizeMinLength(opts.MinORFLength)
	if err != nil {
		return nil, err
	}
	scope, err := ParseCodonScope(string(opts.CodonScope))
	if err != nil {
		return nil, err
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(records) {
		numWorkers = len(records)
	}

	reports := make([]Report, len(records))
	jobs := make(chan int, numWorkers*2)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i] = analyzeRecord(records[i], minLen, scope)
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := &Result{Reports: reports, MinORFLength: minLen}
	if opts.Aggregate {
		// reduce after map, in input order
		result.Aggregate = codon_usage.New()
		for _, r := range reports {
			result.Aggregate.Merge(r.CodonUsage)
		}
	}
	return result, nil
}

// AnalyzeRecord analyzes a single record with normalized options.
func AnalyzeRecord(rec fasta.Record, opts Options) (Report, error) {
	res, err := Analyze([]fasta.Record{rec}, opts)
	if err != nil {
		return Report{}, err
	}
	return res.Reports[0], nil
}

// beforeRecord, when set, runs at the start of every record analysis.
var beforeRecord func(fasta.Record)

func analyzeRecord(rec fasta.Record, minLen int, scope CodonScope) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			report = neutralReport(rec, fmt.Errorf("analyzing %q: %v", rec.ID, r))
		}
	}()
	if beforeRecord != nil {
		beforeRecord(rec)
	}

	report = Report{
		Record:     rec,
		Stats:      seq_stats.Compute(rec.Sequence),
		CodonUsage: codon_usage.New(),
	}

	orfs, err := orf_finder.FindORFs(rec.Sequence, minLen)
	if err != nil {
		return neutralReport(rec, err)
	}
	report.ORFs = orfs

	switch scope {
	case ScopeSequence:
		err = report.CodonUsage.Accumulate(rec.Sequence, 0)
	default:
		residues := orf_finder.Residues(rec.Sequence)
		for _, o := range orfs {
			if err = report.CodonUsage.Accumulate(string(residues[o.Start:o.End]), 0); err != nil {
				break
			}
		}
	}
	if err != nil {
		return neutralReport(rec, err)
	}
	return report
}

func neutralReport(rec fasta.Record, err error) Report {
	return Report{
		Record:     rec,
		Stats:      seq_stats.Compute(""),
		ORFs:       []orf_finder.ORF{},
		CodonUsage: codon_usage.New(),
		Err:        err,
	}
}
