package codon_usage

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"gene_analyzer_go/fasta"
	"gene_analyzer_go/orf_finder"
	"gene_analyzer_go/seqerr"
)

// AllCodons returns the 64 ACGT codons in alphabetical order.
func AllCodons() []string {
	nucleotides := []byte{'A', 'C', 'G', 'T'}
	codons := make([]string, 0, 64)
	for _, a := range nucleotides {
		for _, b := range nucleotides {
			for _, c := range nucleotides {
				codons = append(codons, string([]byte{a, b, c}))
			}
		}
	}
	return codons
}

type codonRow struct {
	Codon  string
	Count  int
	RelPct float64
}

// WriteTable prints the table as tab separated rows. sortBy is "alpha" or
// "freq"; includeZero lists all 64 codons even when unseen.
func WriteTable(w io.Writer, t *Table, sortBy string, relFreq bool, includeZero bool) error {
	var rows []codonRow
	if includeZero {
		for _, codon := range AllCodons() {
			rows = append(rows, codonRow{Codon: codon, Count: t.Count(codon)})
		}
	} else {
		for _, cc := range t.TopN(0) {
			rows = append(rows, codonRow{Codon: cc.Codon, Count: cc.Count})
		}
	}
	for i := range rows {
		if t.Total() > 0 {
			rows[i].RelPct = float64(rows[i].Count) / float64(t.Total()) * 100
		}
	}

	switch sortBy {
	case "freq":
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Count != rows[j].Count {
				return rows[i].Count > rows[j].Count
			}
			return rows[i].Codon < rows[j].Codon
		})
	case "alpha", "":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Codon < rows[j].Codon
		})
	default:
		return seqerr.Invalid("sort_by", sortBy, "expected 'alpha' or 'freq'")
	}

	if relFreq {
		fmt.Fprintln(w, "Codon\tCount\tRelative_Freq(%)")
	} else {
		fmt.Fprintln(w, "Codon\tCount")
	}
	for _, row := range rows {
		var err error
		if relFreq {
			_, err = fmt.Fprintf(w, "%s\t%d\t%.2f\n", row.Codon, row.Count, row.RelPct)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%d\n", row.Codon, row.Count)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Run is the codon_usage tool. It tabulates codons over whole sequences or,
// with -orfs_only, over the ORFs found in each sequence.
func Run(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("codon_usage", flag.ExitOnError)

	inFile := fs.String("in_file", "", "FASTA file input")
	frame := fs.Int("frame", 1, "Reading frame (1, 2 or 3) for whole-sequence counting")
	orfsOnly := fs.Bool("orfs_only", false, "Count codons inside ORFs only")
	minLen := fs.Int("minlen", orf_finder.DefaultMinLength, "Minimum ORF length when -orfs_only is set")
	relFreq := fs.Bool("rel_freq", true, "Output relative frequency (%)")
	sortBy := fs.String("sort_by", "alpha", "Sort output by 'alpha' or 'freq'")
	all := fs.Bool("all", false, "List all 64 codons, including unseen ones")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unrecognized arguments: %v (use -h to view valid flags)", fs.Args())
	}
	if *inFile == "" {
		return fmt.Errorf("-in_file is required")
	}
	if *frame < 1 || *frame > 3 {
		return seqerr.Invalid("frame", *frame, "only 1, 2, 3 are allowed")
	}

	records, err := fasta.ReadFile(*inFile)
	if err != nil {
		return err
	}

	table := New()
	for _, rec := range records {
		if !*orfsOnly {
			if err := table.Accumulate(rec.Sequence, *frame-1); err != nil {
				return err
			}
			continue
		}
		orfs, err := orf_finder.FindORFs(rec.Sequence, *minLen)
		if err != nil {
			return err
		}
		residues := orf_finder.Residues(rec.Sequence)
		for _, o := range orfs {
			if err := table.Accumulate(string(residues[o.Start:o.End]), 0); err != nil {
				return err
			}
		}
	}

	logger.Info("codon usage", "records", len(records), "codons", table.Total(), "skipped", table.Skipped())
	return WriteTable(os.Stdout, table, *sortBy, *relFreq, *all)
}
