package orf_finder

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"gene_analyzer_go/fasta"
	"gene_analyzer_go/seqerr"
)

// WriteGFF writes one GFF3 line per ORF. IDs continue from *counter so
// several records can share one output stream.
func WriteGFF(w io.Writer, seqID string, orfs []ORF, counter *int) error {
	for _, orf := range orfs {
		*counter++
		attrs := fmt.Sprintf("ID=orf%d;Length_nt=%d;Length_aa=%d;Frame=%d;StartCodon=%s",
			*counter, orf.Length, orf.LengthAA(), orf.Frame, startCodon)

		// GFF3 uses 1-based inclusive coordinates. Every ORF begins on its
		// start codon, so the phase is always 0.
		_, err := fmt.Fprintf(w, "%s\tGeneAnalyzer\tORF\t%d\t%d\t.\t+\t0\t%s\n",
			seqID, orf.Start+1, orf.End, attrs)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTSV writes one tab separated line per ORF: sequence ID, strand,
// 1-based start, end, length and frame. When residues is non-nil the ORF
// sequence is appended as a seventh column.
func WriteTSV(w io.Writer, seqID string, orfs []ORF, residues []rune) error {
	for _, orf := range orfs {
		var err error
		if residues != nil {
			_, err = fmt.Fprintf(w, "%s\t+\t%d\t%d\t%d\t%d\t%s\n",
				seqID, orf.Start+1, orf.End, orf.Length, orf.Frame, string(residues[orf.Start:orf.End]))
		} else {
			_, err = fmt.Fprintf(w, "%s\t+\t%d\t%d\t%d\t%d\n",
				seqID, orf.Start+1, orf.End, orf.Length, orf.Frame)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SummaryStats accumulates totals over every record of a run.
type SummaryStats struct {
	Total         int
	TotalLength   int
	LongestLength int
	LongestSeqID  string
	LongestStart  int // 1-based
	LongestEnd    int
	FrameCounts   map[int]int
}

// Add folds the ORFs of one record into s.
func (s *SummaryStats) Add(seqID string, orfs []ORF) {
	if s.FrameCounts == nil {
		s.FrameCounts = map[int]int{}
	}
	for _, orf := range orfs {
		s.Total++
		s.TotalLength += orf.Length
		s.FrameCounts[orf.Frame]++
		if orf.Length > s.LongestLength {
			s.LongestLength = orf.Length
			s.LongestSeqID = seqID
			s.LongestStart = orf.Start + 1
			s.LongestEnd = orf.End
		}
	}
}

// Write prints the summary block.
func (s *SummaryStats) Write(w io.Writer) error {
	avg := 0.0
	if s.Total > 0 {
		avg = float64(s.TotalLength) / float64(s.Total)
	}
	var sb strings.Builder
	sb.WriteString("\n=== ORF Summary ===\n")
	fmt.Fprintf(&sb, "Total ORFs: %d\n", s.Total)
	if s.Total > 0 {
		fmt.Fprintf(&sb, "Longest ORF: %d bp (%s:%d-%d)\n",
			s.LongestLength, s.LongestSeqID, s.LongestStart, s.LongestEnd)
	}
	fmt.Fprintf(&sb, "Average ORF length: %.1f bp\n", avg)
	sb.WriteString("Frame usage:\n")
	frames := make([]int, 0, len(s.FrameCounts))
	for f := range s.FrameCounts {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	for _, f := range frames {
		fmt.Fprintf(&sb, "  %+d: %d\n", f, s.FrameCounts[f])
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func parseFrames(frameStr string) ([]int, error) {
	var frames []int
	seen := map[int]bool{}
	for _, s := range strings.Split(frameStr, ",") {
		s = strings.TrimPrefix(strings.TrimSpace(s), "+")
		if s == "" {
			continue
		}
		f, err := strconv.Atoi(s)
		if err != nil || f < 1 || f > 3 {
			return nil, seqerr.Invalid("frame", s, "only 1, 2, 3 are allowed")
		}
		if !seen[f] {
			frames = append(frames, f)
			seen[f] = true
		}
	}
	if len(frames) == 0 {
		return nil, seqerr.Invalid("frame", frameStr, "no frames selected")
	}
	return frames, nil
}

// Run is the orf_finder tool: FASTA in, TSV or GFF3 out.
func Run(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("orf_finder", flag.ExitOnError)

	inputFile := fs.String("in_file", "", "Input FASTA file")
	minLen := fs.Int("minlen", DefaultMinLength, "Minimum ORF length (nt)")
	frameFlag := fs.String("frame", "1,2,3", "Comma-separated frame(s): 1,2,3")
	outFmt := fs.String("outfmt", "tsv", "Output format: 'tsv' or 'gff'")
	showSeq := fs.Bool("showseq", false, "Show ORF sequence. Suppressed on GFF3 output mode")
	summaryFlag := fs.Bool("summary", false, "Print ORF summary to stdout")
	outFile := fs.String("out_file", "", "Output file (default is stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unrecognized arguments: %v (use -h to view valid flags)", fs.Args())
	}
	if *inputFile == "" {
		return fmt.Errorf("-in_file is required")
	}
	if *outFmt != "tsv" && *outFmt != "gff" {
		return seqerr.Invalid("outfmt", *outFmt, "choose 'tsv' or 'gff'")
	}

	frames, err := parseFrames(*frameFlag)
	if err != nil {
		return err
	}
	normMin, err := NormalizeMinLength(*minLen)
	if err != nil {
		return err
	}
	if normMin != *minLen {
		logger.Warn("minimum ORF length normalized", "requested", *minLen, "used", normMin)
	}

	records, err := fasta.ReadFile(*inputFile)
	if err != nil {
		return fmt.Errorf("error running ORF finder: %w", err)
	}
	if len(records) == 0 {
		logger.Warn("no FASTA records found", "file", *inputFile)
	}

	write := func(w io.Writer) (*SummaryStats, error) {
		return writeORFs(w, records, normMin, frames, *outFmt, *showSeq, logger)
	}

	var summary *SummaryStats
	if *outFile == "" {
		bw := bufio.NewWriter(os.Stdout)
		if summary, err = write(bw); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return err
		}
	} else {
		f, err := os.Create(*outFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		bw := bufio.NewWriter(f)
		summary, err = write(bw)
		if err == nil {
			err = bw.Flush()
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", *outFile, err)
		}
	}

	logger.Info("ORF search complete", "records", len(records), "orfs", summary.Total)
	if *summaryFlag {
		return summary.Write(os.Stdout)
	}
	return nil
}

func writeORFs(w io.Writer, records []fasta.Record, minLen int, frames []int, outFmt string, showSeq bool, logger *log.Logger) (*SummaryStats, error) {
	summary := &SummaryStats{FrameCounts: map[int]int{}}
	if outFmt == "gff" {
		if _, err := io.WriteString(w, "##gff-version 3\n"); err != nil {
			return summary, err
		}
	}

	counter := 0
	for _, rec := range records {
		residues := Residues(rec.Sequence)
		orfs := findNormalized(rec.Sequence, minLen, frames)
		logger.Debug("scanned record", "id", rec.ID, "length", len(residues), "orfs", len(orfs))
		summary.Add(rec.ID, orfs)

		var err error
		switch {
		case outFmt == "gff":
			err = WriteGFF(w, rec.ID, orfs, &counter)
		case showSeq:
			err = WriteTSV(w, rec.ID, orfs, residues)
		default:
			err = WriteTSV(w, rec.ID, orfs, nil)
		}
		if err != nil {
			return summary, err
		}
	}
	return summary, nil
}
