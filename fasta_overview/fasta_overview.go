// Package fasta_overview checks the layout of a FASTA file and prints
// per-record and file-wide content statistics.
package fasta_overview

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"gene_analyzer_go/fasta"
	"gene_analyzer_go/seq_stats"
	"gene_analyzer_go/seqerr"
)

// ShortThreshold is the length below which a record is reported as short.
const ShortThreshold = 10

const maxLineBytes = 64 * 1024 * 1024

// RecordStats is the per-record line of the overview.
type RecordStats struct {
	ID        string
	Length    int
	GCPercent float64
	NPercent  float64
}

// Report collects layout problems and content statistics for one file.
type Report struct {
	FileName             string
	Headers              int
	DuplicateHeaders     int
	EmptyHeaders         int
	EmptySequences       int
	ShortSequences       int
	LinesBeforeHeader    int
	BlankLinesInSequence int
	InvalidBases         map[rune]int
	TotalBases           int
	WrappedRecords       int
	UnwrappedRecords     int
	LineLengths          map[int]int
	Records              []RecordStats
}

type scanState struct {
	rep      *Report
	seen     map[string]bool
	id       string
	open     bool
	lines    int
	sequence strings.Builder
}

func (s *scanState) closeRecord() {
	if !s.open {
		return
	}
	st := seq_stats.Compute(s.sequence.String())
	s.rep.Records = append(s.rep.Records, RecordStats{
		ID:        s.id,
		Length:    st.Length,
		GCPercent: st.GCPercent,
		NPercent:  st.NPercent,
	})
	switch {
	case st.Length == 0:
		s.rep.EmptySequences++
	case st.Length < ShortThreshold:
		s.rep.ShortSequences++
	}
	switch {
	case s.lines == 1:
		s.rep.UnwrappedRecords++
	case s.lines > 1:
		s.rep.WrappedRecords++
	}
	s.sequence.Reset()
	s.lines = 0
}

// Check scans FASTA text from r. name is only used for labelling.
func Check(r io.Reader, name string) (Report, error) {
	rep := Report{
		FileName:     name,
		InvalidBases: map[rune]int{},
		LineLengths:  map[int]int{},
	}
	state := &scanState{rep: &rep, seen: map[string]bool{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			if state.open {
				rep.BlankLinesInSequence++
			}
			continue
		}

		if strings.HasPrefix(raw, ">") {
			state.closeRecord()
			rep.Headers++
			state.open = true

			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				rep.EmptyHeaders++
				state.id = fmt.Sprintf("unnamed_%d", lineNum)
			} else {
				state.id = fields[0]
			}
			if state.seen[state.id] {
				rep.DuplicateHeaders++
			}
			state.seen[state.id] = true
			continue
		}

		if !state.open {
			rep.LinesBeforeHeader++
			continue
		}
		state.lines++
		rep.LineLengths[len(line)]++
		for _, base := range line {
			if unicode.IsSpace(base) {
				continue
			}
			rep.TotalBases++
			switch unicode.ToUpper(base) {
			case 'A', 'C', 'G', 'T', 'U', 'N':
			default:
				rep.InvalidBases[unicode.ToUpper(base)]++
			}
			state.sequence.WriteRune(base)
		}
	}
	state.closeRecord()

	if err := scanner.Err(); err != nil {
		return rep, &seqerr.ParseError{Source: name, Offset: -1, Reason: err.Error()}
	}
	return rep, nil
}

// CheckFile opens path (plain or gzip) and checks it.
func CheckFile(path string) (Report, error) {
	if !fasta.AcceptedExtension(path) {
		return Report{FileName: path}, seqerr.Invalid("file extension", filepath.Ext(path),
			"expected one of "+strings.Join(fasta.Extensions, ", "))
	}
	rc, err := fasta.Open(path)
	if err != nil {
		return Report{FileName: path}, err
	}
	defer rc.Close()
	return Check(rc, path)
}

// WriteReport prints rep in the console layout.
func WriteReport(w io.Writer, rep Report) error {
	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) { fmt.Fprintf(bw, format, args...) }

	p("FASTA Format Check Report: %s\n", rep.FileName)
	p("------------------------------------------\n")
	p("Headers found: %d\n", rep.Headers)

	if rep.DuplicateHeaders > 0 {
		p("Duplicate headers found: %d\n", rep.DuplicateHeaders)
	} else {
		p("No duplicate headers found\n")
	}
	if rep.EmptyHeaders > 0 {
		p("Empty headers found: %d\n", rep.EmptyHeaders)
	} else {
		p("All headers contain names\n")
	}
	if rep.EmptySequences > 0 {
		p("Headers with no sequence: %d\n", rep.EmptySequences)
	} else {
		p("All headers have associated sequences\n")
	}
	if rep.ShortSequences > 0 {
		p("Sequences under %d bp: %d\n", ShortThreshold, rep.ShortSequences)
	}
	if rep.LinesBeforeHeader > 0 {
		p("Sequence lines before first header: %d\n", rep.LinesBeforeHeader)
	}
	if rep.BlankLinesInSequence > 0 {
		p("Empty lines within sequences: %d\n", rep.BlankLinesInSequence)
	}

	if len(rep.InvalidBases) > 0 {
		bases := make([]rune, 0, len(rep.InvalidBases))
		total := 0
		for b, n := range rep.InvalidBases {
			bases = append(bases, b)
			total += n
		}
		sort.Slice(bases, func(i, j int) bool { return bases[i] < bases[j] })
		p("Non-nucleotide symbols found:\n")
		for _, b := range bases {
			p("  %c: %d\n", b, rep.InvalidBases[b])
		}
		p("Total non-ACGTUN symbols: %d\n", total)
	} else {
		p("All symbols are A, C, G, T, U or N\n")
	}
	p("Total bases in all sequences: %d\n", rep.TotalBases)

	if len(rep.Records) > 0 {
		lengths := make([]float64, len(rep.Records))
		var gc, n []float64
		for i, r := range rep.Records {
			lengths[i] = float64(r.Length)
			if r.Length > 0 {
				gc = append(gc, r.GCPercent)
				n = append(n, r.NPercent)
			}
		}
		p("\nSequence length statistics:\n")
		p("  Shortest: %.0f bp\n", floats.Min(lengths))
		p("  Longest:  %.0f bp\n", floats.Max(lengths))
		p("  Average:  %.2f bp\n", stat.Mean(lengths, nil))

		p("\nPer-sequence content statistics:\n")
		for _, r := range rep.Records {
			p("  %s: %d bp, GC = %.2f%%, N = %.2f%%\n", r.ID, r.Length, r.GCPercent, r.NPercent)
		}

		if len(gc) > 0 {
			p("\nAverage content across non-empty sequences:\n")
			p("  Mean GC content: %.2f%%\n", stat.Mean(gc, nil))
			p("  Mean N content:  %.2f%%\n", stat.Mean(n, nil))
			p("  GC content range: %.2f%% - %.2f%%\n", floats.Min(gc), floats.Max(gc))
		}
	}

	p("\nLine wrapping:\n")
	if rep.WrappedRecords > 0 {
		p("  %d sequences use line wrapping (multiple lines per sequence)\n", rep.WrappedRecords)
	}
	if rep.UnwrappedRecords > 0 {
		p("  %d sequences are unwrapped (single line only)\n", rep.UnwrappedRecords)
	}
	if len(rep.LineLengths) > 0 {
		keys := make([]int, 0, len(rep.LineLengths))
		for k := range rep.LineLengths {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		p("  Sequence line lengths observed (excluding headers):\n")
		for _, k := range keys {
			p("    %d bp: %d line(s)\n", k, rep.LineLengths[k])
		}
	}
	return bw.Flush()
}

// Run is the fasta_overview tool.
func Run(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("fasta_overview", flag.ExitOnError)
	inFile := fs.String("in_file", "", "FASTA input file (plain or gzip)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unrecognized arguments: %v (use -h to view valid flags)", fs.Args())
	}
	if *inFile == "" {
		return fmt.Errorf("-in_file is required")
	}

	rep, err := CheckFile(*inFile)
	if err != nil {
		return err
	}
	if rep.Headers == 0 {
		logger.Warn("no FASTA headers found", "file", *inFile)
	}
	logger.Debug("overview complete", "records", rep.Headers, "bases", rep.TotalBases)
	return WriteReport(os.Stdout, rep)
}
