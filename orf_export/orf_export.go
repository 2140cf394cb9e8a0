// Package orf_export writes the ORFs of analyzed records as FASTA, either as
// nucleotide slices or translated to protein.
package orf_export

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"gene_analyzer_go/analyzer"
	"gene_analyzer_go/codon_usage"
	"gene_analyzer_go/orf_finder"
	"gene_analyzer_go/seqerr"
)

// Kind selects what is written for each ORF.
type Kind int

const (
	Nucleotide Kind = iota
	Protein
)

// DefaultWidth is the residue count per FASTA line.
const DefaultWidth = 60

// SeqID names the n-th (1-based) ORF of a record.
func SeqID(recordID string, n int) string {
	if recordID == "" {
		recordID = "unnamed"
	}
	return fmt.Sprintf("%s_orf%d", recordID, n)
}

func describe(o orf_finder.ORF) string {
	return fmt.Sprintf("start=%d end=%d frame=+%d length=%d", o.Start, o.End, o.Frame, o.Length)
}

func residues(sequence []rune, o orf_finder.ORF, kind Kind) (string, alphabet.Alphabet) {
	nt := string(sequence[o.Start:o.End])
	if kind == Protein {
		return strings.TrimSuffix(codon_usage.Translate(nt), "*"), alphabet.Protein
	}
	return nt, alphabet.DNA
}

// WriteORFs writes every ORF of every successful report to w and returns the
// number of sequences written.
func WriteORFs(w io.Writer, reports []analyzer.Report, kind Kind, width int) (int, error) {
	if kind != Nucleotide && kind != Protein {
		return 0, seqerr.Invalid("export kind", int(kind), "expected nucleotide or protein")
	}
	if width <= 0 {
		width = DefaultWidth
	}

	out := fasta.NewWriter(w, width)
	written := 0
	for _, r := range reports {
		if r.Err != nil {
			continue
		}
		sequence := orf_finder.Residues(r.Record.Sequence)
		for i, o := range r.ORFs {
			if o.Start < 0 || o.End > len(sequence) || o.Start > o.End {
				return written, seqerr.Invalid("orf end", o.End, "beyond sequence "+r.Record.ID)
			}
			res, alpha := residues(sequence, o, kind)
			s := linear.NewSeq(SeqID(r.Record.ID, i+1), alphabet.BytesToLetters([]byte(res)), alpha)
			s.Desc = describe(o)
			if _, err := out.Write(s); err != nil {
				return written, fmt.Errorf("writing %s: %w", s.ID, err)
			}
			written++
		}
	}
	return written, nil
}
