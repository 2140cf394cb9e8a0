package orf_finder

import (
	"sort"
	"unicode"

	"gene_analyzer_go/seqerr"
)

// DefaultMinLength is the minimum ORF length in nucleotides used when the
// caller has no preference.
const DefaultMinLength = 75

const startCodon = "ATG"

var stopCodons = map[string]bool{"TAA": true, "TAG": true, "TGA": true}

// ORF is a codon-aligned span from an ATG to the first in-frame stop codon.
// Offsets count characters (runes), the same unit as seq_stats lengths.
type ORF struct {
	Start  int // 0-based character offset of the start codon
	End    int // exclusive, one past the stop codon
	Frame  int // 1, 2 or 3
	Length int // End - Start
}

// LengthAA is the number of codons, stop included.
func (o ORF) LengthAA() int {
	return o.Length / 3
}

// NormalizeMinLength rounds n down to a multiple of 3 with a floor of 3.
// Negative values are rejected.
func NormalizeMinLength(n int) (int, error) {
	if n < 0 {
		return 0, seqerr.Invalid("min_orf_length", n, "must not be negative")
	}
	n -= n % 3
	if n < 3 {
		n = 3
	}
	return n, nil
}

// FindORFs scans the three forward frames of sequence and returns every ORF
// of at least minLength nucleotides, ordered by start then frame.
func FindORFs(sequence string, minLength int) ([]ORF, error) {
	minLen, err := NormalizeMinLength(minLength)
	if err != nil {
		return nil, err
	}
	return findNormalized(sequence, minLen, []int{1, 2, 3}), nil
}

// Residues returns sequence as upper-cased runes. Each rune maps to exactly
// one rune, so offsets into the result are offsets into sequence.
func Residues(sequence string) []rune {
	res := []rune(sequence)
	for i, r := range res {
		res[i] = unicode.ToUpper(r)
	}
	return res
}

// findNormalized expects minLen to already be normalized and frames to be
// 1-based.
func findNormalized(sequence string, minLen int, frames []int) []ORF {
	orfs := []ORF{}
	seq := Residues(sequence)
	if len(seq) < 3 {
		return orfs
	}

	for _, f := range frames {
		orfs = append(orfs, scanFrame(seq, f, minLen)...)
	}

	sort.SliceStable(orfs, func(i, j int) bool {
		if orfs[i].Start != orfs[j].Start {
			return orfs[i].Start < orfs[j].Start
		}
		return orfs[i].Frame < orfs[j].Frame
	})
	return orfs
}

type scanState int

const (
	seekingStart scanState = iota
	inORF
)

// scanFrame walks one reading frame. Every ATG opens a candidate and the
// next in-frame stop closes all open candidates, so nested starts sharing a
// stop each yield their own ORF. Candidates still open at the end of the
// sequence are dropped.
func scanFrame(seq []rune, frame int, minLen int) []ORF {
	var (
		orfs  []ORF
		state = seekingStart
		open  []int
	)

	for i := frame - 1; i+3 <= len(seq); i += 3 {
		codon := string(seq[i : i+3])

		switch state {
		case seekingStart:
			if codon == startCodon {
				open = append(open[:0], i)
				state = inORF
			}
		case inORF:
			if stopCodons[codon] {
				end := i + 3
				for _, start := range open {
					if end-start >= minLen {
						orfs = append(orfs, ORF{Start: start, End: end, Frame: frame, Length: end - start})
					}
				}
				open = open[:0]
				state = seekingStart
			} else if codon == startCodon {
				open = append(open, i)
			}
		}
	}

	return orfs
}
