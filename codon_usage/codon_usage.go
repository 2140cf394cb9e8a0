// Package codon_usage accumulates in-frame codon counts over sequences or ORFs.
//
// Only complete codons drawn from A, C, G and T are counted. Anything else
// (N, IUPAC ambiguity codes, gaps) is tallied separately as skipped so callers
// can report how much of the input was unusable.
package codon_usage

import (
	"sort"
	"strings"

	"gene_analyzer_go/seqerr"
)

// CodonCount pairs a codon with its occurrence count.
type CodonCount struct {
	Codon string
	Count int
}

// Table is a codon frequency table. The zero value is not usable; call New.
// A Table is not safe for concurrent use.
type Table struct {
	counts  map[string]int
	total   int
	skipped int
}

// New returns an empty table.
func New() *Table {
	return &Table{counts: make(map[string]int)}
}

// Accumulate counts the codons of sequence read from frameOffset (0, 1 or 2)
// in steps of 3 characters. Trailing partial codons are ignored.
func (t *Table) Accumulate(sequence string, frameOffset int) error {
	if frameOffset < 0 || frameOffset > 2 {
		return seqerr.Invalid("frame_offset", frameOffset, "must be 0, 1 or 2")
	}
	seq := []rune(sequence)
	for i := frameOffset; i+3 <= len(seq); i += 3 {
		codon := strings.ToUpper(string(seq[i : i+3]))
		if !isACGT(codon) {
			t.skipped++
			continue
		}
		t.counts[codon]++
		t.total++
	}
	return nil
}

func isACGT(codon string) bool {
	for i := 0; i < len(codon); i++ {
		switch codon[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}

// Count returns the count for codon (case-insensitive).
func (t *Table) Count(codon string) int {
	return t.counts[strings.ToUpper(codon)]
}

// Total is the number of counted codons.
func (t *Table) Total() int { return t.total }

// Skipped is the number of codons rejected for containing non-ACGT symbols.
func (t *Table) Skipped() int { return t.skipped }

// Len is the number of distinct codons seen.
func (t *Table) Len() int { return len(t.counts) }

// Counts returns a copy of the raw counts.
func (t *Table) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// Frequencies derives count/total per codon. An empty table yields an empty map.
func (t *Table) Frequencies() map[string]float64 {
	freqs := make(map[string]float64, len(t.counts))
	if t.total == 0 {
		return freqs
	}
	for codon, c := range t.counts {
		freqs[codon] = float64(c) / float64(t.total)
	}
	return freqs
}

// TopN returns the n most frequent codons, count descending then codon
// ascending. n <= 0 returns every codon.
func (t *Table) TopN(n int) []CodonCount {
	out := make([]CodonCount, 0, len(t.counts))
	for codon, c := range t.counts {
		out = append(out, CodonCount{Codon: codon, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Codon < out[j].Codon
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Merge adds every count of other into t.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for codon, c := range other.counts {
		t.counts[codon] += c
	}
	t.total += other.total
	t.skipped += other.skipped
}
