package codon_usage

import "strings"

// Standard genetic code. Stops translate to '*'.
var codonMap = map[string]byte{
	// Phenylalanine
	"TTT": 'F', "TTC": 'F',
	// Leucine
	"TTA": 'L', "TTG": 'L', "CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	// Isoleucine
	"ATT": 'I', "ATC": 'I', "ATA": 'I',
	// Methionine (Start)
	"ATG": 'M',
	// Valine
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	// Serine
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S', "AGT": 'S', "AGC": 'S',
	// Proline
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	// Threonine
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	// Alanine
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	// Tyrosine
	"TAT": 'Y', "TAC": 'Y',
	// Histidine
	"CAT": 'H', "CAC": 'H',
	// Glutamine
	"CAA": 'Q', "CAG": 'Q',
	// Asparagine
	"AAT": 'N', "AAC": 'N',
	// Lysine
	"AAA": 'K', "AAG": 'K',
	// Aspartic Acid
	"GAT": 'D', "GAC": 'D',
	// Glutamic Acid
	"GAA": 'E', "GAG": 'E',
	// Cysteine
	"TGT": 'C', "TGC": 'C',
	// Tryptophan
	"TGG": 'W',
	// Arginine
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R', "AGA": 'R', "AGG": 'R',
	// Glycine
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
	// Stop codons
	"TAA": '*', "TAG": '*', "TGA": '*',
}

// AminoAcid returns the one-letter residue for codon, 'X' when unknown.
func AminoAcid(codon string) byte {
	if aa, ok := codonMap[strings.ToUpper(codon)]; ok {
		return aa
	}
	return 'X'
}

// Translate converts nt to protein in frame 0, reading three characters per
// codon. Trailing partial codons are dropped.
func Translate(nt string) string {
	seq := []rune(nt)
	protein := make([]byte, 0, len(seq)/3)
	for i := 0; i+3 <= len(seq); i += 3 {
		protein = append(protein, AminoAcid(string(seq[i:i+3])))
	}
	return string(protein)
}
