package config

// Version system:
// vMAJOR.MINOR.PATCH

// Centralized version control
const (
	// Executable
	Main_version = "v1.2.0"

	// Modular tools
	Analyze        = "v1.2.0"
	Benchmark      = "v1.1.0"
	Codon_Usage    = "v1.0.0" // Formerly "Kmer_Analyzer"
	FASTA_Overview = "v3.0.0"
	ORF_Finder     = "v1.1.0"
	Seq_Generator  = "v2.1.0" // "ran_dna_gen"
	Sanity_check   = "v1.0.1"
)
