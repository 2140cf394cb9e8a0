package sanity_check

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"gene_analyzer_go/analyzer"
	"gene_analyzer_go/config"
	"gene_analyzer_go/fasta"
	"gene_analyzer_go/orf_finder"
)

// knownRecord is a record with one known 9 nt ORF at 0..9 in frame +1.
const knownRecord = ">known\nATGAAATAGCC\n"

// Check runs a one-record analysis and verifies the known answer.
func Check() error {
	res, err := analyzer.Analyze(fasta.Parse(knownRecord), analyzer.Options{MinORFLength: 9, Workers: 1})
	if err != nil {
		return err
	}
	want := orf_finder.ORF{Start: 0, End: 9, Frame: 1, Length: 9}
	got := res.Reports[0].ORFs
	if len(got) != 1 || got[0] != want {
		return fmt.Errorf("known record analysis returned %+v, expected %+v", got, want)
	}
	if n := res.Reports[0].CodonUsage.Total(); n != 3 {
		return fmt.Errorf("known record codon count is %d, expected 3", n)
	}
	return nil
}

// Run performs the sanity check, printing a confirmation and version number.
func Run(args []string, w io.Writer, logger *log.Logger) error {
	if err := Check(); err != nil {
		logger.Error("sanity check failed", "err", err)
		return err
	}
	_, err := fmt.Fprintf(w, "Successfully running Gene Analyzer! (%s)\n", config.Main_version)
	return err
}
