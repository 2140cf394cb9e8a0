// Package sequence_report is the analyze tool: it runs the full analysis
// over a FASTA file and writes the report plus optional CSV, SVG charts and
// ORF FASTA exports.
package sequence_report

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"gene_analyzer_go/analyzer"
	"gene_analyzer_go/codon_usage"
	"gene_analyzer_go/config"
	"gene_analyzer_go/fasta"
	"gene_analyzer_go/logging"
	"gene_analyzer_go/orf_export"
	"gene_analyzer_go/plots"
	"gene_analyzer_go/report_format"
	"gene_analyzer_go/seqerr"
)

// Job describes one analyze run after flags and settings are merged.
type Job struct {
	InFile         string
	OutFile        string
	Mode           report_format.Mode
	Options        analyzer.Options
	TopCodons      int
	MaxORFs        int
	CSVOut         string
	PlotPrefix     string
	ExportORFs     string
	ExportProteins string
	TextWidth      int
	Styled         bool
	// SniffContent accepts an input with an unknown extension when its
	// content starts with '>'.
	SniffContent bool
}

// NewJob builds a job from settings. Only InFile is left for the caller.
func NewJob(s config.Settings) (Job, error) {
	if err := s.Validate(); err != nil {
		return Job{}, err
	}
	opts, err := s.AnalyzerOptions()
	if err != nil {
		return Job{}, err
	}
	return Job{
		Mode:      report_format.Text,
		Options:   opts,
		TopCodons: s.TopCodons,
		TextWidth: s.TextWidth,
	}, nil
}

func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// Run is the analyze tool.
func Run(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)

	inFile := fs.String("in_file", "", "Input FASTA file (plain or gzip)")
	configPath := fs.String("config", config.DefaultPath, "JSON settings file (optional)")
	minLen := fs.Int("minlen", 0, "Minimum ORF length (nt), rounded down to a multiple of 3")
	format := fs.String("format", "text", "Output format: text or json")
	top := fs.Int("top", 0, "Number of top codons listed per record")
	maxORFs := fs.Int("max_orfs", 0, "ORFs listed per record in text output (0 lists all)")
	aggregate := fs.Bool("aggregate", false, "Also build a codon table across all records")
	workers := fs.Int("workers", 0, "Parallel workers (0 uses every CPU)")
	codonScope := fs.String("codon_scope", "", "Codon counting scope: orfs or sequence")
	csvOut := fs.String("csv_out", "", "Write per-record statistics as CSV")
	plotPrefix := fs.String("plot_prefix", "", "Write SVG charts as <prefix>_codons.svg, <prefix>_gc.svg, <prefix>_orf_lengths.svg")
	exportORFs := fs.String("export_orfs", "", "Write ORF nucleotide sequences as FASTA")
	exportProteins := fs.String("export_proteins", "", "Write translated ORFs as FASTA")
	outFile := fs.String("out_file", "", "Output file (default is stdout)")
	sniff := fs.Bool("sniff", false, "Accept any extension when the file content starts with '>'")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unrecognized arguments: %v (use -h to view valid flags)", fs.Args())
	}
	if *inFile == "" {
		return fmt.Errorf("-in_file is required")
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if lvl, err := logging.ParseLevel(settings.LogLevel); err == nil && logger.GetLevel() != log.DebugLevel {
		logger.SetLevel(lvl)
	}

	// Explicit flags win over the settings file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "minlen":
			settings.MinORFLength = *minLen
		case "top":
			settings.TopCodons = *top
		case "aggregate":
			settings.Aggregate = *aggregate
		case "workers":
			settings.Workers = *workers
		case "codon_scope":
			settings.CodonScope = *codonScope
		}
	})
	logger.Debug("settings", "min_orf_length", settings.MinORFLength, "workers", settings.Workers,
		"aggregate", settings.Aggregate, "codon_scope", settings.CodonScope)

	job, err := NewJob(settings)
	if err != nil {
		return err
	}
	if job.Mode, err = report_format.ParseMode(*format); err != nil {
		return err
	}
	job.InFile = *inFile
	job.OutFile = *outFile
	job.MaxORFs = *maxORFs
	job.CSVOut = *csvOut
	job.PlotPrefix = *plotPrefix
	job.ExportORFs = *exportORFs
	job.ExportProteins = *exportProteins
	job.Styled = *outFile == "" && stdoutIsTerminal()
	job.SniffContent = *sniff

	return Execute(job, logger, os.Stdout)
}

// Execute runs job, writing the report to stdout unless job.OutFile is set.
func Execute(job Job, logger *log.Logger, stdout io.Writer) error {
	read := fasta.ReadFile
	if job.SniffContent {
		read = fasta.ReadFileSniff
	}
	records, err := read(job.InFile)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", job.InFile, err)
	}
	if len(records) == 0 {
		logger.Warn("no FASTA records found", "file", job.InFile)
		return nil
	}
	logger.Info("parsed FASTA", "file", job.InFile, "records", len(records))

	res, err := analyzer.Analyze(records, job.Options)
	if err != nil {
		return err
	}
	if res.MinORFLength != job.Options.MinORFLength {
		logger.Warn("minimum ORF length normalized", "requested", job.Options.MinORFLength, "used", res.MinORFLength)
	}
	for _, r := range res.Reports {
		if r.Err != nil {
			logger.Warn("record analysis failed", "id", r.Record.ID, "err", r.Err)
		}
	}
	summary := analyzer.Summarize(res.Reports)
	logger.Info("analysis complete", "records", summary.Records, "orfs", summary.TotalORFs, "failed", summary.FailedRecords)

	formatter := report_format.Formatter{TopCodons: job.TopCodons, MaxORFs: job.MaxORFs, Styled: job.Styled}
	out, err := formatter.FormatBatch(res, summary, job.Mode)
	if err != nil {
		return err
	}
	if err := writeOutput(job.OutFile, stdout, func(w io.Writer) error {
		_, err := io.WriteString(w, out)
		return err
	}); err != nil {
		return err
	}

	if job.CSVOut != "" {
		if err := writeFile(job.CSVOut, func(w io.Writer) error {
			return report_format.WriteStatsCSV(w, res.Reports)
		}); err != nil {
			return err
		}
		logger.Info("wrote CSV statistics", "path", job.CSVOut)
	}

	if job.PlotPrefix != "" {
		if err := writePlots(job.PlotPrefix, res, logger); err != nil {
			return err
		}
	}

	exports := []struct {
		path string
		kind orf_export.Kind
	}{
		{job.ExportORFs, orf_export.Nucleotide},
		{job.ExportProteins, orf_export.Protein},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		var n int
		if err := writeFile(e.path, func(w io.Writer) error {
			var err error
			n, err = orf_export.WriteORFs(w, res.Reports, e.kind, job.TextWidth)
			return err
		}); err != nil {
			return err
		}
		logger.Info("exported ORFs", "path", e.path, "sequences", n)
	}
	return nil
}

func writePlots(prefix string, res *analyzer.Result, logger *log.Logger) error {
	table := res.Aggregate
	if table == nil {
		table = codon_usage.New()
		for _, r := range res.Reports {
			table.Merge(r.CodonUsage)
		}
	}

	charts := []struct {
		name   string
		render func() (string, error)
	}{
		{"codons", func() (string, error) { return plots.CodonUsageSVG(table, 20) }},
		{"gc", func() (string, error) { return plots.GCDistributionSVG(res.Reports) }},
		{"orf_lengths", func() (string, error) { return plots.ORFLengthSVG(res.Reports, 20) }},
	}
	for _, c := range charts {
		svg, err := c.render()
		if seqerr.IsValidation(err) {
			logger.Warn("skipping chart", "chart", c.name, "reason", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("rendering %s chart: %w", c.name, err)
		}
		path := fmt.Sprintf("%s_%s.svg", prefix, c.name)
		if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
			return err
		}
		logger.Info("wrote chart", "path", path)
	}
	return nil
}

func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" {
		bw := bufio.NewWriter(stdout)
		if err := write(bw); err != nil {
			return err
		}
		return bw.Flush()
	}
	return writeFile(path, write)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
