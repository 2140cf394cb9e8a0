// Package report_format renders analyzer reports as console text, JSON or CSV.
package report_format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gene_analyzer_go/analyzer"
	"gene_analyzer_go/seq_stats"
	"gene_analyzer_go/seqerr"
)

// Mode selects the output rendering.
type Mode string

const (
	Text Mode = "text"
	JSON Mode = "json"
)

// DefaultTopCodons is the number of codons listed per report.
const DefaultTopCodons = 10

// PreviewBases is how many leading characters of each sequence the text
// report shows.
const PreviewBases = 50

// basePreview returns the first PreviewBases characters of sequence,
// followed by "..." when it was cut short.
func basePreview(sequence string) string {
	runes := []rune(sequence)
	if len(runes) <= PreviewBases {
		return sequence
	}
	return string(runes[:PreviewBases]) + "..."
}

// ParseMode validates a user supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case Text:
		return Text, nil
	case JSON:
		return JSON, nil
	}
	return "", seqerr.Invalid("format", s, "expected 'text' or 'json'")
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Underline(true)
)

// Formatter renders reports. The zero value lists DefaultTopCodons codons
// and every ORF, without terminal styling.
type Formatter struct {
	TopCodons int  // <= 0 means DefaultTopCodons
	MaxORFs   int  // ORFs listed per record in text mode, <= 0 lists all
	Styled    bool // bold/underlined headings for terminal output
}

func (f Formatter) title(s string) string {
	if !f.Styled {
		return s
	}
	return titleStyle.Render(s)
}

func (f Formatter) section(s string) string {
	if !f.Styled {
		return s
	}
	return sectionStyle.Render(s)
}

// FormatReport renders one report with the default Formatter.
func FormatReport(r analyzer.Report, mode Mode) (string, error) {
	return Formatter{}.Format(r, mode)
}

func (f Formatter) topCodons() int {
	if f.TopCodons <= 0 {
		return DefaultTopCodons
	}
	return f.TopCodons
}

// Format renders one report.
func (f Formatter) Format(r analyzer.Report, mode Mode) (string, error) {
	switch mode {
	case Text:
		var sb strings.Builder
		f.writeText(&sb, r)
		return sb.String(), nil
	case JSON:
		return encode(f.ToJSON(r))
	}
	return "", seqerr.Invalid("format", string(mode), "expected 'text' or 'json'")
}

// FormatBatch renders every report of res followed by the batch summary.
func (f Formatter) FormatBatch(res *analyzer.Result, summary analyzer.Summary, mode Mode) (string, error) {
	switch mode {
	case Text:
		var sb strings.Builder
		for _, r := range res.Reports {
			f.writeText(&sb, r)
			sb.WriteString("\n")
		}
		f.writeSummary(&sb, res, summary)
		return sb.String(), nil
	case JSON:
		return encode(f.BatchToJSON(res, summary))
	}
	return "", seqerr.Invalid("format", string(mode), "expected 'text' or 'json'")
}

func encode(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(b) + "\n", nil
}

func (f Formatter) writeText(sb *strings.Builder, r analyzer.Report) {
	header := "Sequence: " + r.Record.ID
	if r.Record.Description != "" {
		header += " (" + r.Record.Description + ")"
	}
	sb.WriteString(f.title(header) + "\n")

	if r.Err != nil {
		fmt.Fprintf(sb, "  Analysis failed: %v\n", r.Err)
	}

	st := r.Stats
	fmt.Fprintf(sb, "  Length: %d bp\n", st.Length)
	if preview := basePreview(r.Record.Sequence); preview != "" {
		fmt.Fprintf(sb, "  First %d bases: %s\n", PreviewBases, preview)
	}
	fmt.Fprintf(sb, "  GC Content: %.2f%%\n", st.GCPercent)
	fmt.Fprintf(sb, "  N Content: %.2f%%\n", st.NPercent)

	counts := make([]string, 0, len(seq_stats.BaseKeys))
	for _, k := range seq_stats.BaseKeys {
		counts = append(counts, fmt.Sprintf("%s=%d", k, st.BaseCounts[k]))
	}
	fmt.Fprintf(sb, "  Base counts: %s\n", strings.Join(counts, " "))

	fmt.Fprintf(sb, "  %s %d\n", f.section("ORFs found:"), len(r.ORFs))
	for i, o := range r.ORFs {
		if f.MaxORFs > 0 && i >= f.MaxORFs {
			fmt.Fprintf(sb, "    ... (%d more)\n", len(r.ORFs)-f.MaxORFs)
			break
		}
		fmt.Fprintf(sb, "    #%d start=%d end=%d frame=+%d length=%d nt (%d aa)\n",
			i+1, o.Start, o.End, o.Frame, o.Length, o.LengthAA())
	}

	usage := r.CodonUsage
	if usage == nil || usage.Total() == 0 {
		sb.WriteString("  " + f.section("Top codons:") + " none counted\n")
		return
	}
	fmt.Fprintf(sb, "  %s (%d counted, %d skipped)\n",
		f.section("Top codons:"), usage.Total(), usage.Skipped())
	freqs := usage.Frequencies()
	for _, cc := range usage.TopN(f.topCodons()) {
		fmt.Fprintf(sb, "    %s  %d  %.2f%%\n", cc.Codon, cc.Count, freqs[cc.Codon]*100)
	}
}

func (f Formatter) writeSummary(sb *strings.Builder, res *analyzer.Result, s analyzer.Summary) {
	sb.WriteString(f.title("Batch summary") + "\n")
	fmt.Fprintf(sb, "  Sequences: %d (%d empty, %d failed)\n", s.Records, s.EmptyRecords, s.FailedRecords)
	fmt.Fprintf(sb, "  Total bases: %d\n", s.TotalBases)
	fmt.Fprintf(sb, "  Mean length: %.2f bp\n", s.MeanLength)
	fmt.Fprintf(sb, "  Mean GC content: %.2f%% (sd %.2f)\n", s.MeanGC, s.StdDevGC)
	fmt.Fprintf(sb, "  GC content range: %.2f%% - %.2f%%\n", s.MinGC, s.MaxGC)
	fmt.Fprintf(sb, "  Minimum ORF length: %d nt\n", res.MinORFLength)
	fmt.Fprintf(sb, "  Total ORFs: %d (mean length %.2f nt)\n", s.TotalORFs, s.MeanORFLength)
	if s.Longest != nil {
		fmt.Fprintf(sb, "  Longest ORF: %s %d-%d frame +%d (%d nt)\n",
			s.Longest.RecordID, s.Longest.ORF.Start, s.Longest.ORF.End, s.Longest.ORF.Frame, s.Longest.ORF.Length)
	}
	if res.Aggregate != nil && res.Aggregate.Total() > 0 {
		fmt.Fprintf(sb, "  %s (%d counted)\n", f.section("Aggregate top codons:"), res.Aggregate.Total())
		freqs := res.Aggregate.Frequencies()
		for _, cc := range res.Aggregate.TopN(f.topCodons()) {
			fmt.Fprintf(sb, "    %s  %d  %.2f%%\n", cc.Codon, cc.Count, freqs[cc.Codon]*100)
		}
	}
}
