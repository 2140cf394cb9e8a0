package report_format

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gene_analyzer_go/analyzer"
	"gene_analyzer_go/seq_stats"
)

// WriteStatsCSV writes one row of per-record statistics per report.
func WriteStatsCSV(w io.Writer, reports []analyzer.Report) error {
	writer := csv.NewWriter(w)

	headers := []string{"ID", "Description", "Length", "GCContent", "NContent"}
	for _, k := range seq_stats.BaseKeys {
		headers = append(headers, "Count_"+k)
	}
	headers = append(headers, "ORFCount", "LongestORF", "CodonsCounted", "CodonsSkipped")
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, r := range reports {
		longest := 0
		for _, o := range r.ORFs {
			if o.Length > longest {
				longest = o.Length
			}
		}
		counted, skipped := 0, 0
		if r.CodonUsage != nil {
			counted, skipped = r.CodonUsage.Total(), r.CodonUsage.Skipped()
		}

		row := []string{
			r.Record.ID,
			r.Record.Description,
			strconv.Itoa(r.Stats.Length),
			fmt.Sprintf("%.2f", r.Stats.GCPercent),
			fmt.Sprintf("%.2f", r.Stats.NPercent),
		}
		for _, k := range seq_stats.BaseKeys {
			row = append(row, strconv.Itoa(r.Stats.BaseCounts[k]))
		}
		row = append(row,
			strconv.Itoa(len(r.ORFs)),
			strconv.Itoa(longest),
			strconv.Itoa(counted),
			strconv.Itoa(skipped),
		)
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
