package report_format

import (
	"gene_analyzer_go/analyzer"
	"gene_analyzer_go/codon_usage"
)

// ORFJSON is the wire form of one ORF.
type ORFJSON struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	Frame  int `json:"frame"`
	Length int `json:"length"`
}

// CodonCountJSON is one entry of a top-N list.
type CodonCountJSON struct {
	Codon string `json:"codon"`
	Count int    `json:"count"`
}

// CodonUsageJSON is the wire form of a codon table.
type CodonUsageJSON struct {
	Total       int                `json:"total"`
	Skipped     int                `json:"skipped"`
	Counts      map[string]int     `json:"counts"`
	Frequencies map[string]float64 `json:"frequencies"`
}

// ReportJSON is the serializable view of an analyzer.Report. It only holds
// strings, numbers, maps and slices.
type ReportJSON struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Length      int              `json:"length"`
	GCPercent   float64          `json:"gc_percent"`
	NPercent    float64          `json:"n_percent"`
	BaseCounts  map[string]int   `json:"base_counts"`
	ORFs        []ORFJSON        `json:"orfs"`
	CodonUsage  CodonUsageJSON   `json:"codon_usage"`
	TopCodons   []CodonCountJSON `json:"top_codons"`
	Error       string           `json:"error,omitempty"`
}

// LongestJSON locates the longest ORF of a batch.
type LongestJSON struct {
	RecordID string  `json:"record_id"`
	ORF      ORFJSON `json:"orf"`
}

// SummaryJSON is the wire form of analyzer.Summary.
type SummaryJSON struct {
	Records       int          `json:"records"`
	EmptyRecords  int          `json:"empty_records"`
	FailedRecords int          `json:"failed_records"`
	TotalBases    int          `json:"total_bases"`
	MeanLength    float64      `json:"mean_length"`
	MeanGC        float64      `json:"mean_gc_percent"`
	StdDevGC      float64      `json:"stddev_gc_percent"`
	MinGC         float64      `json:"min_gc_percent"`
	MaxGC         float64      `json:"max_gc_percent"`
	TotalORFs     int          `json:"total_orfs"`
	MeanORFLength float64      `json:"mean_orf_length"`
	Longest       *LongestJSON `json:"longest_orf,omitempty"`
}

// BatchJSON is the wire form of a whole run.
type BatchJSON struct {
	MinORFLength int             `json:"min_orf_length"`
	Reports      []ReportJSON    `json:"reports"`
	Summary      SummaryJSON     `json:"summary"`
	Aggregate    *CodonUsageJSON `json:"aggregate_codon_usage,omitempty"`
}

func usageToJSON(t *codon_usage.Table) CodonUsageJSON {
	if t == nil {
		t = codon_usage.New()
	}
	return CodonUsageJSON{
		Total:       t.Total(),
		Skipped:     t.Skipped(),
		Counts:      t.Counts(),
		Frequencies: t.Frequencies(),
	}
}

// ToJSON converts a report to its serializable view.
func (f Formatter) ToJSON(r analyzer.Report) ReportJSON {
	out := ReportJSON{
		ID:          r.Record.ID,
		Description: r.Record.Description,
		Length:      r.Stats.Length,
		GCPercent:   r.Stats.GCPercent,
		NPercent:    r.Stats.NPercent,
		BaseCounts:  map[string]int{},
		ORFs:        make([]ORFJSON, 0, len(r.ORFs)),
		CodonUsage:  usageToJSON(r.CodonUsage),
		TopCodons:   []CodonCountJSON{},
	}
	for k, v := range r.Stats.BaseCounts {
		out.BaseCounts[k] = v
	}
	for _, o := range r.ORFs {
		out.ORFs = append(out.ORFs, ORFJSON{Start: o.Start, End: o.End, Frame: o.Frame, Length: o.Length})
	}
	if r.CodonUsage != nil {
		for _, cc := range r.CodonUsage.TopN(f.topCodons()) {
			out.TopCodons = append(out.TopCodons, CodonCountJSON{Codon: cc.Codon, Count: cc.Count})
		}
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

// BatchToJSON converts a whole run to its serializable view.
func (f Formatter) BatchToJSON(res *analyzer.Result, s analyzer.Summary) BatchJSON {
	out := BatchJSON{
		MinORFLength: res.MinORFLength,
		Reports:      make([]ReportJSON, 0, len(res.Reports)),
		Summary: SummaryJSON{
			Records:       s.Records,
			EmptyRecords:  s.EmptyRecords,
			FailedRecords: s.FailedRecords,
			TotalBases:    s.TotalBases,
			MeanLength:    s.MeanLength,
			MeanGC:        s.MeanGC,
			StdDevGC:      s.StdDevGC,
			MinGC:         s.MinGC,
			MaxGC:         s.MaxGC,
			TotalORFs:     s.TotalORFs,
			MeanORFLength: s.MeanORFLength,
		},
	}
	for _, r := range res.Reports {
		out.Reports = append(out.Reports, f.ToJSON(r))
	}
	if s.Longest != nil {
		o := s.Longest.ORF
		out.Summary.Longest = &LongestJSON{
			RecordID: s.Longest.RecordID,
			ORF:      ORFJSON{Start: o.Start, End: o.End, Frame: o.Frame, Length: o.Length},
		}
	}
	if res.Aggregate != nil {
		agg := usageToJSON(res.Aggregate)
		out.Aggregate = &agg
	}
	return out
}
