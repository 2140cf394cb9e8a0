package analyzer

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"gene_analyzer_go/orf_finder"
)

// LongestORF locates the longest ORF of a batch.
type LongestORF struct {
	RecordID string
	ORF      orf_finder.ORF
}

// Summary aggregates a batch of reports. GC figures only consider records
// that were analyzed and have a non-empty sequence.
type Summary struct {
	Records       int
	EmptyRecords  int
	FailedRecords int
	TotalBases    int
	MeanLength    float64
	MeanGC        float64
	StdDevGC      float64
	MinGC         float64
	MaxGC         float64
	TotalORFs     int
	MeanORFLength float64
	Longest       *LongestORF
}

// Summarize computes batch-level statistics over reports.
func Summarize(reports []Report) Summary {
	s := Summary{Records: len(reports)}

	var gcValues, lengths, orfLengths []float64
	for _, r := range reports {
		lengths = append(lengths, float64(r.Stats.Length))
		s.TotalBases += r.Stats.Length
		switch {
		case r.Err != nil:
			s.FailedRecords++
		case r.Stats.Length == 0:
			s.EmptyRecords++
		default:
			gcValues = append(gcValues, r.Stats.GCPercent)
		}
		for _, o := range r.ORFs {
			orfLengths = append(orfLengths, float64(o.Length))
			if s.Longest == nil || o.Length > s.Longest.ORF.Length {
				s.Longest = &LongestORF{RecordID: r.Record.ID, ORF: o}
			}
		}
	}
	s.TotalORFs = len(orfLengths)

	if len(lengths) > 0 {
		s.MeanLength = stat.Mean(lengths, nil)
	}
	if len(gcValues) > 0 {
		s.MeanGC = stat.Mean(gcValues, nil)
		s.MinGC = floats.Min(gcValues)
		s.MaxGC = floats.Max(gcValues)
	}
	if len(gcValues) > 1 {
		s.StdDevGC = stat.StdDev(gcValues, nil)
	}
	if len(orfLengths) > 0 {
		s.MeanORFLength = stat.Mean(orfLengths, nil)
	}
	return s
}
