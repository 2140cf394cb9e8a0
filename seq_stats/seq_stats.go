package seq_stats

// Base keys reported in Stats.BaseCounts. Anything else lands in Other.
const (
	Other = "other"
)

// BaseKeys lists every key present in Stats.BaseCounts, in report order.
var BaseKeys = []string{"A", "C", "G", "T", "U", "N", Other}

// Stats holds composition metrics for one sequence.
type Stats struct {
	Length     int
	BaseCounts map[string]int
	GCPercent  float64
	NPercent   float64
}

// Compute counts bases case-insensitively. A zero-length sequence reports
// 0.0 for both percentages.
func Compute(sequence string) Stats {
	counts := make(map[string]int, len(BaseKeys))
	for _, k := range BaseKeys {
		counts[k] = 0
	}

	length := 0
	for _, base := range sequence {
		length++
		switch base {
		case 'A', 'a':
			counts["A"]++
		case 'C', 'c':
			counts["C"]++
		case 'G', 'g':
			counts["G"]++
		case 'T', 't':
			counts["T"]++
		case 'U', 'u':
			counts["U"]++
		case 'N', 'n':
			counts["N"]++
		default:
			counts[Other]++
		}
	}

	stats := Stats{Length: length, BaseCounts: counts}
	if length > 0 {
		stats.GCPercent = float64(counts["G"]+counts["C"]) / float64(length) * 100
		stats.NPercent = float64(counts["N"]) / float64(length) * 100
	}
	return stats
}
