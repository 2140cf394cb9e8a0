// Package plots renders batch charts as SVG with gonum/plot.
package plots

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"gene_analyzer_go/analyzer"
	"gene_analyzer_go/codon_usage"
	"gene_analyzer_go/seqerr"
)

var (
	barColor  = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	lineColor = color.RGBA{B: 255, A: 255}
	fitColor  = color.RGBA{R: 255, A: 255}
)

const gcBins = 50

type integerTicks struct{}

func (integerTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	step := int(math.Max(1, math.Ceil((max-min)/10)))
	for i := int(math.Ceil(min)); i <= int(math.Floor(max)); i += step {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}
	return ticks
}

func render(p *plot.Plot, width vg.Length) (string, error) {
	writer, err := p.WriterTo(width, 4*vg.Inch, "svg")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CodonUsageSVG draws the n most used codons of t as a bar chart.
// n <= 0 draws every counted codon.
func CodonUsageSVG(t *codon_usage.Table, n int) (string, error) {
	if t == nil || t.Total() == 0 {
		return "", seqerr.Invalid("codon table", 0, "no codons counted")
	}
	top := t.TopN(n)
	freqs := t.Frequencies()

	values := make(plotter.Values, len(top))
	names := make([]string, len(top))
	for i, cc := range top {
		values[i] = freqs[cc.Codon] * 100
		names[i] = cc.Codon
	}

	p := plot.New()
	p.Title.Text = "Codon Usage"
	p.Y.Label.Text = "Relative Frequency (%)"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return "", err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	width := vg.Length(len(top)) * 0.25 * vg.Inch
	if width < 4*vg.Inch {
		width = 4 * vg.Inch
	}
	return render(p, width)
}

// GCDistributionSVG draws the per-record GC content histogram with a fitted
// normal curve. Empty and failed records are left out.
func GCDistributionSVG(reports []analyzer.Report) (string, error) {
	var gc []float64
	for _, r := range reports {
		if r.Err == nil && r.Stats.Length > 0 {
			gc = append(gc, r.Stats.GCPercent)
		}
	}
	if len(gc) == 0 {
		return "", seqerr.Invalid("reports", len(reports), "no non-empty records to plot")
	}

	p := plot.New()
	p.Title.Text = "Per Sequence GC Content"
	p.X.Label.Text = "GC Content (%)"
	p.Y.Label.Text = "Sequence Count"

	binWidth := 100.0 / gcBins
	observed := make([]float64, gcBins)
	for _, v := range gc {
		bin := int(v / binWidth)
		if bin >= gcBins {
			bin = gcBins - 1
		}
		observed[bin]++
	}

	observedXY := make(plotter.XYs, gcBins)
	for i := range observed {
		observedXY[i].X = binWidth*float64(i) + binWidth/2
		observedXY[i].Y = observed[i]
	}
	obsLine, err := plotter.NewLine(observedXY)
	if err != nil {
		return "", err
	}
	obsLine.Color = lineColor
	obsLine.Width = vg.Points(2)
	p.Add(obsLine)
	p.Legend.Add("Observed", obsLine)

	// A normal fit needs spread; one record or identical values have none.
	if len(gc) > 1 {
		mean, sd := stat.MeanStdDev(gc, nil)
		if sd > 0 {
			norm := distuv.Normal{Mu: mean, Sigma: sd}
			scale := float64(len(gc)) * binWidth
			expectedXY := make(plotter.XYs, gcBins)
			for i := range expectedXY {
				x := binWidth*float64(i) + binWidth/2
				expectedXY[i].X = x
				expectedXY[i].Y = norm.Prob(x) * scale
			}
			fit, err := plotter.NewLine(expectedXY)
			if err != nil {
				return "", err
			}
			fit.Color = fitColor
			fit.Width = vg.Points(1.5)
			fit.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(fit)
			p.Legend.Add("Normal fit", fit)
		}
	}
	p.Legend.Top = true
	p.X.Min, p.X.Max = 0, 100

	return render(p, 8*vg.Inch)
}

// ORFLengthSVG draws a histogram of ORF lengths across all reports.
func ORFLengthSVG(reports []analyzer.Report, bins int) (string, error) {
	var lengths []float64
	for _, r := range reports {
		for _, o := range r.ORFs {
			lengths = append(lengths, float64(o.Length))
		}
	}
	if len(lengths) == 0 {
		return "", seqerr.Invalid("reports", len(reports), "no ORFs to plot")
	}
	if bins <= 0 {
		bins = 20
	}

	minLen, maxLen := floats.Min(lengths), floats.Max(lengths)
	binWidth := (maxLen - minLen + 1) / float64(bins)
	counts := make(plotter.Values, bins)
	for _, l := range lengths {
		bin := int((l - minLen) / binWidth)
		if bin >= bins {
			bin = bins - 1
		}
		counts[bin]++
	}

	p := plot.New()
	p.Title.Text = "ORF Length Distribution"
	p.X.Label.Text = "ORF Length (nt)"
	p.Y.Label.Text = "ORF Count"
	p.Y.Tick.Marker = integerTicks{}

	bars, err := plotter.NewBarChart(counts, vg.Points(10))
	if err != nil {
		return "", err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	labels := make([]string, bins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.0f", minLen+binWidth*float64(i))
	}
	p.NominalX(labels...)

	return render(p, 10*vg.Inch)
}
