package charts

import (
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// Likert scale drawn by Histogram
const (
	LikertMin = 1
	LikertMax = 5
)

// barFraction is the share of each unit bin covered by its bar
const barFraction = 0.8

// LikertCounts bins ratings on edges 0.5, 1.5, ... 5.5. Index 0 holds rating 1.
// Ratings outside the scale are not counted.
func LikertCounts(ratings []int) []int {
	counts := make([]int, LikertMax-LikertMin+1)
	for _, r := range ratings {
		if r >= LikertMin && r <= LikertMax {
			counts[r-LikertMin]++
		}
	}
	return counts
}

// Histogram draws the rating distribution of one question. colorIndex picks
// the bar color from HistogramColors.
func (r *Renderer) Histogram(key, title string, ratings []int, colorIndex int) (*Chart, error) {
	counts := LikertCounts(ratings)

	bins := make([]plotter.HistogramBin, len(counts))
	for i, n := range counts {
		center := float64(LikertMin + i)
		bins[i] = plotter.HistogramBin{
			Min:    center - barFraction/2,
			Max:    center + barFraction/2,
			Weight: float64(n),
		}
	}

	hist := &plotter.Histogram{
		Bins:      bins,
		Width:     barFraction,
		FillColor: HistogramColors[colorIndex%len(HistogramColors)],
		LineStyle: plotter.DefaultLineStyle,
	}
	hist.LineStyle.Color = color.Black

	grid := plotter.NewGrid()
	dashes := []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Vertical.Dashes = dashes
	grid.Horizontal.Dashes = dashes

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Rating (Likert Scale: 1 to 5)"
	p.Y.Label.Text = "Number of Responses"
	p.Add(grid, hist)

	p.X.Min = LikertMin - 0.5
	p.X.Max = LikertMax + 0.5
	p.Y.Min = 0
	ticks := make([]plot.Tick, 0, len(counts))
	for v := LikertMin; v <= LikertMax; v++ {
		ticks = append(ticks, plot.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	png, err := r.encode(p)
	if err != nil {
		return nil, err
	}
	return &Chart{Key: key, Title: title, Kind: domain.ChartKindHistogram, PNG: png}, nil
}
