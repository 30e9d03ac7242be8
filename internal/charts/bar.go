package charts

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// Bar draws one sky-blue bar per bucket in the order given
func (r *Renderer) Bar(key, title, xLabel string, buckets []domain.Bucket) (*Chart, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Responses"
	p.Y.Min = 0

	if len(buckets) > 0 {
		values := make(plotter.Values, len(buckets))
		names := make([]string, len(buckets))
		for i, b := range buckets {
			values[i] = float64(b.Count)
			names[i] = b.Value
		}

		bars, err := plotter.NewBarChart(values, r.barWidth(len(buckets)))
		if err != nil {
			return nil, fmt.Errorf("failed to build bar chart %s: %w", key, err)
		}
		bars.Color = SkyBlue
		bars.LineStyle.Color = color.Black
		bars.LineStyle.Width = vg.Points(1)

		p.Add(bars)
		p.NominalX(names...)
	}

	png, err := r.encode(p)
	if err != nil {
		return nil, err
	}
	return &Chart{Key: key, Title: title, Kind: domain.ChartKindBar, PNG: png}, nil
}

// barWidth leaves room between bars for any number of groups
func (r *Renderer) barWidth(n int) vg.Length {
	w := r.width * 0.6 / vg.Length(n)
	if limit := vg.Points(40); w > limit {
		return limit
	}
	return w
}
