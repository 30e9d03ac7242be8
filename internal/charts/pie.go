package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// pieChart is a plot.Plotter drawing labelled wedges centered in the data area
type pieChart struct {
	buckets []domain.Bucket
	colors  []color.Color
}

var _ plot.Plotter = (*pieChart)(nil)

// Plot implements plot.Plotter
func (pc *pieChart) Plot(c draw.Canvas, plt *plot.Plot) {
	total := 0
	for _, b := range pc.buckets {
		total += b.Count
	}
	if total == 0 {
		return
	}

	center := c.Center()
	radius := 0.38 * vg.Length(math.Min(float64(c.Max.X-c.Min.X), float64(c.Max.Y-c.Min.Y)))

	sty := plt.Title.TextStyle
	sty.Font.Size = vg.Points(9)
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter

	// wedges run counter-clockwise from twelve o'clock
	start := math.Pi / 2
	for i, b := range pc.buckets {
		sweep := 2 * math.Pi * float64(b.Count) / float64(total)

		var wedge vg.Path
		wedge.Move(center)
		wedge.Arc(center, radius, start, sweep)
		wedge.Close()

		c.SetColor(pc.colors[i%len(pc.colors)])
		c.Fill(wedge)
		c.SetColor(color.White)
		c.SetLineWidth(vg.Points(1))
		c.Stroke(wedge)

		mid := start + sweep/2
		at := vg.Point{
			X: center.X + vg.Length(math.Cos(mid))*radius*1.22,
			Y: center.Y + vg.Length(math.Sin(mid))*radius*1.22,
		}
		c.FillText(sty, at, b.Value+" "+b.PercentLabel())

		start += sweep
	}
}

// Pie draws the share of each bucket with one-decimal percentage labels and no axes
func (r *Renderer) Pie(key, title string, buckets []domain.Bucket) (*Chart, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()

	colors := make([]color.Color, len(plotutil.SoftColors))
	copy(colors, plotutil.SoftColors)
	p.Add(&pieChart{buckets: buckets, colors: colors})

	png, err := r.encode(p)
	if err != nil {
		return nil, err
	}
	return &Chart{Key: key, Title: title, Kind: domain.ChartKindPie, PNG: png}, nil
}
