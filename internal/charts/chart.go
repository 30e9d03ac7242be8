package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// ErrChartClosed is returned when a released chart is used again
var ErrChartClosed = errors.New("chart already closed")

// Chart is one rendered image keyed by the field or question it shows
type Chart struct {
	Key   string
	Title string
	Kind  domain.ChartKind
	PNG   []byte

	closed bool
}

// Bytes returns the encoded PNG, or ErrChartClosed after Close
func (c *Chart) Bytes() ([]byte, error) {
	if c.closed {
		return nil, ErrChartClosed
	}
	return c.PNG, nil
}

// Close releases the image. It is safe to call more than once.
func (c *Chart) Close() error {
	c.PNG = nil
	c.closed = true
	return nil
}

// Closed reports whether Close has been called
func (c *Chart) Closed() bool {
	return c.closed
}

// CloseAll releases every chart in charts
func CloseAll(charts []*Chart) {
	for _, c := range charts {
		if c != nil {
			_ = c.Close()
		}
	}
}

// Palette
var (
	SkyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	Red     = color.RGBA{R: 255, A: 255}
	Green   = color.RGBA{G: 128, A: 255}
	Blue    = color.RGBA{B: 255, A: 255}
	Orange  = color.RGBA{R: 255, G: 165, A: 255}
	Purple  = color.RGBA{R: 128, B: 128, A: 255}
)

// HistogramColors cycle by question index
var HistogramColors = []color.Color{Red, Green, Blue, Orange, Purple}

const defaultDPI = 150

// Renderer draws charts at a fixed size
type Renderer struct {
	width  vg.Length
	height vg.Length
	dpi    int
}

// NewRenderer returns a renderer for charts of the given size in inches.
// Non-positive sizes fall back to 6x4.
func NewRenderer(widthInches, heightInches float64) *Renderer {
	if widthInches <= 0 {
		widthInches = 6
	}
	if heightInches <= 0 {
		heightInches = 4
	}
	return &Renderer{
		width:  vg.Length(widthInches) * vg.Inch,
		height: vg.Length(heightInches) * vg.Inch,
		dpi:    defaultDPI,
	}
}

// Distribution renders d as a bar or pie chart depending on its kind
func (r *Renderer) Distribution(d domain.Distribution) (*Chart, error) {
	switch d.Kind {
	case domain.ChartKindPie:
		return r.Pie(d.Field, d.Title, d.Buckets)
	case domain.ChartKindBar, "":
		return r.Bar(d.Field, d.Title, d.Title, d.Buckets)
	default:
		return nil, fmt.Errorf("unsupported chart kind %q for %s", d.Kind, d.Field)
	}
}

func (r *Renderer) encode(p *plot.Plot) ([]byte, error) {
	canvas := vgimg.NewWith(vgimg.UseWH(r.width, r.height), vgimg.UseDPI(r.dpi))
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
