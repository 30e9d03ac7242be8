package charts

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func assertPNG(t *testing.T, data []byte, wantW, wantH int) {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, pngMagic), "not a png")

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, wantW, cfg.Width)
	assert.Equal(t, wantH, cfg.Height)
}

func TestRenderer_Bar(t *testing.T) {
	r := NewRenderer(6, 4)

	chart, err := r.Bar("Overall Rating", "1. Overall Rating", "1. Overall Rating", []domain.Bucket{
		{Value: "0", Count: 1}, {Value: "3", Count: 2}, {Value: "5", Count: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ChartKindBar, chart.Kind)
	assert.Equal(t, "Overall Rating", chart.Key)
	assertPNG(t, chart.PNG, 6*defaultDPI, 4*defaultDPI)
}

func TestRenderer_BarEmpty(t *testing.T) {
	chart, err := NewRenderer(4, 3).Bar("Logistics", "5. Logistics", "5. Logistics", nil)
	require.NoError(t, err)
	assertPNG(t, chart.PNG, 4*defaultDPI, 3*defaultDPI)
}

func TestRenderer_Pie(t *testing.T) {
	chart, err := NewRenderer(6, 4).Pie("Objectives", "2. Objectives Met", []domain.Bucket{
		{Value: "Yes", Count: 3, Percent: 60},
		{Value: "No", Count: 2, Percent: 40},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ChartKindPie, chart.Kind)
	assertPNG(t, chart.PNG, 6*defaultDPI, 4*defaultDPI)
}

func TestRenderer_Histogram(t *testing.T) {
	chart, err := NewRenderer(6, 4).Histogram("q1", "1. How satisfied were you with the overall event?",
		[]int{2, 3, 3, 5, 4, 4, 4}, 7)
	require.NoError(t, err)

	assert.Equal(t, domain.ChartKindHistogram, chart.Kind)
	assertPNG(t, chart.PNG, 6*defaultDPI, 4*defaultDPI)
}

func TestRenderer_Distribution(t *testing.T) {
	r := NewRenderer(0, 0)

	pie, err := r.Distribution(domain.Distribution{Field: "Objectives", Title: "2. Objectives Met", Kind: domain.ChartKindPie})
	require.NoError(t, err)
	assert.Equal(t, domain.ChartKindPie, pie.Kind)

	bar, err := r.Distribution(domain.Distribution{Field: "Logistics", Title: "5. Logistics", Kind: domain.ChartKindBar,
		Buckets: []domain.Bucket{{Value: "4", Count: 2}}})
	require.NoError(t, err)
	assert.Equal(t, domain.ChartKindBar, bar.Kind)

	_, err = r.Distribution(domain.Distribution{Field: "x", Kind: "radar"})
	assert.Error(t, err)
}

func TestLikertCounts(t *testing.T) {
	assert.Equal(t, []int{1, 0, 2, 0, 3}, LikertCounts([]int{1, 3, 3, 5, 5, 5, 0, 6, -1}))
	assert.Equal(t, []int{0, 0, 0, 0, 0}, LikertCounts(nil))
}

func TestChart_Close(t *testing.T) {
	chart := &Chart{Key: "k", PNG: []byte{1, 2, 3}}

	data, err := chart.Bytes()
	require.NoError(t, err)
	assert.Len(t, data, 3)

	require.NoError(t, chart.Close())
	require.NoError(t, chart.Close())
	assert.True(t, chart.Closed())
	assert.Nil(t, chart.PNG)

	_, err = chart.Bytes()
	assert.ErrorIs(t, err, ErrChartClosed)
}

func TestCollector_CopiesImages(t *testing.T) {
	var c Collector
	chart := &Chart{Key: "Objectives", Title: "2. Objectives Met", Kind: domain.ChartKindPie, PNG: []byte("img")}

	require.NoError(t, c.Show(context.Background(), chart))
	CloseAll([]*Chart{chart, nil})

	previews := c.Previews()
	require.Len(t, previews, 1)
	assert.Equal(t, []byte("img"), previews[0].PNG)
	assert.Equal(t, "2. Objectives Met", previews[0].Title)

	assert.ErrorIs(t, c.Show(context.Background(), chart), ErrChartClosed)
}

func TestDirDisplay(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	chart := &Chart{Key: "Overall Rating", PNG: pngMagic}

	require.NoError(t, DirDisplay{Dir: dir}.Show(context.Background(), chart))

	data, err := os.ReadFile(filepath.Join(dir, "overall_rating.png"))
	require.NoError(t, err)
	assert.Equal(t, pngMagic, data)
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Overall Rating": "overall_rating.png",
		"1. How satisfied were you with the overall event?": "1_how_satisfied_were_you_with_the_overall_event.png",
		"???":         "chart.png",
		"  Logistics": "logistics.png",
	}
	for in, want := range tests {
		assert.Equal(t, want, FileName(in), in)
	}
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.Show(context.Background(), &Chart{}))
}
