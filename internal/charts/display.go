package charts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// Display receives every chart as soon as it is rendered, before the report
// assembler consumes it. Implementations must copy what they keep.
type Display interface {
	Show(ctx context.Context, chart *Chart) error
}

// DisplayFunc adapts a function to Display
type DisplayFunc func(ctx context.Context, chart *Chart) error

// Show implements Display
func (f DisplayFunc) Show(ctx context.Context, chart *Chart) error {
	return f(ctx, chart)
}

// Discard is a Display that ignores every chart
var Discard Display = DisplayFunc(func(context.Context, *Chart) error { return nil })

// Preview is a detached copy of a displayed chart
type Preview struct {
	Key   string
	Title string
	Kind  domain.ChartKind
	PNG   []byte
}

// Collector keeps a copy of every chart shown to it, in display order
type Collector struct {
	mu       sync.Mutex
	previews []Preview
}

// Show implements Display
func (c *Collector) Show(_ context.Context, chart *Chart) error {
	data, err := chart.Bytes()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.previews = append(c.previews, Preview{
		Key:   chart.Key,
		Title: chart.Title,
		Kind:  chart.Kind,
		PNG:   append([]byte(nil), data...),
	})
	return nil
}

// Previews returns the collected charts
func (c *Collector) Previews() []Preview {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Preview, len(c.previews))
	copy(out, c.previews)
	return out
}

// DirDisplay writes each chart as a PNG file named after its key
type DirDisplay struct {
	Dir string
}

// Show implements Display
func (d DirDisplay) Show(_ context.Context, chart *Chart) error {
	data, err := chart.Bytes()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	path := filepath.Join(d.Dir, FileName(chart.Key))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", chart.Key, err)
	}
	return nil
}

// FileName turns a chart key into a portable PNG file name
func FileName(key string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		name = "chart"
	}
	return name + ".png"
}
