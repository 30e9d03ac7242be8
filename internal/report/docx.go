package report

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/stypes"
)

// MIMETypeDOCX is the content type of WordprocessingML documents
const MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// DOCXRenderer builds Word documents on the godocx default template, so
// Title and HeadingN paragraphs pick up the template's built-in styles.
type DOCXRenderer struct {
	// tempDir holds chart PNGs while they are embedded; empty means os.TempDir
	tempDir string
}

// NewDOCXRenderer returns a DOCX renderer
func NewDOCXRenderer() *DOCXRenderer {
	return &DOCXRenderer{}
}

// Format implements Renderer
func (r *DOCXRenderer) Format() Format { return FormatDOCX }

// ContentType implements Renderer
func (r *DOCXRenderer) ContentType() string { return MIMETypeDOCX }

// Render implements Renderer
func (r *DOCXRenderer) Render(w io.Writer, doc *Document) error {
	d, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to open docx template: %w", err)
	}

	// godocx embeds pictures from files; the PNGs live here only until Render returns
	scratch, err := os.MkdirTemp(r.tempDir, "feedback-docx-*")
	if err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	images := 0
	for i, b := range doc.Blocks {
		switch b.Kind {
		case BlockHeading:
			if _, err := d.AddHeading(b.Text, headingLevel(b.Level)); err != nil {
				return fmt.Errorf("heading block %d: %w", i, err)
			}
		case BlockParagraph:
			p := d.AddParagraph(b.Text)
			justify(p, b.Align)
		case BlockImage:
			images++
			if err := addImage(d, scratch, b, images); err != nil {
				return err
			}
		}
	}

	dedupeDefaults(d)
	if err := d.Write(w); err != nil {
		return fmt.Errorf("failed to write docx: %w", err)
	}
	return nil
}

func addImage(d *docx.RootDoc, dir string, b Block, n int) error {
	if b.Chart == nil {
		return fmt.Errorf("image block %d has no chart", n)
	}
	data, err := b.Chart.Bytes()
	if err != nil {
		return fmt.Errorf("chart %q: %w", b.Chart.Key, err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("chart %q is not a png: %w", b.Chart.Key, err)
	}
	if cfg.Width == 0 {
		return fmt.Errorf("chart %q has zero width", b.Chart.Key)
	}

	path := filepath.Join(dir, fmt.Sprintf("chart%d.png", n))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("chart %q: %w", b.Chart.Key, err)
	}
	defer os.Remove(path)

	width := b.WidthInches
	height := width * float64(cfg.Height) / float64(cfg.Width)

	p := d.AddEmptyParagraph()
	justify(p, b.Align)
	if _, err := p.AddPicture(path, units.Inch(width), units.Inch(height)); err != nil {
		return fmt.Errorf("failed to embed chart %q: %w", b.Chart.Key, err)
	}
	return nil
}

// dedupeDefaults keeps one Default content type per extension. godocx adds a
// png entry for every picture and packages must not repeat an extension.
func dedupeDefaults(d *docx.RootDoc) {
	seen := make(map[string]bool, len(d.ContentType.Default))
	kept := d.ContentType.Default[:0]
	for _, def := range d.ContentType.Default {
		ext := strings.ToLower(def.Extension)
		if seen[ext] {
			continue
		}
		seen[ext] = true
		kept = append(kept, def)
	}
	d.ContentType.Default = kept
}

func justify(p *docx.Paragraph, align Alignment) {
	if align == AlignCenter {
		p.Justification(stypes.JustificationCenter)
	}
}

// headingLevel clamps to the Title..Heading9 styles godocx supports
func headingLevel(level int) uint {
	switch {
	case level <= 0:
		return 0
	case level > 9:
		return 9
	default:
		return uint(level)
	}
}
