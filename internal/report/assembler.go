package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/swarnavabiswas0/Feedback/internal/charts"
)

// Format is an output document format
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// ErrUnsupportedFormat is returned for formats without a registered renderer
var ErrUnsupportedFormat = errors.New("unsupported report format")

// ParseFormat parses a format name. Empty means DOCX.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatDOCX:
		return FormatDOCX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Renderer writes a document in one format
type Renderer interface {
	Format() Format
	ContentType() string
	Render(w io.Writer, doc *Document) error
}

// Assembler renders documents with the renderer registered for the requested format
type Assembler struct {
	renderers map[Format]Renderer
	logger    *slog.Logger
}

// NewAssembler returns an assembler with the DOCX and PDF renderers registered
func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assembler{
		renderers: make(map[Format]Renderer),
		logger:    logger,
	}
	a.Register(NewDOCXRenderer())
	a.Register(NewPDFRenderer())
	return a
}

// Register adds or replaces the renderer for r.Format()
func (a *Assembler) Register(r Renderer) {
	a.renderers[r.Format()] = r
}

// Renderer returns the renderer for format
func (a *Assembler) Renderer(format Format) (Renderer, error) {
	r, ok := a.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return r, nil
}

// Assemble renders doc and returns the finished buffer. Every chart in doc is
// closed before Assemble returns, including on failure.
func (a *Assembler) Assemble(doc *Document, format Format) ([]byte, error) {
	defer charts.CloseAll(doc.Charts())

	r, err := a.Renderer(format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render %s report: %w", format, err)
	}

	a.logger.Debug("report assembled",
		slog.String("title", doc.Title),
		slog.String("format", string(format)),
		slog.Int("blocks", len(doc.Blocks)),
		slog.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

// FileName joins a base name and the format extension
func FileName(base string, format Format) string {
	return base + "." + string(format)
}
