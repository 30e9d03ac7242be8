package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// MIMETypePDF is the content type of PDF documents
const MIMETypePDF = "application/pdf"

const mmPerInch = 25.4

// headingSizes maps heading levels to font sizes in points
var headingSizes = map[int]float64{0: 22, 1: 16, 2: 13}

// PDFRenderer lays a document out on A4 pages with gofpdf core fonts
type PDFRenderer struct {
	now func() time.Time
}

// NewPDFRenderer returns a PDF renderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{now: time.Now}
}

// Format implements Renderer
func (r *PDFRenderer) Format() Format { return FormatPDF }

// ContentType implements Renderer
func (r *PDFRenderer) ContentType() string { return MIMETypePDF }

// Render implements Renderer
func (r *PDFRenderer) Render(w io.Writer, doc *Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("Event Feedback Reporter", true)
	pdf.SetCreationDate(r.now())
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()

	for i, b := range doc.Blocks {
		switch b.Kind {
		case BlockHeading:
			size, ok := headingSizes[b.Level]
			if !ok {
				size = 12
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.Ln(2)
			pdf.MultiCell(0, size*0.5, tr(b.Text), "", "L", false)
			pdf.Ln(2)

		case BlockParagraph:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 5.5, tr(b.Text), "", alignString(b.Align), false)
			pdf.Ln(2)

		case BlockImage:
			if b.Chart == nil {
				return fmt.Errorf("image block %d has no chart", i)
			}
			data, err := b.Chart.Bytes()
			if err != nil {
				return fmt.Errorf("chart %q: %w", b.Chart.Key, err)
			}

			name := fmt.Sprintf("chart%d", i)
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))

			width := b.WidthInches * mmPerInch
			if maxW := pageW - left - right; width > maxW {
				width = maxW
			}
			x := left
			if b.Align == AlignCenter {
				x = (pageW - width) / 2
			}
			pdf.ImageOptions(name, x, -1, width, 0, true, opts, 0, "")
			pdf.Ln(4)
		}

		if err := pdf.Error(); err != nil {
			return fmt.Errorf("pdf layout failed at block %d: %w", i, err)
		}
	}

	return pdf.Output(w)
}

func alignString(a Alignment) string {
	if a == AlignCenter {
		return "C"
	}
	return "L"
}
