package report

import (
	"fmt"
	"strconv"

	"github.com/swarnavabiswas0/Feedback/internal/charts"
)

// ImageWidthInches is the display width of every embedded chart
const ImageWidthInches = 5.5

// AnalysisTitle is the title of the survey analysis report
const AnalysisTitle = "Event Feedback Analysis Report"

// BlockKind identifies a document block
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockImage
)

// Alignment of a paragraph or image
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
)

// Block is one element of a document. Level 0 headings are the document title.
type Block struct {
	Kind  BlockKind
	Text  string
	Level int
	Align Alignment
	Chart *charts.Chart
	// WidthInches applies to images
	WidthInches float64
}

// Document is an ordered sequence of blocks
type Document struct {
	Title  string
	Blocks []Block
}

// NewDocument returns a document whose first block is the title heading
func NewDocument(title string) *Document {
	d := &Document{Title: title}
	d.AddHeading(title, 0)
	return d
}

// AddHeading appends a heading
func (d *Document) AddHeading(text string, level int) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockHeading, Text: text, Level: level})
}

// AddParagraph appends a paragraph
func (d *Document) AddParagraph(text string) {
	d.Blocks = append(d.Blocks, Block{Kind: BlockParagraph, Text: text})
}

// AddImage appends a chart displayed at widthInches
func (d *Document) AddImage(chart *charts.Chart, widthInches float64, align Alignment) {
	d.Blocks = append(d.Blocks, Block{
		Kind:        BlockImage,
		Chart:       chart,
		WidthInches: widthInches,
		Align:       align,
	})
}

// Charts returns every chart embedded in the document
func (d *Document) Charts() []*charts.Chart {
	var out []*charts.Chart
	for _, b := range d.Blocks {
		if b.Kind == BlockImage && b.Chart != nil {
			out = append(out, b.Chart)
		}
	}
	return out
}

// Section is one charted part of a report
type Section struct {
	Title string
	// Text is printed below the heading; empty for summary reports
	Text  string
	Chart *charts.Chart
}

// Metadata heads a generated event summary
type Metadata struct {
	EventName    string
	DateInput    string
	Participants int
}

// NewAnalysisDocument lays out the survey analysis report: one level 1
// heading, explanatory paragraph and chart per section, in the order given.
func NewAnalysisDocument(sections []Section) *Document {
	d := NewDocument(AnalysisTitle)
	for _, s := range sections {
		d.AddHeading(s.Title, 1)
		d.AddParagraph(s.Text)
		d.AddImage(s.Chart, ImageWidthInches, AlignLeft)
	}
	return d
}

// SummaryTitle returns the title of a generated event summary
func SummaryTitle(eventName string) string {
	return fmt.Sprintf("%s - Event Feedback Summary", eventName)
}

// NewSummaryDocument lays out the generated event summary: metadata
// paragraphs, then a level 2 heading and centered chart per question.
func NewSummaryDocument(meta Metadata, sections []Section) *Document {
	d := NewDocument(SummaryTitle(meta.EventName))
	d.AddParagraph("Date of Event: " + meta.DateInput)
	d.AddParagraph("Number of Participants: " + strconv.Itoa(meta.Participants))

	for _, s := range sections {
		d.AddHeading(s.Title, 2)
		if s.Text != "" {
			d.AddParagraph(s.Text)
		}
		d.AddImage(s.Chart, ImageWidthInches, AlignCenter)
	}
	return d
}
