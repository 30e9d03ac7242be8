// Package report assembles feedback reports.
//
// A Document is an ordered list of blocks (headings, paragraphs and chart
// images). NewAnalysisDocument and NewSummaryDocument lay out the two report
// kinds; an Assembler renders a Document with a format-specific Renderer and
// releases the embedded charts afterwards.
//
// Two renderers ship with the package:
//
//	DOCXRenderer  Word document via godocx, the default download format
//	PDFRenderer   PDF via gofpdf
package report
