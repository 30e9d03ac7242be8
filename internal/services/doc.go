// Package services runs the two report pipelines on behalf of the HTTP and
// command line shells.
//
// AnalyzerService turns an uploaded survey export into an analysis report:
// load, normalize headers, coerce ratings, count, chart and assemble.
// GeneratorService builds a synthetic dataset for an event, exports it as a
// workbook and assembles a summary report of per-question histograms.
//
// Both services take the caller's session and replace its outputs only after
// every stage has succeeded. Failures are returned as *errors.AppError so the
// transport layer can map them to problem responses.
//
// Every run is traced as one span with a child span per stage, and counted
// in the pipeline metrics.
package services
