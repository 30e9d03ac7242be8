// Package charts renders survey distributions as PNG images with gonum/plot.
//
// Three chart kinds are produced: bar charts of categorical or numeric answers,
// pie charts of answer shares, and rating histograms with bins centered on the
// 1..5 Likert points. Every rendered Chart is owned by its consumer, which
// releases the image with Close once it has been embedded.
package charts
