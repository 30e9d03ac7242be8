// Package feedback implements the analysis half of the reporter: loading a
// survey export, mapping its free-form headers onto the canonical fields,
// coercing ratings and counting response distributions per report section.
//
// Every function here is pure apart from LoadTable, which only reads the
// supplied reader. Chart drawing and document assembly live in the charts
// and report packages.
package feedback
