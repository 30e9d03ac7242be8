package domain

import "strconv"

// Canonical feedback fields produced by header normalization
const (
	FieldOverallRating = "Overall Rating"
	FieldObjectives    = "Objectives"
	FieldOrganization  = "Organization"
	FieldInteraction   = "Interaction"
	FieldLogistics     = "Logistics"
	FieldComments      = "Comments"
)

// CanonicalFields lists the canonical fields in definition order
var CanonicalFields = []string{
	FieldOverallRating,
	FieldObjectives,
	FieldOrganization,
	FieldInteraction,
	FieldLogistics,
	FieldComments,
}

// FeedbackTable is a loaded feedback export: one header row and the data rows below it.
// Every row has exactly len(Headers) cells once produced by the loader.
type FeedbackTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Len returns the number of data rows
func (t *FeedbackTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Column returns the cells of the first column labelled name
func (t *FeedbackTable) Column(name string) ([]string, bool) {
	idx := -1
	for i, h := range t.Headers {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	values := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if idx < len(row) {
			values[r] = row[idx]
		}
	}
	return values, true
}

// WithHeaders returns a copy of the table that shares rows but uses the given headers
func (t *FeedbackTable) WithHeaders(headers []string) *FeedbackTable {
	return &FeedbackTable{
		Headers: headers,
		Rows:    t.Rows,
	}
}

// ChartKind selects how a field distribution is drawn
type ChartKind string

const (
	ChartKindBar       ChartKind = "bar"
	ChartKindPie       ChartKind = "pie"
	ChartKindHistogram ChartKind = "histogram"
)

// Bucket is one group of a response distribution
type Bucket struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Distribution summarizes the responses of one field
type Distribution struct {
	Field   string    `json:"field"`
	Title   string    `json:"title"`
	Kind    ChartKind `json:"kind"`
	Total   int       `json:"total"`
	Buckets []Bucket  `json:"buckets"`
}

// PercentLabel formats the bucket share with one decimal place, e.g. "42.9%"
func (b Bucket) PercentLabel() string {
	return strconv.FormatFloat(b.Percent, 'f', 1, 64) + "%"
}
