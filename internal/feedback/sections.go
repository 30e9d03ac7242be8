package feedback

import (
	"strconv"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// Section is one charted part of the analysis report
type Section struct {
	Field string
	Title string
	Text  string
	Kind  domain.ChartKind
	// Coerce converts the column with CoerceRatings before counting
	Coerce bool
}

// Sections lists the analysis report sections in report order
var Sections = []Section{
	{
		Field:  domain.FieldOverallRating,
		Title:  "1. Overall Rating",
		Text:   "Overall Rating: Please rate the overall quality of the event on a scale of 1 to 5 (1 being Poor, 5 being Excellent)",
		Kind:   domain.ChartKindBar,
		Coerce: true,
	},
	{
		Field: domain.FieldObjectives,
		Title: "2. Objectives Met",
		Text:  "Event/Activity Objectives: Were the objectives of the event clearly communicated and met?",
		Kind:  domain.ChartKindPie,
	},
	{
		Field: domain.FieldOrganization,
		Title: "3. Event Organization",
		Text:  "How well was the event/activity organized?",
		Kind:  domain.ChartKindBar,
	},
	{
		Field: domain.FieldInteraction,
		Title: "4. Interaction and Engagement",
		Text:  "Interaction and Engagement",
		Kind:  domain.ChartKindBar,
	},
	{
		Field: domain.FieldLogistics,
		Title: "5. Logistics",
		Text:  "How would you rate the Logistics?",
		Kind:  domain.ChartKindBar,
	},
}

// Values returns the column for this section from a normalized table
func (s Section) Values(table *domain.FeedbackTable) ([]string, error) {
	values, err := Column(table, s.Field)
	if err != nil {
		return nil, err
	}
	if !s.Coerce {
		return values, nil
	}

	out := make([]string, len(values))
	for i, n := range CoerceRatings(values) {
		out[i] = strconv.Itoa(n)
	}
	return out, nil
}

// Distribution counts the section's responses with the bucket order its chart kind uses
func (s Section) Distribution(table *domain.FeedbackTable) (domain.Distribution, error) {
	values, err := s.Values(table)
	if err != nil {
		return domain.Distribution{}, err
	}

	var buckets []domain.Bucket
	if s.Kind == domain.ChartKindPie {
		buckets = CountPie(values)
	} else {
		buckets = CountBar(values)
	}

	total := 0
	for _, b := range buckets {
		total += b.Count
	}

	return domain.Distribution{
		Field:   s.Field,
		Title:   s.Title,
		Kind:    s.Kind,
		Total:   total,
		Buckets: buckets,
	}, nil
}

// Distributions computes every section of a normalized table in report order.
// The first missing column aborts with ErrMissingColumn.
func Distributions(table *domain.FeedbackTable) ([]domain.Distribution, error) {
	out := make([]domain.Distribution, 0, len(Sections))
	for _, s := range Sections {
		d, err := s.Distribution(table)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
