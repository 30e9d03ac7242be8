package feedback

import (
	"strings"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

// aliasRule maps headers containing trigger (case-insensitive) to a canonical field
type aliasRule struct {
	trigger   string
	canonical string
}

// aliasRules are evaluated in order; the first matching rule wins
var aliasRules = []aliasRule{
	{trigger: "overall", canonical: domain.FieldOverallRating},
	{trigger: "objective", canonical: domain.FieldObjectives},
	{trigger: "organize", canonical: domain.FieldOrganization},
	{trigger: "interaction", canonical: domain.FieldInteraction},
	{trigger: "logistics", canonical: domain.FieldLogistics},
	{trigger: "comment", canonical: domain.FieldComments},
}

// NormalizeHeader returns the canonical field for a raw header, or the header
// unchanged when no rule matches.
func NormalizeHeader(raw string) string {
	lower := strings.ToLower(raw)
	for _, rule := range aliasRules {
		if strings.Contains(lower, rule.trigger) {
			return rule.canonical
		}
	}
	return raw
}

// NormalizeHeaders maps every header through NormalizeHeader, preserving length and order
func NormalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = NormalizeHeader(h)
	}
	return out
}

// Normalize returns a table whose headers have been normalized. Rows are shared.
func Normalize(table *domain.FeedbackTable) *domain.FeedbackTable {
	return table.WithHeaders(NormalizeHeaders(table.Headers))
}
