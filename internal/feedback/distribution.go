package feedback

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/swarnavabiswas0/Feedback/pkg/contracts/domain"
)

type tally struct {
	value string
	count int
	first int
}

// countValues groups the non-blank values. Numbers are keyed by value, so
// "4" and "4.0" share a bucket; other cells by their trimmed text.
func countValues(values []string) ([]*tally, int) {
	index := make(map[string]*tally)
	var groups []*tally
	total := 0

	for i, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if f, ok := numeric(v); ok && !math.IsInf(f, 0) {
			v = strconv.FormatFloat(f, 'f', -1, 64)
		}
		total++
		if g, ok := index[v]; ok {
			g.count++
			continue
		}
		g := &tally{value: v, count: 1, first: i}
		index[v] = g
		groups = append(groups, g)
	}
	return groups, total
}

func toBuckets(groups []*tally, total int) []domain.Bucket {
	buckets := make([]domain.Bucket, len(groups))
	for i, g := range groups {
		buckets[i] = domain.Bucket{Value: g.value, Count: g.count}
		if total > 0 {
			buckets[i].Percent = float64(g.count) * 100 / float64(total)
		}
	}
	return buckets
}

// CountBar groups values for a bar chart: one bucket per distinct value in
// ascending order. Blank cells are not counted.
func CountBar(values []string) []domain.Bucket {
	groups, total := countValues(values)
	sort.SliceStable(groups, func(i, j int) bool {
		return lessValue(groups[i].value, groups[j].value)
	})
	return toBuckets(groups, total)
}

// CountPie groups values for a pie chart: most frequent first, ties in the
// order the values were first seen.
func CountPie(values []string) []domain.Bucket {
	groups, total := countValues(values)
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].first < groups[j].first
	})
	return toBuckets(groups, total)
}

// lessValue orders numbers numerically and before text; text sorts lexically
func lessValue(a, b string) bool {
	fa, okA := numeric(a)
	fb, okB := numeric(b)

	switch {
	case okA && okB:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}

func numeric(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
