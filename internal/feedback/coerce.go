package feedback

import (
	"math"
	"strconv"
	"strings"
)

// CoerceRating parses a raw rating cell. Blank, malformed, NaN and infinite
// values become 0; numbers are truncated toward zero.
func CoerceRating(raw string) int {
	v, ok := parseRating(raw)
	if !ok {
		return 0
	}
	return int(math.Trunc(v))
}

// CoerceRatings coerces every cell of a rating column
func CoerceRatings(raw []string) []int {
	out := make([]int, len(raw))
	for i, v := range raw {
		out[i] = CoerceRating(v)
	}
	return out
}

// CountUnparsed reports how many cells CoerceRatings replaced with 0 because
// they were not numbers.
func CountUnparsed(raw []string) int {
	n := 0
	for _, v := range raw {
		if _, ok := parseRating(v); !ok {
			n++
		}
	}
	return n
}

func parseRating(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	// int conversion of values beyond the int range is implementation defined
	if v >= math.MaxInt64 || v <= math.MinInt64 {
		return 0, false
	}
	return v, true
}
