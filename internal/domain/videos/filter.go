package videos

import (
	"strconv"
	"strings"

	"yttools/internal/types"
)

// Filter returns the entries matching spec, preserving input order. The input
// slice is not mutated.
func Filter(entries []types.VideoEntry, spec types.FilterSpec) []types.VideoEntry {
	out := make([]types.VideoEntry, 0, len(entries))
	for _, v := range entries {
		d := ParseDuration(v.Duration)
		if spec.MinDuration > 0 && d <= spec.MinDuration {
			continue
		}
		if spec.MaxDuration > 0 && d > spec.MaxDuration {
			continue
		}
		if !titleMatches(v.Title, spec.Keywords) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ParseDuration converts a raw listing duration to seconds. "NA" and anything
// else that does not parse count as zero.
func ParseDuration(raw string) float64 {
	if raw == "NA" {
		return 0
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return d
}

func titleMatches(title string, keywords []string) bool {
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
