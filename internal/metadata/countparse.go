package metadata

import (
	"strconv"
	"strings"
)

// ParseCount converts a site-formatted count string to a non-negative
// integer. Parentheses are stripped, a trailing "k" or "m" multiplies by a
// thousand or a million, and commas are discarded as thousands separators.
// A string containing more than one "." is treated as using dots for
// thousands separators as well, since a single decimal point is only valid
// as the last separator. Empty, fully-stripped, or unparseable input yields
// 0.
func ParseCount(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	if strings.Count(s, ".") > 1 {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		multiplier = 1000
		s = strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		multiplier = 1000000
		s = strings.TrimSuffix(s, "m")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0
	}
	return int(value * multiplier)
}
