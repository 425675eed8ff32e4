package util

import (
	"regexp"
	"strconv"
	"strings"
)

// tickerPattern accepts letters, digits, dots and dashes (BTC-USD, BRK.B).
var tickerPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,10}$`)

// NormalizeTicker uppercases and trims a symbol; ok is false when the result
// does not look like a ticker.
func NormalizeTicker(s string) (string, bool) {
	t := strings.ToUpper(strings.TrimSpace(s))
	return t, tickerPattern.MatchString(t)
}

// NormalizeTickers normalizes every symbol and drops duplicates while keeping
// the first-seen order. Symbols that fail the pattern are dropped.
func NormalizeTickers(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		t, ok := NormalizeTicker(s)
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
