package pipeline

import (
	"math"
	"strconv"
	"strings"
)

// DefaultMaxArticles replaces missing or non-positive article limits.
const DefaultMaxArticles = 10

// ParseTopics splits comma-separated topics, trims them and drops empties.
func ParseTopics(input string) []string {
	var topics []string
	for _, part := range strings.Split(input, ",") {
		if t := strings.TrimSpace(part); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

// ParseMaxArticles reads an article limit. Unparsable or non-positive input
// yields DefaultMaxArticles.
func ParseMaxArticles(input string) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return DefaultMaxArticles
	}
	return NormalizeMaxArticles(n)
}

// NormalizeMaxArticles maps non-positive limits to DefaultMaxArticles.
func NormalizeMaxArticles(n int) int {
	if n <= 0 {
		return DefaultMaxArticles
	}
	return n
}

// ParseMinScore reads a minimum relevance score. Unparsable input or values
// outside [0, 1] yield 0.
func ParseMinScore(input string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0
	}
	return NormalizeMinScore(v)
}

// NormalizeMinScore maps scores outside [0, 1] to 0.
func NormalizeMinScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0
	}
	return v
}
