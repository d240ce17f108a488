package search

import (
	"math"
	"strings"
)

const (
	baseScore  = 0.5
	titleBonus = 0.3
	// MaxJitter bounds the random variation added to every score.
	MaxJitter = 0.2
)

// RelevanceScore scores a title against a topic. jitter is expected in
// [-MaxJitter, MaxJitter]; the result is clamped to [0, 1].
func RelevanceScore(topic, title string, jitter float64) float64 {
	score := baseScore
	if strings.Contains(strings.ToLower(title), strings.ToLower(topic)) {
		score += titleBonus
	}
	score += jitter
	return clamp(score)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
