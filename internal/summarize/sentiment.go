package summarize

import (
	"strings"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

var (
	positiveTerms = []string{"crescimento", "sucesso", "inovação", "melhoria"}
	negativeTerms = []string{"crise", "problema", "queda", "falha"}
)

// AnalyzeSentiment tags an article by scanning its lower-cased title.
// Positive terms are checked first.
func AnalyzeSentiment(a *news.Article) news.Sentiment {
	title := strings.ToLower(a.Title)
	switch {
	case containsAny(title, positiveTerms):
		return news.SentimentPositive
	case containsAny(title, negativeTerms):
		return news.SentimentNegative
	default:
		return news.SentimentNeutral
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
