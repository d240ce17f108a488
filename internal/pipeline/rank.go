package pipeline

import (
	"sort"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

// Rank orders articles by relevance score, highest first, and keeps the first
// maxResults. Equal scores keep their input order. The input is not modified.
func Rank(articles []*news.Article, maxResults int) []*news.Article {
	ranked := append([]*news.Article{}, articles...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	if maxResults < 0 {
		maxResults = 0
	}
	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

// FilterMinScore drops articles scoring below minScore, preserving order.
func FilterMinScore(articles []*news.Article, minScore float64) []*news.Article {
	kept := make([]*news.Article, 0, len(articles))
	for _, a := range articles {
		if a.RelevanceScore >= minScore {
			kept = append(kept, a)
		}
	}
	return kept
}
