package search

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

// Classifier assigns a category label to a single article.
type Classifier interface {
	CategorizeArticle(a *news.Article) (string, error)
}

// CategoryFilter runs a base search and keeps only articles of one category.
type CategoryFilter struct {
	Source Source
	// Classifier labels articles that arrive without a category. Optional.
	Classifier Classifier
	// Limit is the maxResults passed to the base search.
	Limit int
}

// Search returns at most maxResults articles about topic whose category
// case-insensitively equals category. An empty category disables filtering.
func (f *CategoryFilter) Search(ctx context.Context, topic, category string, maxResults int) []*news.Article {
	log.WithFields(log.Fields{"topic": topic, "category": category, "max": maxResults}).Info("Filtered search")

	articles := f.Source.Search(ctx, topic, f.Limit)

	if category != "" {
		kept := make([]*news.Article, 0, len(articles))
		for _, a := range articles {
			if a.Category == "" && f.Classifier != nil {
				label, err := f.Classifier.CategorizeArticle(a)
				if err != nil {
					label = news.CategoryGeneral
				}
				a.Category = label
			}
			if strings.EqualFold(a.Category, category) {
				kept = append(kept, a)
			}
		}
		articles = kept
	}

	if maxResults >= 0 && len(articles) > maxResults {
		articles = articles[:maxResults]
	}
	return articles
}
