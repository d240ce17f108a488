package categorize

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

// ErrEmptyTitle is returned for articles that carry no title to classify.
var ErrEmptyTitle = errors.New("article has no title")

// Result holds the results of a categorization run.
type Result struct {
	Processed int
	Degraded  int
}

// outcome is the per-article result. A degraded outcome carries the fallback
// label and the reason classification failed.
type outcome struct {
	label  string
	reason error
}

// Categorizer assigns taxonomy labels from title and keyword signals.
type Categorizer struct{}

// New creates a categorizer.
func New() *Categorizer {
	return &Categorizer{}
}

// Categorize labels every article in place. Articles that cannot be
// classified are labelled general and counted as degraded.
func (c *Categorizer) Categorize(articles []*news.Article) *Result {
	log.WithField("count", len(articles)).Info("Categorizing articles")

	r := &Result{}
	for _, a := range articles {
		o := c.classify(a)
		a.Category = o.label
		r.Processed++
		if o.reason != nil {
			r.Degraded++
			log.WithError(o.reason).WithField("title", a.Title).Warn("Categorization failed, using general")
			continue
		}
		log.WithFields(log.Fields{"title": a.Title, "category": o.label}).Debug("Categorized article")
	}

	log.WithFields(log.Fields{"processed": r.Processed, "degraded": r.Degraded}).Info("Categorization complete")
	return r
}

func (c *Categorizer) classify(a *news.Article) (o outcome) {
	defer func() {
		if p := recover(); p != nil {
			o = outcome{label: news.CategoryGeneral, reason: fmt.Errorf("panic: %v", p)}
		}
	}()

	label, err := c.CategorizeArticle(a)
	if err != nil {
		return outcome{label: news.CategoryGeneral, reason: err}
	}
	return outcome{label: label}
}

// CategorizeArticle returns the category of a single article. The lower-cased
// title is checked against each vocabulary in order; failing that, keywords
// are matched exactly against the technology, politics and economy sets.
func (c *Categorizer) CategorizeArticle(a *news.Article) (string, error) {
	if a == nil || a.Title == "" {
		return "", ErrEmptyTitle
	}

	title := strings.ToLower(a.Title)
	for _, v := range titleOrder {
		for _, term := range v.terms {
			if strings.Contains(title, term) {
				return v.label, nil
			}
		}
	}

	for _, kw := range a.Keywords {
		lower := strings.ToLower(kw)
		for _, v := range keywordOrder {
			if v.has(lower) {
				return v.label, nil
			}
		}
	}

	return news.CategoryGeneral, nil
}

// Stats renders per-category article counts, sorted by category name.
func Stats(articles []*news.Article) string {
	if len(articles) == 0 {
		return "Nenhum artigo para analisar"
	}

	counts := make(map[string]int)
	for _, a := range articles {
		counts[a.Category]++
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	b.WriteString("Estatísticas de Categorização:\n")
	for _, label := range labels {
		fmt.Fprintf(&b, "- %s: %d artigos\n", label, counts[label])
	}
	return b.String()
}
