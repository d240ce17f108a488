package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

const (
	highRelevance     = 0.7
	moderateRelevance = 0.5
)

const (
	titlePrefix   = "Relatório de Notícias"
	noArticles    = "Nenhuma notícia foi encontrada para os tópicos pesquisados."
	closingRemark = "As notícias foram coletadas e processadas em tempo real, garantindo informações atualizadas sobre os tópicos de interesse."
)

// Aggregator builds reports from processed articles.
type Aggregator struct {
	now func() time.Time
}

// New creates an aggregator using the wall clock.
func New() *Aggregator {
	return &Aggregator{now: time.Now}
}

// WithClock overrides the clock used for report timestamps and date titles.
func (g *Aggregator) WithClock(now func() time.Time) *Aggregator {
	g.now = now
	return g
}

// Generate assembles a report for the topics. It fails when an article is
// not fully processed: every article needs a category and a score in [0, 1].
func (g *Aggregator) Generate(topics []string, articles []*news.Article) (*news.Report, error) {
	log.WithFields(log.Fields{"topics": len(topics), "articles": len(articles)}).Info("Generating report")

	histogram, err := categoryHistogram(articles)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	if err := checkScores(articles); err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	now := g.now()
	r := news.NewReport(Title(topics, now), topics, now)
	r.SetArticles(articles)
	r.CategorySummary = histogram
	r.Summary = executiveSummary(topics, articles, histogram)

	log.WithField("title", r.Title).Info("Report generated")
	return r, nil
}

// Title names a report after its topics, or after the date when none are given.
func Title(topics []string, now time.Time) string {
	if len(topics) == 0 {
		return titlePrefix + " - " + now.Format("02/01/2006")
	}
	return titlePrefix + ": " + strings.Join(topics, ", ")
}

func categoryHistogram(articles []*news.Article) (map[string]int, error) {
	counts := make(map[string]int)
	for i, a := range articles {
		if a.Category == "" {
			return nil, fmt.Errorf("article %d (%q) has no category", i, a.Title)
		}
		counts[a.Category]++
	}
	return counts, nil
}

func checkScores(articles []*news.Article) error {
	for i, a := range articles {
		if math.IsNaN(a.RelevanceScore) || a.RelevanceScore < 0 || a.RelevanceScore > 1 {
			return fmt.Errorf("article %d (%q) has relevance score %v outside [0, 1]", i, a.Title, a.RelevanceScore)
		}
	}
	return nil
}

func executiveSummary(topics []string, articles []*news.Article, histogram map[string]int) string {
	if len(articles) == 0 {
		return noArticles
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Este relatório apresenta %d notícias relacionadas aos tópicos: %s. ",
		len(articles), strings.Join(topics, ", "))

	avg := news.AverageScore(articles)
	switch {
	case avg > highRelevance:
		b.WriteString("As notícias apresentam alta relevância para os tópicos pesquisados. ")
	case avg > moderateRelevance:
		b.WriteString("As notícias apresentam relevância moderada para os tópicos pesquisados. ")
	default:
		b.WriteString("As notícias apresentam relevância variada para os tópicos pesquisados. ")
	}

	if top, count := modeCategory(histogram); top != "" {
		fmt.Fprintf(&b, "A categoria mais representada é '%s' com %d artigos. ", top, count)
	}

	b.WriteString(closingRemark)
	return b.String()
}

// modeCategory returns the most frequent category. Ties go to the
// lexicographically smallest label.
func modeCategory(histogram map[string]int) (string, int) {
	var top string
	best := 0
	for label, count := range histogram {
		if count > best || (count == best && label < top) {
			top, best = label, count
		}
	}
	return top, best
}

// sortedCategories returns the histogram labels in lexical order.
func sortedCategories(histogram map[string]int) []string {
	labels := make([]string, 0, len(histogram))
	for label := range histogram {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
