package news

import (
	"time"

	"github.com/google/uuid"
)

// Category labels assigned by the categorizer.
const (
	CategoryTechnology = "tecnologia"
	CategoryPolitics   = "política"
	CategoryEconomy    = "economia"
	CategorySports     = "esportes"
	CategoryHealth     = "saúde"
	CategoryScience    = "ciência"
	CategoryGeneral    = "general"
)

// Sentiment is the optional tone tag of an article.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// Article is a candidate news item. It is created by a search source and then
// mutated in place by the categorizer and the summarizer.
type Article struct {
	Title          string    `json:"title"`
	Summary        string    `json:"summary,omitempty"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	Category       string    `json:"category,omitempty"`
	PublishedAt    time.Time `json:"publishedAt"`
	RelevanceScore float64   `json:"relevanceScore"`
	Keywords       []string  `json:"keywords,omitempty"`
	Sentiment      Sentiment `json:"sentiment,omitempty"`
}

// Clone returns a deep copy of the article.
func (a *Article) Clone() *Article {
	c := *a
	if a.Keywords != nil {
		c.Keywords = append([]string(nil), a.Keywords...)
	}
	return &c
}

// Report is the outcome of one curation call.
type Report struct {
	ID                    string
	Title                 string
	GeneratedAt           time.Time
	Topics                []string
	Articles              []*Article
	Summary               string
	CategorySummary       map[string]int
	TotalArticles         int
	AverageRelevanceScore float64
}

// NewReport creates an empty report stamped with the given time.
func NewReport(title string, topics []string, now time.Time) *Report {
	return &Report{
		ID:          uuid.NewString(),
		Title:       title,
		GeneratedAt: now,
		Topics:      append([]string{}, topics...),
	}
}

// SetArticles replaces the article sequence and recomputes the derived totals.
func (r *Report) SetArticles(articles []*Article) {
	r.Articles = articles
	r.TotalArticles = len(articles)
	r.AverageRelevanceScore = AverageScore(articles)
}

// AverageScore is the mean relevance score, 0 for an empty slice.
func AverageScore(articles []*Article) float64 {
	if len(articles) == 0 {
		return 0
	}
	var sum float64
	for _, a := range articles {
		sum += a.RelevanceScore
	}
	return sum / float64(len(articles))
}
