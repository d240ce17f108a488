package news

import (
	"math"
	"testing"
	"time"
)

func TestSetArticlesRecomputesTotals(t *testing.T) {
	r := NewReport("Relatório", []string{"tecnologia"}, time.Now())
	r.SetArticles([]*Article{
		{Title: "A", RelevanceScore: 0.2},
		{Title: "B", RelevanceScore: 0.8},
	})

	if r.TotalArticles != 2 {
		t.Errorf("expected 2 articles, got %d", r.TotalArticles)
	}
	if math.Abs(r.AverageRelevanceScore-0.5) > 1e-9 {
		t.Errorf("expected average 0.5, got %f", r.AverageRelevanceScore)
	}

	r.SetArticles(nil)
	if r.TotalArticles != 0 {
		t.Errorf("expected 0 articles, got %d", r.TotalArticles)
	}
	if r.AverageRelevanceScore != 0 {
		t.Errorf("expected average reset to 0, got %f", r.AverageRelevanceScore)
	}
}

func TestNewReportCopiesTopics(t *testing.T) {
	topics := []string{"a", "b"}
	r := NewReport("T", topics, time.Now())
	topics[0] = "changed"

	if r.Topics[0] != "a" {
		t.Errorf("expected report topics to be independent, got %v", r.Topics)
	}
	if r.ID == "" {
		t.Error("expected report ID")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := &Article{Title: "A", Keywords: []string{"x", "y"}}
	c := a.Clone()
	c.Keywords[0] = "z"
	c.Category = "economia"

	if a.Keywords[0] != "x" {
		t.Error("expected clone keywords to be a copy")
	}
	if a.Category != "" {
		t.Error("expected clone category change not to leak")
	}
}
