package pipeline

import (
	"testing"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

func scored(pairs ...any) []*news.Article {
	var out []*news.Article
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, &news.Article{Title: pairs[i].(string), RelevanceScore: pairs[i+1].(float64)})
	}
	return out
}

func titlesOf(articles []*news.Article) string {
	s := ""
	for _, a := range articles {
		s += a.Title
	}
	return s
}

func TestRankStableDescending(t *testing.T) {
	in := scored("a", 0.5, "b", 0.9, "c", 0.5, "d", 0.7, "e", 0.9)
	got := Rank(in, 10)
	if titlesOf(got) != "bedac" {
		t.Errorf("Rank order = %s, want bedac", titlesOf(got))
	}
	if titlesOf(in) != "abcde" {
		t.Error("Rank must not reorder its input")
	}
}

func TestRankTruncates(t *testing.T) {
	got := Rank(scored("a", 0.1, "b", 0.2, "c", 0.3), 2)
	if titlesOf(got) != "cb" {
		t.Errorf("got %s, want cb", titlesOf(got))
	}
	if got := Rank(scored("a", 0.1), 0); len(got) != 0 {
		t.Errorf("expected empty for max 0, got %d", len(got))
	}
}

func TestRankEmpty(t *testing.T) {
	got := Rank(nil, 5)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestFilterMinScore(t *testing.T) {
	got := FilterMinScore(scored("a", 0.9, "b", 0.5, "c", 0.7, "d", 0.69), 0.7)
	if titlesOf(got) != "ac" {
		t.Errorf("got %s, want ac", titlesOf(got))
	}
	if got := FilterMinScore(nil, 0.5); len(got) != 0 {
		t.Errorf("expected empty, got %d", len(got))
	}
}
