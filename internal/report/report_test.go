package report

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

var fixedNow = time.Date(2026, 2, 6, 14, 30, 0, 0, time.UTC)

func testAggregator() *Aggregator {
	return New().WithClock(func() time.Time { return fixedNow })
}

func sampleArticles() []*news.Article {
	return []*news.Article{
		{Title: "IA avança", Source: "G1", Category: "tecnologia", RelevanceScore: 0.9, Summary: "Resumo A", URL: "https://example.com/a"},
		{Title: "Reforma", Source: "UOL", Category: "política", RelevanceScore: 0.8},
		{Title: "Nova app", Source: "R7", Category: "tecnologia", RelevanceScore: 0.7, Summary: "Resumo C"},
	}
}

func TestTitle(t *testing.T) {
	cases := []struct {
		topics []string
		want   string
	}{
		{nil, "Relatório de Notícias - 06/02/2026"},
		{[]string{"tecnologia"}, "Relatório de Notícias: tecnologia"},
		{[]string{"tecnologia", "inovação"}, "Relatório de Notícias: tecnologia, inovação"},
	}
	for _, tc := range cases {
		if got := Title(tc.topics, fixedNow); got != tc.want {
			t.Errorf("Title(%v) = %q, want %q", tc.topics, got, tc.want)
		}
	}
}

func TestGenerate(t *testing.T) {
	r, err := testAggregator().Generate([]string{"tecnologia", "inovação"}, sampleArticles())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if r.ID == "" {
		t.Error("expected report ID")
	}
	if !r.GeneratedAt.Equal(fixedNow) {
		t.Errorf("unexpected GeneratedAt %v", r.GeneratedAt)
	}
	if r.TotalArticles != 3 {
		t.Errorf("expected 3 articles, got %d", r.TotalArticles)
	}
	if math.Abs(r.AverageRelevanceScore-0.8) > 1e-9 {
		t.Errorf("expected average 0.8, got %f", r.AverageRelevanceScore)
	}
	if r.CategorySummary["tecnologia"] != 2 || r.CategorySummary["política"] != 1 || len(r.CategorySummary) != 2 {
		t.Errorf("unexpected histogram %v", r.CategorySummary)
	}

	want := "Este relatório apresenta 3 notícias relacionadas aos tópicos: tecnologia, inovação. " +
		"As notícias apresentam alta relevância para os tópicos pesquisados. " +
		"A categoria mais representada é 'tecnologia' com 2 artigos. " +
		closingRemark
	if r.Summary != want {
		t.Errorf("summary =\n%q\nwant\n%q", r.Summary, want)
	}
}

func TestGenerateEmpty(t *testing.T) {
	r, err := testAggregator().Generate([]string{"x"}, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if r.TotalArticles != 0 || r.AverageRelevanceScore != 0 {
		t.Errorf("unexpected totals %d / %f", r.TotalArticles, r.AverageRelevanceScore)
	}
	if r.Summary != noArticles {
		t.Errorf("unexpected summary %q", r.Summary)
	}
	if len(r.CategorySummary) != 0 {
		t.Errorf("expected empty histogram, got %v", r.CategorySummary)
	}
}

func TestRelevanceStatements(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.71, "alta relevância"},
		{0.7, "relevância moderada"},
		{0.51, "relevância moderada"},
		{0.5, "relevância variada"},
		{0.1, "relevância variada"},
	}
	for _, tc := range cases {
		articles := []*news.Article{{Title: "t", Category: "general", RelevanceScore: tc.score}}
		r, err := testAggregator().Generate([]string{"x"}, articles)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !strings.Contains(r.Summary, tc.want) {
			t.Errorf("score %.2f: expected %q in %q", tc.score, tc.want, r.Summary)
		}
	}
}

func TestModeCategoryTieBreak(t *testing.T) {
	for i := 0; i < 20; i++ {
		top, count := modeCategory(map[string]int{"economia": 2, "ciência": 2, "tecnologia": 1, "saúde": 2})
		if top != "ciência" || count != 2 {
			t.Fatalf("expected ciência/2, got %s/%d", top, count)
		}
	}
	if top, _ := modeCategory(map[string]int{}); top != "" {
		t.Errorf("expected empty mode for empty histogram, got %q", top)
	}
}

func TestGenerateRejectsUnprocessedArticles(t *testing.T) {
	g := testAggregator()
	if _, err := g.Generate([]string{"x"}, []*news.Article{{Title: "sem categoria", RelevanceScore: 0.5}}); err == nil {
		t.Error("expected error for missing category")
	}
	if _, err := g.Generate([]string{"x"}, []*news.Article{{Title: "t", Category: "general", RelevanceScore: 1.5}}); err == nil {
		t.Error("expected error for score above 1")
	}
	if _, err := g.Generate([]string{"x"}, []*news.Article{{Title: "t", Category: "general", RelevanceScore: math.NaN()}}); err == nil {
		t.Error("expected error for NaN score")
	}
}

func TestText(t *testing.T) {
	r, _ := testAggregator().Generate([]string{"tecnologia"}, sampleArticles())
	text := Text(r)

	for _, want := range []string{
		strings.Repeat("=", 60) + "\nRelatório de Notícias: tecnologia\n" + strings.Repeat("=", 60) + "\n",
		"Gerado em: 06/02/2026 14:30\n",
		"Tópicos: tecnologia\n",
		"RESUMO EXECUTIVO\n" + strings.Repeat("-", 20) + "\n",
		"Total de artigos: 3\n",
		"Score médio de relevância: 0.80\n",
		"DISTRIBUIÇÃO POR CATEGORIA\n" + strings.Repeat("-", 30) + "\n- política: 1 artigos\n- tecnologia: 2 artigos\n",
		"ARTIGOS ENCONTRADOS\n" + strings.Repeat("-", 25) + "\n",
		"1. IA avança\n   Fonte: G1 | Categoria: tecnologia | Score: 0.90\n   Resumo: Resumo A\n   URL: https://example.com/a\n\n",
		"2. Reforma\n   Fonte: UOL | Categoria: política | Score: 0.80\n\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text report missing %q", want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	r, _ := testAggregator().Generate([]string{"tecnologia", `aspas "duplas"`}, sampleArticles())
	r.Summary = "linha 1\nlinha 2\r\ttab"

	out, err := JSON(r)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if decoded["title"] != r.Title {
		t.Errorf("title = %v", decoded["title"])
	}
	if int(decoded["totalArticles"].(float64)) != r.TotalArticles {
		t.Errorf("totalArticles = %v", decoded["totalArticles"])
	}
	topics := decoded["topics"].([]any)
	if len(topics) != 2 || topics[0] != "tecnologia" || topics[1] != `aspas "duplas"` {
		t.Errorf("topics = %v", topics)
	}
	if decoded["summary"] != r.Summary {
		t.Errorf("summary = %q", decoded["summary"])
	}
	if _, ok := decoded["articles"]; ok {
		t.Error("expected no article list in JSON view")
	}
	if decoded["generatedAt"] != "2026-02-06T14:30:00Z" {
		t.Errorf("generatedAt = %v", decoded["generatedAt"])
	}
}

func TestJSONEmptyTopics(t *testing.T) {
	out, err := JSON(&news.Report{Title: "t"})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(out, `"topics": []`) {
		t.Errorf("expected empty topics array, got %s", out)
	}
}

func TestQuickSummary(t *testing.T) {
	r, _ := testAggregator().Generate([]string{"tecnologia"}, sampleArticles())
	want := "📰 Relatório de Notícias: tecnologia\n📊 3 artigos encontrados\n⭐ Score médio: 0.80\n🏷️ Categorias: política, tecnologia"
	if got := QuickSummary(r); got != want {
		t.Errorf("QuickSummary =\n%s\nwant\n%s", got, want)
	}

	if got := QuickSummary(&news.Report{Title: "t"}); !strings.HasSuffix(got, "Categorias: N/A") {
		t.Errorf("expected N/A categories, got %q", got)
	}
}

func TestMarkdownAndHTML(t *testing.T) {
	r, _ := testAggregator().Generate([]string{"tecnologia"}, sampleArticles())

	mdText := Markdown(r)
	for _, want := range []string{
		"# Relatório de Notícias: tecnologia\n",
		"### 1. [IA avança](https://example.com/a)",
		"### 2. Reforma",
		"| tecnologia | 2 |",
	} {
		if !strings.Contains(mdText, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	html, err := HTML(r)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{
		"<h1>Relatório de Notícias: tecnologia</h1>",
		`<a href="https://example.com/a">IA avança</a>`,
		"<table>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}
