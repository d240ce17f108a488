package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Text renders the full multi-section plain-text report.
func Text(r *news.Report) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString(r.Title + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Gerado em: %s\n", r.GeneratedAt.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Tópicos: %s\n\n", strings.Join(r.Topics, ", "))

	section(&b, "RESUMO EXECUTIVO", 20)
	b.WriteString(r.Summary + "\n\n")

	section(&b, "ESTATÍSTICAS", 20)
	fmt.Fprintf(&b, "Total de artigos: %d\n", r.TotalArticles)
	fmt.Fprintf(&b, "Score médio de relevância: %.2f\n\n", r.AverageRelevanceScore)

	section(&b, "DISTRIBUIÇÃO POR CATEGORIA", 30)
	for _, label := range sortedCategories(r.CategorySummary) {
		fmt.Fprintf(&b, "- %s: %d artigos\n", label, r.CategorySummary[label])
	}
	b.WriteString("\n")

	section(&b, "ARTIGOS ENCONTRADOS", 25)
	for i, a := range r.Articles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, a.Title)
		fmt.Fprintf(&b, "   Fonte: %s | Categoria: %s | Score: %.2f\n", a.Source, a.Category, a.RelevanceScore)
		if a.Summary != "" {
			fmt.Fprintf(&b, "   Resumo: %s\n", a.Summary)
		}
		if a.URL != "" {
			fmt.Fprintf(&b, "   URL: %s\n", a.URL)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func section(b *strings.Builder, name string, width int) {
	b.WriteString(name + "\n")
	b.WriteString(strings.Repeat("-", width) + "\n")
}

type jsonView struct {
	Title                 string   `json:"title"`
	GeneratedAt           string   `json:"generatedAt"`
	Topics                []string `json:"topics"`
	TotalArticles         int      `json:"totalArticles"`
	AverageRelevanceScore float64  `json:"averageRelevanceScore"`
	Summary               string   `json:"summary"`
}

// JSON renders the report header as indented JSON. The article list is not
// part of this view.
func JSON(r *news.Report) (string, error) {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	v := jsonView{
		Title:                 r.Title,
		GeneratedAt:           r.GeneratedAt.Format(time.RFC3339),
		Topics:                topics,
		TotalArticles:         r.TotalArticles,
		AverageRelevanceScore: r.AverageRelevanceScore,
		Summary:               r.Summary,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode report json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// QuickSummary renders a four-line digest of the report.
func QuickSummary(r *news.Report) string {
	categories := "N/A"
	if r.CategorySummary != nil {
		categories = strings.Join(sortedCategories(r.CategorySummary), ", ")
	}
	return fmt.Sprintf("📰 %s\n📊 %d artigos encontrados\n⭐ Score médio: %.2f\n🏷️ Categorias: %s",
		r.Title, r.TotalArticles, r.AverageRelevanceScore, categories)
}

// Markdown renders the report as a markdown document.
func Markdown(r *news.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "*Gerado em %s*\n\n", r.GeneratedAt.Format("02/01/2006 15:04"))
	if len(r.Topics) > 0 {
		fmt.Fprintf(&b, "**Tópicos:** %s\n\n", strings.Join(r.Topics, ", "))
	}

	b.WriteString("## Resumo executivo\n\n")
	b.WriteString(r.Summary + "\n\n")

	b.WriteString("## Estatísticas\n\n")
	fmt.Fprintf(&b, "- Total de artigos: %d\n", r.TotalArticles)
	fmt.Fprintf(&b, "- Score médio de relevância: %.2f\n\n", r.AverageRelevanceScore)

	if len(r.CategorySummary) > 0 {
		b.WriteString("## Distribuição por categoria\n\n")
		b.WriteString("| Categoria | Artigos |\n|---|---|\n")
		for _, label := range sortedCategories(r.CategorySummary) {
			fmt.Fprintf(&b, "| %s | %d |\n", label, r.CategorySummary[label])
		}
		b.WriteString("\n")
	}

	if len(r.Articles) > 0 {
		b.WriteString("## Artigos\n\n")
	}
	for i, a := range r.Articles {
		if a.URL != "" {
			fmt.Fprintf(&b, "### %d. [%s](%s)\n\n", i+1, a.Title, a.URL)
		} else {
			fmt.Fprintf(&b, "### %d. %s\n\n", i+1, a.Title)
		}
		fmt.Fprintf(&b, "*%s* · %s · score %.2f", a.Source, a.Category, a.RelevanceScore)
		if a.Sentiment != "" {
			fmt.Fprintf(&b, " · %s", a.Sentiment)
		}
		b.WriteString("\n\n")
		if a.Summary != "" {
			b.WriteString(a.Summary + "\n\n")
		}
	}

	return b.String()
}

// HTML renders the markdown view to an HTML fragment.
func HTML(r *news.Report) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(r)), &buf); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}
