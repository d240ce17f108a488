package main

import (
	"fmt"
	"strings"

	"github.com/TobiSchelling/NewsCurator/internal/news"
	"github.com/TobiSchelling/NewsCurator/internal/pipeline"
	"github.com/TobiSchelling/NewsCurator/internal/report"
)

// renderReport renders a report in one of the --format values.
func renderReport(rep *news.Report, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return report.Text(rep), nil
	case "summary":
		return rep.Summary, nil
	case "json":
		return report.JSON(rep)
	case "quick":
		return report.QuickSummary(rep), nil
	case "markdown", "md":
		return report.Markdown(rep), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, summary, json, quick or markdown)", format)
	}
}

// topicsFromArgs accepts topics as separate arguments, comma-separated, or both.
func topicsFromArgs(args []string) []string {
	return pipeline.ParseTopics(strings.Join(args, ","))
}

func joinTopics(topics []string) string {
	return strings.Join(topics, ", ")
}
