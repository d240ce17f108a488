package pipeline

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/TobiSchelling/NewsCurator/internal/categorize"
	"github.com/TobiSchelling/NewsCurator/internal/config"
	"github.com/TobiSchelling/NewsCurator/internal/news"
	"github.com/TobiSchelling/NewsCurator/internal/report"
	"github.com/TobiSchelling/NewsCurator/internal/search"
	"github.com/TobiSchelling/NewsCurator/internal/summarize"
)

// activeTools is the number of stages backed by a tool: search, categorize,
// summarize and report.
const activeTools = 4

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	Report *news.Report
	Steps  []StepResult
}

// Options are the per-call parameters of a run. They are never written back
// to the shared configuration.
type Options struct {
	// MaxResults bounds both the per-topic search and the ranked report.
	MaxResults int
	// MinScore, when positive, drops articles below it after the report is built.
	MinScore float64
	// Category restricts searches to one category label.
	Category string
	// AnalyzeSentiment tags every article with a sentiment.
	AnalyzeSentiment bool
}

// Pipeline orchestrates the search, categorize, summarize, rank and report
// stages. It is safe for concurrent use.
type Pipeline struct {
	cfg         *config.Config
	source      search.Source
	categorizer *categorize.Categorizer
	summarizer  *summarize.Summarizer
	aggregator  *report.Aggregator
}

// New creates a pipeline reading articles from source.
func New(cfg *config.Config, source search.Source) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		source:      source,
		categorizer: categorize.New(),
		summarizer:  summarize.New(cfg.Curator.MaxSummaryLength, cfg.Curator.Seed),
		aggregator:  report.New(),
	}
}

// WithAggregator replaces the report aggregator.
func (p *Pipeline) WithAggregator(g *report.Aggregator) *Pipeline {
	p.aggregator = g
	return p
}

// Summarizer returns the summarizer used by the pipeline.
func (p *Pipeline) Summarizer() *summarize.Summarizer {
	return p.summarizer
}

// Curate builds a report for a single topic.
func (p *Pipeline) Curate(ctx context.Context, topic string) (*news.Report, error) {
	return p.CurateTopics(ctx, []string{topic})
}

// CurateTopics builds a report for topics using the configured max results.
func (p *Pipeline) CurateTopics(ctx context.Context, topics []string) (*news.Report, error) {
	res, err := p.Run(ctx, topics, Options{MaxResults: p.cfg.Curator.MaxSearchResults})
	if err != nil {
		return nil, err
	}
	return res.Report, nil
}

// CurateBounded builds a report limited to maxArticles, then drops articles
// scoring below minScore.
func (p *Pipeline) CurateBounded(ctx context.Context, topics []string, maxArticles int, minScore float64) (*news.Report, error) {
	res, err := p.Run(ctx, topics, Options{MaxResults: maxArticles, MinScore: minScore})
	if err != nil {
		return nil, err
	}
	return res.Report, nil
}

// Run executes every stage for topics. Topics are searched sequentially and
// their results concatenated in order.
func (p *Pipeline) Run(ctx context.Context, topics []string, opts Options) (res *Result, err error) {
	log.WithFields(log.Fields{"topics": topics, "max": opts.MaxResults, "min_score": opts.MinScore}).Info("Starting curation")

	res = &Result{}
	step := "setup"
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, &CurationError{Step: step, Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			log.WithError(err).Error("Curation failed")
		}
	}()

	step = "search"
	articles, sr := p.runSearch(ctx, topics, opts)
	res.Steps = append(res.Steps, sr)
	if sr.Err != nil {
		return nil, &CurationError{Step: step, Err: sr.Err}
	}

	step = "categorize"
	res.Steps = append(res.Steps, p.runCategorize(articles))

	step = "summarize"
	res.Steps = append(res.Steps, p.runSummarize(articles, opts.AnalyzeSentiment))

	step = "rank"
	log.Info("Step 4/5: Ranking articles...")
	ranked := Rank(articles, opts.MaxResults)
	res.Steps = append(res.Steps, StepResult{
		Name:    "Rank",
		Summary: fmt.Sprintf("Kept %d of %d articles", len(ranked), len(articles)),
	})

	step = "report"
	log.Info("Step 5/5: Generating report...")
	rep, genErr := p.aggregator.Generate(topics, ranked)
	if genErr != nil {
		res.Steps = append(res.Steps, StepResult{Name: "Report", Err: genErr})
		return nil, &CurationError{Step: step, Err: genErr}
	}

	if opts.MinScore > 0 {
		before := rep.TotalArticles
		rep.SetArticles(FilterMinScore(rep.Articles, opts.MinScore))
		log.WithFields(log.Fields{"min_score": opts.MinScore, "before": before, "after": rep.TotalArticles}).Info("Applied minimum score")
	}
	res.Steps = append(res.Steps, StepResult{
		Name:    "Report",
		Summary: fmt.Sprintf("%s: %d articles, average score %.2f", rep.Title, rep.TotalArticles, rep.AverageRelevanceScore),
	})

	res.Report = rep
	log.WithField("articles", rep.TotalArticles).Info("Curation complete")
	return res, nil
}

func (p *Pipeline) runSearch(ctx context.Context, topics []string, opts Options) ([]*news.Article, StepResult) {
	log.Info("Step 1/5: Searching articles...")

	var filter *search.CategoryFilter
	if opts.Category != "" {
		filter = &search.CategoryFilter{Source: p.source, Classifier: p.categorizer, Limit: opts.MaxResults}
	}

	articles := []*news.Article{}
	for _, topic := range topics {
		if err := ctx.Err(); err != nil {
			return nil, StepResult{Name: "Search", Err: err}
		}
		var found []*news.Article
		if filter != nil {
			found = filter.Search(ctx, topic, opts.Category, opts.MaxResults)
		} else {
			found = p.source.Search(ctx, topic, opts.MaxResults)
		}
		articles = append(articles, found...)
	}

	return articles, StepResult{
		Name:    "Search",
		Summary: fmt.Sprintf("Found %d articles for %d topics", len(articles), len(topics)),
	}
}

func (p *Pipeline) runCategorize(articles []*news.Article) StepResult {
	log.Info("Step 2/5: Categorizing articles...")
	result := p.categorizer.Categorize(articles)
	return StepResult{
		Name:    "Categorize",
		Summary: fmt.Sprintf("Categorized %d articles, %d degraded", result.Processed, result.Degraded),
	}
}

func (p *Pipeline) runSummarize(articles []*news.Article, sentiment bool) StepResult {
	log.Info("Step 3/5: Summarizing articles...")
	result := p.summarizer.Summarize(articles)
	if sentiment {
		for _, a := range articles {
			a.Sentiment = summarize.AnalyzeSentiment(a)
		}
	}
	return StepResult{
		Name:    "Summarize",
		Summary: fmt.Sprintf("Summarized %d articles, %d failed", result.Summarized, result.Failed),
	}
}

// StatsSummary describes the pipeline's capabilities and limits.
func (p *Pipeline) StatsSummary() string {
	return fmt.Sprintf(
		"NewsCurator Stats:\n"+
			"- Ferramentas ativas: %d\n"+
			"- Categorias suportadas: %s\n"+
			"- Máximo de resultados: %d\n"+
			"- Idioma: %s",
		activeTools,
		strings.Join(p.cfg.Curator.Categories, ", "),
		p.cfg.Curator.MaxSearchResults,
		p.cfg.Curator.SearchLanguage,
	)
}
