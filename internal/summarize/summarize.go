package summarize

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

// Unavailable replaces the summary of an article that could not be summarized.
const Unavailable = "Resumo não disponível"

// DefaultMaxLength is used when no positive maximum is configured.
const DefaultMaxLength = 200

const (
	titleContextLimit = 50
	titleContextKeep  = 47
	ellipsis          = "..."
)

var errNoTitle = errors.New("article has no title")

var technologyTemplates = []string{
	"Avanços tecnológicos prometem revolucionar o setor com novas funcionalidades e maior eficiência.",
	"Inovação disruptiva traz soluções inteligentes para problemas complexos do mercado atual.",
	"Desenvolvimento de nova tecnologia oferece oportunidades de crescimento e transformação digital.",
	"Implementação de IA e automação acelera processos e melhora experiência do usuário.",
	"Startup brasileira desenvolve solução inovadora com potencial de expansão internacional.",
}

var politicsTemplates = []string{
	"Nova legislação busca modernizar marcos regulatórios e fortalecer instituições democráticas.",
	"Governo anuncia medidas para impulsionar economia e gerar empregos em setores estratégicos.",
	"Reforma estrutural visa simplificar processos e aumentar eficiência do setor público.",
	"Investimentos em infraestrutura prometem melhorar qualidade de vida da população.",
	"Política pública inovadora foca em sustentabilidade e desenvolvimento social.",
}

var genericTemplates = []string{
	"Desenvolvimento importante no setor traz novas perspectivas para o mercado brasileiro.",
	"Análise especializada revela tendências significativas e oportunidades de crescimento.",
	"Estudo detalhado apresenta dados relevantes sobre impactos econômicos e sociais.",
	"Especialistas destacam importância do tema para o desenvolvimento nacional.",
	"Pesquisa recente mostra evolução positiva em indicadores-chave do setor.",
}

// Result holds the results of a summarization run.
type Result struct {
	Summarized int
	Failed     int
}

// Summarizer writes short template summaries. It simulates a language model
// and is safe for concurrent use.
type Summarizer struct {
	maxLength int

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a summarizer. A non-positive maxLength falls back to
// DefaultMaxLength; a zero seed uses the clock.
func New(maxLength int, seed int64) *Summarizer {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Summarizer{
		maxLength: maxLength,
		rng:       rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x5deece66d)),
	}
}

// Summarize fills the summary of every article in place.
func (s *Summarizer) Summarize(articles []*news.Article) *Result {
	log.WithField("count", len(articles)).Info("Summarizing articles")

	r := &Result{}
	for _, a := range articles {
		summary, err := s.safeSummary(a)
		if err != nil {
			log.WithError(err).WithField("title", a.Title).Warn("Summary failed")
			a.Summary = Unavailable
			r.Failed++
			continue
		}
		a.Summary = summary
		r.Summarized++
	}

	log.WithFields(log.Fields{"summarized": r.Summarized, "failed": r.Failed}).Info("Summaries complete")
	return r
}

func (s *Summarizer) safeSummary(a *news.Article) (summary string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return s.Summary(a)
}

// Summary picks a template for the article's current category and truncates
// the result to the configured maximum length.
func (s *Summarizer) Summary(a *news.Article) (string, error) {
	if a == nil || a.Title == "" {
		return "", errNoTitle
	}

	summary := s.pick(templatesFor(a.Category))
	if title := []rune(a.Title); len(title) > titleContextLimit {
		summary = "Sobre '" + string(title[:titleContextKeep]) + ellipsis + "': " + summary
	}
	return truncate(summary, s.maxLength), nil
}

// CustomSummary adapts the summary to free-form instructions. Instructions
// mentioning "técnico" or "simples" add a matching prefix.
func (s *Summarizer) CustomSummary(a *news.Article, instructions string) (string, error) {
	summary, err := s.Summary(a)
	if err != nil {
		return "", err
	}

	lower := strings.ToLower(instructions)
	switch {
	case strings.Contains(lower, "técnico"):
		summary = "Análise técnica: " + summary
	case strings.Contains(lower, "simples"):
		summary = "Em termos simples: " + summary
	}
	return summary, nil
}

func (s *Summarizer) pick(pool []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pool[s.rng.IntN(len(pool))]
}

func templatesFor(category string) []string {
	switch {
	case strings.EqualFold(category, news.CategoryTechnology):
		return technologyTemplates
	case strings.EqualFold(category, news.CategoryPolitics):
		return politicsTemplates
	default:
		return genericTemplates
	}
}

// truncate cuts s to limit runes, reserving the tail for an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= len(ellipsis) {
		return string(runes[:limit])
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}
