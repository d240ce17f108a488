package search

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

const (
	minResults  = 5
	extraSpread = 6
)

// Source produces candidate articles for a topic. Implementations never fail:
// internal errors are logged and yield an empty slice.
type Source interface {
	Search(ctx context.Context, topic string, maxResults int) []*news.Article
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context, topic string, maxResults int) []*news.Article

func (f SourceFunc) Search(ctx context.Context, topic string, maxResults int) []*news.Article {
	return f(ctx, topic, maxResults)
}

// Simulated generates between 5 and 10 articles per call from fixed title
// pools. It stands in for a real news search API.
type Simulated struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSimulated creates a simulated source. A zero seed uses the clock.
func NewSimulated(seed int64) *Simulated {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulated{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed>>1)|1)),
		now: time.Now,
	}
}

// WithClock overrides the clock used for PublishedAt.
func (s *Simulated) WithClock(now func() time.Time) *Simulated {
	s.now = now
	return s
}

// Search returns min(maxResults, 5+rand[0,6)) articles for the topic.
func (s *Simulated) Search(ctx context.Context, topic string, maxResults int) (articles []*news.Article) {
	log.WithField("topic", topic).Info("Searching news")

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{"topic": topic, "panic": r}).Error("Search failed")
			articles = []*news.Article{}
		}
	}()

	articles, err := s.simulate(ctx, topic, maxResults)
	if err != nil {
		log.WithError(err).WithField("topic", topic).Error("Search failed")
		return []*news.Article{}
	}

	log.WithFields(log.Fields{"topic": topic, "count": len(articles)}).Info("Search complete")
	return articles
}

func (s *Simulated) simulate(ctx context.Context, topic string, maxResults int) ([]*news.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("empty topic")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count := min(maxResults, minResults+s.rng.IntN(extraSpread))
	if count < 0 {
		count = 0
	}

	b := bucketFor(topic)
	articles := make([]*news.Article, 0, count)
	for i := 0; i < count; i++ {
		title := b.titles[s.rng.IntN(len(b.titles))]
		articles = append(articles, &news.Article{
			Title:          title,
			URL:            fmt.Sprintf("https://example-news.com/article-%d", i+1),
			Source:         publishers[s.rng.IntN(len(publishers))],
			PublishedAt:    s.now(),
			RelevanceScore: RelevanceScore(topic, title, s.jitter()),
			Keywords:       Keywords(topic),
		})
	}
	return articles, nil
}

// jitter is uniform in [-MaxJitter, MaxJitter). Caller holds s.mu.
func (s *Simulated) jitter() float64 {
	return (s.rng.Float64() - 0.5) * 2 * MaxJitter
}

// Multi concatenates the results of several sources in order.
type Multi []Source

func (m Multi) Search(ctx context.Context, topic string, maxResults int) []*news.Article {
	var all []*news.Article
	for _, src := range m {
		all = append(all, src.Search(ctx, topic, maxResults)...)
	}
	if all == nil {
		return []*news.Article{}
	}
	return all
}
