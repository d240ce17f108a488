package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

// Store is the byte cache used by Cached.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cached memoizes search results of another source. Hits are decoded into
// fresh articles, so callers may mutate what they get back.
type Cached struct {
	next  Source
	store Store
	ttl   time.Duration
}

// NewCached wraps next with a result cache.
func NewCached(next Source, store Store, ttl time.Duration) *Cached {
	return &Cached{next: next, store: store, ttl: ttl}
}

func cacheKey(topic string, maxResults int) string {
	return fmt.Sprintf("search:%s:%d", strings.ToLower(strings.TrimSpace(topic)), maxResults)
}

func (c *Cached) Search(ctx context.Context, topic string, maxResults int) []*news.Article {
	key := cacheKey(topic, maxResults)

	if data, err := c.store.Get(ctx, key); err == nil {
		if articles, ok := decodeArticles(data); ok {
			log.WithFields(log.Fields{"topic": topic, "count": len(articles)}).Debug("Search cache hit")
			return articles
		}
		log.WithField("key", key).Warn("Discarding undecodable cache entry")
	}

	articles := c.next.Search(ctx, topic, maxResults)
	if len(articles) == 0 {
		return articles
	}

	data, err := json.Marshal(articles)
	if err != nil {
		log.WithError(err).Warn("Failed to encode search results for cache")
		return articles
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		log.WithError(err).WithField("key", key).Warn("Failed to store search results")
	}
	return articles
}

// decodeArticles rejects entries that are not a list of articles, including
// lists with null elements.
func decodeArticles(data []byte) ([]*news.Article, bool) {
	var articles []*news.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, false
	}
	for _, a := range articles {
		if a == nil {
			return nil, false
		}
	}
	if articles == nil {
		articles = []*news.Article{}
	}
	return articles, true
}
