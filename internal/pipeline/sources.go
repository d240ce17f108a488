package pipeline

import (
	log "github.com/sirupsen/logrus"

	"github.com/TobiSchelling/NewsCurator/internal/cache"
	"github.com/TobiSchelling/NewsCurator/internal/config"
	"github.com/TobiSchelling/NewsCurator/internal/search"
)

// NewSource builds the article source described by cfg: the simulated
// search, local feeds, and an optional result cache in front of both. The
// returned close function releases the cache backend.
func NewSource(cfg *config.Config) (search.Source, func() error) {
	var sources search.Multi
	if cfg.Sources.Simulated {
		sources = append(sources, search.NewSimulated(cfg.Curator.Seed))
	}
	if len(cfg.Sources.Feeds) > 0 {
		feeds := make([]search.FeedConfig, 0, len(cfg.Sources.Feeds))
		for _, f := range cfg.Sources.Feeds {
			feeds = append(feeds, search.FeedConfig{Name: f.Name, Path: f.Path})
		}
		sources = append(sources, search.NewFeedSource(feeds, cfg.Curator.Seed))
	}
	if len(sources) == 0 {
		log.Warn("No article sources configured, falling back to simulated search")
		sources = append(sources, search.NewSimulated(cfg.Curator.Seed))
	}

	var src search.Source = sources
	if len(sources) == 1 {
		src = sources[0]
	}

	noop := func() error { return nil }
	if !cfg.Cache.Enabled {
		return src, noop
	}

	store, err := cache.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Search cache unavailable, continuing without it")
		return src, noop
	}
	log.WithField("backend", cfg.Cache.Backend).Debug("Search cache enabled")
	return search.NewCached(src, store, cfg.CacheTTL()), store.Close
}
