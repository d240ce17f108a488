package search

import (
	"context"
	"math/rand/v2"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/TobiSchelling/NewsCurator/internal/news"
)

const maxPerFeed = 20

// FeedConfig is a local RSS/Atom file.
type FeedConfig struct {
	Name string
	Path string
}

// FeedSource searches items of local RSS/Atom files. It never touches the
// network: feeds are read from disk on every search.
type FeedSource struct {
	feeds []FeedConfig

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewFeedSource creates a feed source. A zero seed uses the clock.
func NewFeedSource(feeds []FeedConfig, seed int64) *FeedSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &FeedSource{
		feeds: feeds,
		rng:   rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15)),
		now:   time.Now,
	}
}

// Search returns feed items mentioning topic in their title or readable text.
func (fs *FeedSource) Search(ctx context.Context, topic string, maxResults int) []*news.Article {
	articles := []*news.Article{}
	if maxResults <= 0 {
		return articles
	}

	parser := gofeed.NewParser()
	lowerTopic := strings.ToLower(topic)

	for _, fc := range fs.feeds {
		if ctx.Err() != nil {
			break
		}
		entries, err := fs.parseFeed(parser, fc)
		if err != nil {
			log.WithError(err).WithField("feed", fc.Path).Warn("Failed to parse feed")
			continue
		}

		matched := 0
		for _, e := range entries {
			if !strings.Contains(strings.ToLower(e.title), lowerTopic) &&
				!strings.Contains(strings.ToLower(e.text), lowerTopic) {
				continue
			}
			articles = append(articles, fs.toArticle(topic, e))
			matched++
			if len(articles) >= maxResults {
				break
			}
		}
		log.WithFields(log.Fields{"feed": fc.Path, "topic": topic, "matched": matched}).Debug("Searched feed")

		if len(articles) >= maxResults {
			break
		}
	}

	return articles
}

type feedEntry struct {
	title       string
	url         string
	text        string
	source      string
	publishedAt time.Time
}

func (fs *FeedSource) parseFeed(parser *gofeed.Parser, fc FeedConfig) ([]feedEntry, error) {
	f, err := os.Open(fc.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	feed, err := parser.Parse(f)
	if err != nil {
		return nil, err
	}

	source := fc.Name
	if source == "" {
		source = strings.TrimSpace(feed.Title)
	}
	if source == "" {
		source = "Feed"
	}

	var entries []feedEntry
	for _, item := range feed.Items {
		if len(entries) >= maxPerFeed {
			break
		}
		if e, ok := fs.parseItem(item, source); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (fs *FeedSource) parseItem(item *gofeed.Item, source string) (feedEntry, bool) {
	link := item.Link
	if link == "" {
		link = item.GUID
	}
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return feedEntry{}, false
	}

	publishedAt := fs.now()
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		publishedAt = *item.UpdatedParsed
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}

	return feedEntry{
		title:       title,
		url:         link,
		text:        readableText(body, link),
		source:      source,
		publishedAt: publishedAt,
	}, true
}

func (fs *FeedSource) toArticle(topic string, e feedEntry) *news.Article {
	fs.mu.Lock()
	jitter := (fs.rng.Float64() - 0.5) * 2 * MaxJitter
	fs.mu.Unlock()

	return &news.Article{
		Title:          e.title,
		URL:            e.url,
		Source:         e.source,
		PublishedAt:    e.publishedAt,
		RelevanceScore: RelevanceScore(topic, e.title, jitter),
		Keywords:       Keywords(topic),
	}
}

// readableText extracts plain text from an item's HTML body. Readability
// needs a page-sized document, so short fragments fall back to tag stripping.
func readableText(body, link string) string {
	if body == "" {
		return ""
	}
	pageURL, err := url.Parse(link)
	if err != nil || pageURL == nil {
		pageURL = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(body), pageURL)
	if err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return strings.Join(strings.Fields(text), " ")
		}
	}
	return stripHTML(body)
}

// stripHTML returns the text nodes of an HTML fragment with entities decoded
// and whitespace collapsed.
func stripHTML(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var parts []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
		case html.TextToken:
			parts = append(parts, string(z.Text()))
		}
	}
}
