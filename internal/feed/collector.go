package feed

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"

	"newsdigest/internal/config"
	"newsdigest/internal/domain"
)

// Collector pulls articles from a fixed list of RSS/Atom feeds.
type Collector struct {
	sources []config.FeedSource
	parser  *gofeed.Parser
	logger  *logrus.Logger
}

// NewCollector builds a collector for the configured sources.
func NewCollector(cfg config.FeedsConfig, logger *logrus.Logger) *Collector {
	fp := gofeed.NewParser()
	fp.UserAgent = cfg.UserAgent
	fp.Client = &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second}
	if logger == nil {
		logger = logrus.New()
	}
	return &Collector{sources: cfg.Sources, parser: fp, logger: logger}
}

// Fetch reads every source in order. A failing feed is logged and skipped.
// Articles are deduplicated by link, first occurrence wins.
func (c *Collector) Fetch(ctx context.Context) ([]domain.Article, error) {
	seen := make(map[string]struct{})
	var out []domain.Article
	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		feed, err := c.parser.ParseURLWithContext(src.URL, ctx)
		if err != nil {
			c.logger.WithFields(logrus.Fields{"source": src.Name, "url": src.URL}).WithError(err).Warn("feed fetch failed")
			continue
		}
		added := 0
		for _, item := range feed.Items {
			if item == nil || item.Link == "" {
				continue
			}
			if _, ok := seen[item.Link]; ok {
				continue
			}
			seen[item.Link] = struct{}{}
			out = append(out, toArticle(src.Name, item))
			added++
		}
		c.logger.WithFields(logrus.Fields{"source": src.Name, "items": added}).Debug("feed fetched")
	}
	return out, nil
}

// FilterByKeywords keeps articles whose title or description contains any of
// the keywords, case-insensitively. No keywords keeps everything.
func FilterByKeywords(articles []domain.Article, keywords []string) []domain.Article {
	var kws []string
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kws = append(kws, k)
		}
	}
	if len(kws) == 0 {
		return articles
	}
	var out []domain.Article
	for _, a := range articles {
		title := strings.ToLower(a.Title)
		desc := strings.ToLower(a.Description)
		for _, k := range kws {
			if strings.Contains(title, k) || strings.Contains(desc, k) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func toArticle(source string, item *gofeed.Item) domain.Article {
	a := domain.Article{
		Title:       strings.TrimSpace(item.Title),
		Link:        item.Link,
		Description: plainText(item.Description),
		Source:      source,
	}
	switch {
	case item.PublishedParsed != nil:
		a.Published = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		a.Published = *item.UpdatedParsed
	}
	return a
}

// plainText strips markup some feeds embed in descriptions.
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
