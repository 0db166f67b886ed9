package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"newsdigest/internal/config"
)

const (
	minBodyRunes      = 50
	minParagraphRunes = 20
)

// ErrNoContent is returned when no selector yields usable body text.
var ErrNoContent = errors.New("scraper: no article body found")

// publisherSelectors maps a host suffix to the body selectors tried first for
// that publisher.
var publisherSelectors = []struct {
	hosts     []string
	selectors []string
}{
	{[]string{"mk.co.kr"}, []string{".news_cnt_detail_wrap", ".art_txt", ".article_body", ".news_content"}},
	{[]string{"yna.co.kr", "yonhapnewstv.co.kr"}, []string{".story-news p", ".article-text", ".story-body", ".news-content p"}},
	{[]string{"sbs.co.kr"}, []string{".text_area", ".article_content", ".news_content", ".article-body p"}},
	{[]string{"jtbc.co.kr"}, []string{".article_content", ".news_content", ".article-body", ".content_text", ".article_txt"}},
}

var genericSelectors = []string{
	`div[class*="content"]`,
	`div[class*="article"]`,
	".content",
	".article",
	"article",
}

// Scraper downloads article pages and extracts their body text.
type Scraper struct {
	client    *http.Client
	userAgent string
	maxRunes  int
}

func New(cfg config.FeedsConfig) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		userAgent: cfg.UserAgent,
		maxRunes:  cfg.MaxContentChars,
	}
}

// Scrape fetches rawURL and returns its body text, truncated to the
// configured rune cap.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("scraper: build request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("scraper: fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scraper: fetch %s: status %s", rawURL, resp.Status)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("scraper: parse %s: %w", rawURL, err)
	}
	body := Extract(doc, SelectorsFor(rawURL))
	if body == "" {
		return "", ErrNoContent
	}
	return truncateRunes(body, s.maxRunes), nil
}

// SelectorsFor returns the selector chain for an article URL: publisher
// selectors when the host is known, then the generic ones.
func SelectorsFor(rawURL string) []string {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Hostname()
	}
	var out []string
	for _, p := range publisherSelectors {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				out = append(out, p.selectors...)
				break
			}
		}
		if len(out) > 0 {
			break
		}
	}
	return append(out, genericSelectors...)
}

// Extract walks the selector chain and returns the first match with enough
// text. When none qualifies it joins every paragraph longer than 20 runes.
func Extract(doc *goquery.Document, selectors []string) string {
	doc.Find("script, style, noscript").Remove()

	for _, sel := range selectors {
		found := doc.Find(sel)
		if found.Length() == 0 {
			continue
		}
		var parts []string
		found.Each(func(_ int, s *goquery.Selection) {
			if t := cleanText(s.Text()); t != "" {
				parts = append(parts, t)
			}
		})
		if content := strings.Join(parts, " "); utf8.RuneCountInString(content) > minBodyRunes {
			return content
		}
	}

	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := cleanText(s.Text()); utf8.RuneCountInString(t) > minParagraphRunes {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
