package domain

import (
	"context"
	"time"
)

// Article is a single news item, either collected from a feed or loaded from disk.
type Article struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Link        string    `json:"link,omitempty"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source,omitempty"`
	Published   time.Time `json:"published,omitempty"`
	Content     string    `json:"content"`
}

// Keyword is a ranked term with its weighted frequency.
type Keyword struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Digest is the summarized form of an article.
type Digest struct {
	ID        string    `json:"id"`
	Article   Article   `json:"article"`
	Summary   string    `json:"summary"`
	Keywords  []Keyword `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
	// Incomplete marks a digest built without the article body; its link
	// is retried on the next collect.
	Incomplete bool `json:"incomplete,omitempty"`
}

// SearchResult represents a matching digest with a relevance score.
type SearchResult struct {
	Digest Digest  `json:"digest"`
	Score  float64 `json:"score"`
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// VectorStore keeps digest vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(digests []Digest, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Clear() error
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// KeywordRanker returns the most salient terms of the provided text.
type KeywordRanker interface {
	Rank(text string, topK int) ([]Keyword, error)
}

// FeedSource lists articles published by the configured feeds.
type FeedSource interface {
	Fetch(ctx context.Context) ([]Article, error)
}

// Scraper downloads an article page and returns its body text.
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// Archive persists digests and remembers which links were already processed.
type Archive interface {
	Save(digests []Digest) error
	Seen(link string) (bool, error)
	Recent(limit int) ([]Digest, error)
}

// DigestService defines the operations exposed by the application core.
type DigestService interface {
	Collect(ctx context.Context, keywords []string) ([]Digest, error)
	IngestFiles(ctx context.Context, paths []string) ([]Digest, error)
	DigestArticles(ctx context.Context, articles []Article) ([]Digest, error)
	Query(query string, topK int) ([]SearchResult, error)
	Recent(limit int) ([]Digest, error)
}
