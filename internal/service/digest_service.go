package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"newsdigest/internal/domain"
	"newsdigest/internal/feed"
	"newsdigest/internal/importer"
	"newsdigest/internal/summarizer"
)

// ScrapeFailedContent stands in for an article body that could not be fetched.
const ScrapeFailedContent = "본문을 가져올 수 없습니다."

// Options holds the sizes the service passes to the engine.
type Options struct {
	MaxSentences    int
	TopK            int
	Workers         int
	MaxContentChars int
}

// DigestServiceImpl runs articles through the summarizer and keyword ranker,
// archives the results and keeps them searchable.
type DigestServiceImpl struct {
	feeds      domain.FeedSource
	scraper    domain.Scraper
	summarizer domain.Summarizer
	ranker     domain.KeywordRanker
	archive    domain.Archive
	embedder   domain.Embedder
	store      domain.VectorStore
	opts       Options
	logger     *logrus.Logger
	now        func() time.Time

	mu      sync.RWMutex
	digests []domain.Digest
	// indexMu serializes index rebuilds against queries.
	indexMu sync.RWMutex
}

// Deps groups the collaborators. Feeds, Scraper and Archive may be nil.
type Deps struct {
	Feeds      domain.FeedSource
	Scraper    domain.Scraper
	Summarizer domain.Summarizer
	Ranker     domain.KeywordRanker
	Archive    domain.Archive
	Embedder   domain.Embedder
	Store      domain.VectorStore
	Logger     *logrus.Logger
}

func NewDigestService(deps Deps, opts Options) *DigestServiceImpl {
	if opts.MaxSentences <= 0 {
		opts.MaxSentences = 3
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	logger := deps.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &DigestServiceImpl{
		feeds:      deps.Feeds,
		scraper:    deps.Scraper,
		summarizer: deps.Summarizer,
		ranker:     deps.Ranker,
		archive:    deps.Archive,
		embedder:   deps.Embedder,
		store:      deps.Store,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// Collect fetches the configured feeds, keeps articles matching keywords that
// were not archived before, and digests them.
func (s *DigestServiceImpl) Collect(ctx context.Context, keywords []string) ([]domain.Digest, error) {
	if s.feeds == nil {
		return nil, errors.New("no feed source configured")
	}
	articles, err := s.feeds.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	matched := feed.FilterByKeywords(articles, keywords)
	fresh := matched[:0:0]
	for _, a := range matched {
		if s.archive != nil {
			seen, err := s.archive.Seen(a.Link)
			if err != nil {
				return nil, fmt.Errorf("collect: archive lookup: %w", err)
			}
			if seen {
				continue
			}
		}
		fresh = append(fresh, a)
	}
	s.logger.WithFields(logrus.Fields{
		"fetched": len(articles),
		"matched": len(matched),
		"new":     len(fresh),
	}).Info("feeds collected")
	return s.DigestArticles(ctx, fresh)
}

// IngestFiles digests articles loaded from .txt and .json files.
func (s *DigestServiceImpl) IngestFiles(ctx context.Context, paths []string) ([]domain.Digest, error) {
	articles, err := importer.LoadPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("no .txt or .json articles found")
	}
	return s.DigestArticles(ctx, articles)
}

// DigestArticles summarizes and ranks articles concurrently. The result keeps
// input order. Digests are archived and added to the search index.
func (s *DigestServiceImpl) DigestArticles(ctx context.Context, articles []domain.Article) ([]domain.Digest, error) {
	if len(articles) == 0 {
		return nil, nil
	}
	out := make([]domain.Digest, len(articles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i := range articles {
		i := i
		a := articles[i]
		g.Go(func() error {
			d, err := s.digest(gctx, a)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.archive != nil {
		if err := s.archive.Save(out); err != nil {
			return nil, fmt.Errorf("archive: %w", err)
		}
	}
	s.mu.Lock()
	s.digests = append(s.digests, out...)
	s.mu.Unlock()
	if err := s.reindex(); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	return out, nil
}

func (s *DigestServiceImpl) digest(ctx context.Context, a domain.Article) (domain.Digest, error) {
	if err := ctx.Err(); err != nil {
		return domain.Digest{}, err
	}
	if strings.TrimSpace(a.Content) == "" {
		a.Content = s.fetchContent(ctx, a)
	}
	a.Content = truncateRunes(a.Content, s.opts.MaxContentChars)
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	// Scraped bodies carry bylines and credits; both stages see the cleaned text.
	text := summarizer.Normalize(a.Content)
	summary, err := s.summarizer.Summarize(text, s.opts.MaxSentences)
	if err != nil {
		return domain.Digest{}, fmt.Errorf("summarize %q: %w", a.Title, err)
	}
	keywords, err := s.ranker.Rank(text, s.opts.TopK)
	if err != nil {
		return domain.Digest{}, fmt.Errorf("keywords %q: %w", a.Title, err)
	}
	s.logger.WithFields(logrus.Fields{"title": a.Title, "keywords": len(keywords)}).Debug("article digested")
	return domain.Digest{
		ID:         uuid.NewString(),
		Article:    a,
		Summary:    summary,
		Keywords:   keywords,
		CreatedAt:  s.now(),
		Incomplete: a.Content == ScrapeFailedContent,
	}, nil
}

func (s *DigestServiceImpl) fetchContent(ctx context.Context, a domain.Article) string {
	if s.scraper != nil && a.Link != "" {
		body, err := s.scraper.Scrape(ctx, a.Link)
		if err == nil {
			return body
		}
		s.logger.WithField("link", a.Link).WithError(err).Warn("scrape failed")
	}
	if strings.TrimSpace(a.Description) != "" {
		return a.Description
	}
	return ScrapeFailedContent
}

// reindex rebuilds the vocabulary over every digest held in memory.
func (s *DigestServiceImpl) reindex() error {
	if s.embedder == nil || s.store == nil {
		return nil
	}
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	digests := s.Digests()
	texts := make([]string, len(digests))
	for i, d := range digests {
		texts[i] = indexText(d)
	}
	if err := s.embedder.Prepare(texts); err != nil {
		// a corpus of stop words only leaves nothing to index
		s.logger.WithError(err).Debug("search index not rebuilt")
		return nil
	}
	if err := s.store.Init(s.embedder.Dimension()); err != nil {
		return err
	}
	vectors := make([][]float64, len(digests))
	for i := range digests {
		vec, err := s.embedder.Embed(texts[i])
		if err != nil {
			return err
		}
		vectors[i] = vec
	}
	if err := s.store.Clear(); err != nil {
		return err
	}
	return s.store.Upsert(digests, vectors)
}

// Digests returns a copy of every digest produced in this process.
func (s *DigestServiceImpl) Digests() []domain.Digest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Digest(nil), s.digests...)
}

// Recent lists archived digests newest first, or the in-memory ones when no
// archive is configured.
func (s *DigestServiceImpl) Recent(limit int) ([]domain.Digest, error) {
	if s.archive != nil {
		return s.archive.Recent(limit)
	}
	all := s.Digests()
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Query searches digests by TF-IDF similarity, falling back to term overlap
// when the query shares no vocabulary with the index.
func (s *DigestServiceImpl) Query(query string, topK int) ([]domain.SearchResult, error) {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	if s.embedder == nil || s.store == nil || s.embedder.Dimension() == 0 {
		return s.lexicalSearch(query, topK), nil
	}
	vec, err := s.embedder.Embed(query)
	if err != nil {
		return nil, err
	}
	if isZero(vec) {
		return s.lexicalSearch(query, topK), nil
	}
	res, err := s.store.Search(vec, topK)
	if err != nil {
		return nil, err
	}
	allZero := true
	for _, r := range res {
		if r.Score > 1e-9 {
			allZero = false
			break
		}
	}
	if allZero {
		return s.lexicalSearch(query, topK), nil
	}
	return res, nil
}

func (s *DigestServiceImpl) lexicalSearch(query string, topK int) []domain.SearchResult {
	digests := s.Digests()
	qset := termSet(query)
	results := make([]domain.SearchResult, len(digests))
	for i, d := range digests {
		results[i] = domain.SearchResult{Digest: d, Score: overlapOchiai(qset, termSet(indexText(d)))}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK <= 0 {
		topK = 5
	}
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}

func indexText(d domain.Digest) string {
	return d.Article.Title + "\n" + d.Article.Content
}

func termSet(text string) map[string]struct{} {
	terms := summarizer.ExtractTerms(text)
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		m[t] = struct{}{}
	}
	return m
}

// overlapOchiai is |A∩B| / sqrt(|A||B|).
func overlapOchiai(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	return float64(inter) / math.Sqrt(float64(len(a))*float64(len(b)))
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
