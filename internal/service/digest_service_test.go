package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"newsdigest/internal/archive"
	"newsdigest/internal/domain"
	"newsdigest/internal/embedding/tfidf"
	"newsdigest/internal/logging"
	"newsdigest/internal/summarizer"
	"newsdigest/internal/vectorstore/memory"
)

const chipBody = "정부는 올해 반도체 수출이 크게 증가할 것이라고 발표했습니다. " +
	"반도체 업계는 수출 호조가 하반기까지 이어질 것으로 전망했다. " +
	"전문가들은 반도체 가격 상승이 수출 증가를 이끌고 있다고 분석했다."

const baseballBody = "프로야구 정규시즌이 오늘 개막하며 전국 구장에 관중이 몰렸습니다. " +
	"구단들은 개막 관중 기록을 새로 쓸 것으로 기대했다. " +
	"프로야구 관중 증가는 지역 경제에도 긍정적인 영향을 주고 있다."

type fakeFeed struct{ articles []domain.Article }

func (f fakeFeed) Fetch(context.Context) ([]domain.Article, error) { return f.articles, nil }

type fakeScraper struct {
	mu    sync.Mutex
	calls []string
	pages map[string]string
}

func (f *fakeScraper) Scrape(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	if body, ok := f.pages[url]; ok {
		return body, nil
	}
	return "", errors.New("404")
}

func newService(t *testing.T, deps Deps) *DigestServiceImpl {
	t.Helper()
	deps.Summarizer = summarizer.NewFrequencySummarizer()
	deps.Ranker = summarizer.NewKeywordRanker()
	deps.Embedder = tfidf.NewEmbedder()
	deps.Store = memory.NewStorage()
	deps.Logger = logging.Discard()
	return NewDigestService(deps, Options{MaxSentences: 2, TopK: 3, Workers: 3, MaxContentChars: 2500})
}

func TestDigestArticlesKeepsOrderAndIndexes(t *testing.T) {
	svc := newService(t, Deps{})
	got, err := svc.DigestArticles(context.Background(), []domain.Article{
		{Title: "반도체", Content: chipBody},
		{Title: "야구", Content: baseballBody},
	})
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if len(got) != 2 || got[0].Article.Title != "반도체" || got[1].Article.Title != "야구" {
		t.Fatalf("order not preserved: %+v", got)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID || got[0].CreatedAt.IsZero() {
		t.Fatalf("ids not assigned: %q %q", got[0].ID, got[1].ID)
	}
	if !strings.HasSuffix(got[0].Summary, ".") || got[0].Summary == summarizer.InsufficientContentSummary {
		t.Fatalf("unexpected summary: %q", got[0].Summary)
	}
	if len(got[0].Keywords) == 0 || got[0].Keywords[0].Term != "반도체" {
		t.Fatalf("unexpected keywords: %+v", got[0].Keywords)
	}

	res, err := svc.Query("반도체 수출", 2)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(res) == 0 || res[0].Digest.Article.Title != "반도체" {
		t.Fatalf("unexpected search results: %+v", res)
	}
	res, _ = svc.Query("관중", 1)
	if len(res) != 1 || res[0].Digest.Article.Title != "야구" {
		t.Fatalf("unexpected search results: %+v", res)
	}
}

func TestQueryLexicalFallback(t *testing.T) {
	svc := newService(t, Deps{})
	_, _ = svc.DigestArticles(context.Background(), []domain.Article{
		{Title: "반도체", Content: chipBody},
		{Title: "야구", Content: baseballBody},
	})
	// 오늘 is a stop word for the index but still a term for overlap scoring.
	res, err := svc.Query("오늘", 1)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(res) != 1 || res[0].Digest.Article.Title != "야구" || res[0].Score <= 0 {
		t.Fatalf("unexpected fallback results: %+v", res)
	}
}

func TestQueryBeforeIngest(t *testing.T) {
	svc := newService(t, Deps{})
	res, err := svc.Query("반도체", 3)
	if err != nil || len(res) != 0 {
		t.Fatalf("res=%v err=%v", res, err)
	}
}

func TestCollectFiltersSkipsSeenAndScrapes(t *testing.T) {
	store, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	feeds := fakeFeed{articles: []domain.Article{
		{Title: "반도체 수출 증가", Link: "https://x/1"},
		{Title: "프로야구 개막", Link: "https://x/2"},
		{Title: "반도체 공장 착공", Link: "https://x/3", Description: "설명 대체 본문"},
	}}
	scr := &fakeScraper{pages: map[string]string{"https://x/1": chipBody}}
	svc := newService(t, Deps{Feeds: feeds, Scraper: scr, Archive: store})

	got, err := svc.Collect(context.Background(), []string{"반도체"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d digests, want 2", len(got))
	}
	if got[0].Article.Content != chipBody {
		t.Fatal("scraped body not used")
	}
	if got[1].Article.Content != "설명 대체 본문" || got[1].Summary != summarizer.InsufficientContentSummary {
		t.Fatalf("description fallback not applied: %+v", got[1])
	}

	again, err := svc.Collect(context.Background(), []string{"반도체"})
	if err != nil {
		t.Fatalf("second collect: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("archived links should be skipped, got %d", len(again))
	}
	recent, _ := svc.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("archive holds %d digests, want 2", len(recent))
	}
}

func TestScrapeFailureWithoutDescription(t *testing.T) {
	svc := newService(t, Deps{Scraper: &fakeScraper{}})
	got, err := svc.DigestArticles(context.Background(), []domain.Article{{Title: "빈 기사", Link: "https://x/404"}})
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if got[0].Article.Content != ScrapeFailedContent {
		t.Fatalf("content = %q", got[0].Article.Content)
	}
}

func TestScrapeFailureIsRetried(t *testing.T) {
	store, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	feeds := fakeFeed{articles: []domain.Article{{Title: "반도체 수출 증가", Link: "https://x/1"}}}
	scr := &fakeScraper{pages: map[string]string{}}
	svc := newService(t, Deps{Feeds: feeds, Scraper: scr, Archive: store})

	first, err := svc.Collect(context.Background(), nil)
	if err != nil || len(first) != 1 || !first[0].Incomplete {
		t.Fatalf("first collect = %+v, err %v", first, err)
	}
	if seen, _ := store.Seen("https://x/1"); seen {
		t.Fatal("failed scrape should not mark the link seen")
	}

	scr.mu.Lock()
	scr.pages["https://x/1"] = chipBody
	scr.mu.Unlock()
	second, err := svc.Collect(context.Background(), nil)
	if err != nil || len(second) != 1 {
		t.Fatalf("second collect = %+v, err %v", second, err)
	}
	if second[0].Incomplete || second[0].Article.Content != chipBody {
		t.Fatalf("retry did not use the scraped body: %+v", second[0])
	}
	if seen, _ := store.Seen("https://x/1"); !seen {
		t.Fatal("link should be seen after a successful scrape")
	}
}

func TestKeywordsIgnoreBylinesAndCredits(t *testing.T) {
	body := "홍길동 기자 hong@example.com 반도체 수출이 늘었다. " +
		"홍길동 기자 hong@example.com 반도체 가격도 올랐다. 사진=연합뉴스 사진=연합뉴스"
	svc := newService(t, Deps{})
	got, err := svc.DigestArticles(context.Background(), []domain.Article{{Title: "반도체", Content: body}})
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if len(got[0].Keywords) != 1 || got[0].Keywords[0].Term != "반도체" {
		t.Fatalf("keywords = %+v, want only 반도체", got[0].Keywords)
	}
	if strings.Contains(got[0].Summary, "hong") || strings.Contains(got[0].Summary, "연합뉴스") {
		t.Fatalf("summary kept boilerplate: %q", got[0].Summary)
	}
	if got[0].Article.Content != body {
		t.Fatal("article content should be kept as fetched")
	}
}

func TestIngestFiles(t *testing.T) {
	dir := t.TempDir()
	_ = os.WriteFile(filepath.Join(dir, "chip.txt"), []byte(chipBody), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "batch.json"), []byte(`[{"title":"야구","content":"`+baseballBody+`"}]`), 0o644)
	svc := newService(t, Deps{})

	got, err := svc.IngestFiles(context.Background(), []string{filepath.Join(dir, "*")})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d digests", len(got))
	}
	if _, err := svc.IngestFiles(context.Background(), []string{filepath.Join(dir, "*.md")}); err == nil {
		t.Fatal("expected error when nothing matches")
	}
}

func TestCollectWithoutFeeds(t *testing.T) {
	if _, err := newService(t, Deps{}).Collect(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecentInMemoryNewestFirst(t *testing.T) {
	svc := newService(t, Deps{})
	_, _ = svc.DigestArticles(context.Background(), []domain.Article{{Title: "첫째", Content: chipBody}})
	_, _ = svc.DigestArticles(context.Background(), []domain.Article{{Title: "둘째", Content: baseballBody}})
	got, err := svc.Recent(1)
	if err != nil || len(got) != 1 {
		t.Fatalf("got %v, err %v", got, err)
	}
	if all := svc.Digests(); len(all) != 2 {
		t.Fatalf("in-memory digests = %d", len(all))
	}
}

func TestOchiai(t *testing.T) {
	a := map[string]struct{}{"반도체": {}, "수출": {}}
	b := map[string]struct{}{"반도체": {}, "수출": {}, "증가": {}, "정부": {}}
	if got, want := overlapOchiai(a, b), 2/2.8284271247461903; got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("ochiai = %v, want %v", got, want)
	}
	if overlapOchiai(nil, b) != 0 {
		t.Fatal("empty set should score 0")
	}
}
