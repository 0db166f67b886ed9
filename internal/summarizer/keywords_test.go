package summarizer

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"newsdigest/internal/domain"
)

func TestRankKeywordsLengthBonus(t *testing.T) {
	text := strings.Repeat("정치 ", 4) + strings.Repeat("서울시청 ", 3)
	got, err := RankKeywords(text, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.Keyword{{Term: "서울시청", Weight: 4.5}, {Term: "정치", Weight: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRankKeywordsEqualCountsLongerWins(t *testing.T) {
	got, err := RankKeywords("경제 경제 서울시청 서울시청", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Term != "서울시청" || got[0].Weight != 1.5*got[1].Weight {
		t.Fatalf("got %v", got)
	}
}

func TestRankKeywordsDropsSingletons(t *testing.T) {
	got, err := RankKeywords("경제 경제 사회 국제정세", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.Keyword{{Term: "경제", Weight: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRankKeywordsTopKAppliedBeforeThreshold(t *testing.T) {
	text := "물가 물가 물가 금리 금리 금리 환율 환율"
	got, err := RankKeywords(text, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// equal weights keep first-seen order
	want := []domain.Keyword{{Term: "물가", Weight: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	got, _ = RankKeywords(text, 10)
	if len(got) != 3 || got[1].Term != "금리" || got[2].Term != "환율" {
		t.Fatalf("got %v", got)
	}
}

func TestRankKeywordsFiltersDenylist(t *testing.T) {
	got, err := RankKeywords("기자 기자 기자 오늘 오늘 사진 사진 com com 닫기 닫기", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no keywords, got %v", got)
	}
}

func TestRankKeywordsCaseFolds(t *testing.T) {
	got, err := RankKeywords("Seoul seoul SEOUL", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.Keyword{{Term: "seoul", Weight: 4.5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRankKeywordsEmpty(t *testing.T) {
	got, err := RankKeywords("", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestRankKeywordsInvalidTopK(t *testing.T) {
	if _, err := RankKeywords("경제 경제", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestStopWordsStages(t *testing.T) {
	scoring := StopWords(StageScoring)
	keywords := StopWords(StageKeywords)
	for w := range scoring {
		if _, ok := keywords[w]; !ok {
			t.Errorf("scoring stop word %q missing from keyword stage", w)
		}
	}
	if _, ok := scoring["사진"]; ok {
		t.Error("credit words should not affect sentence scoring")
	}
	for _, w := range DenyWords(DenyConnective) {
		if _, ok := scoring[w]; ok {
			t.Errorf("%q should count toward sentence scores", w)
		}
		if _, ok := keywords[w]; !ok {
			t.Errorf("%q should be filtered from keywords", w)
		}
	}
	if n := len(scoring); n != 79 {
		t.Errorf("scoring stage has %d words, want 79", n)
	}
	if _, ok := keywords["advertisement"]; !ok {
		t.Error("entries must be lower-case")
	}
}
