package summarizer

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestExtractTerms(t *testing.T) {
	got := ExtractTerms("서울 Seoul 2024년 AI a 가 정책")
	want := []string{"서울", "정책", "seoul", "2024"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := ExtractTerms(""); len(got) != 0 {
		t.Fatalf("expected no terms, got %q", got)
	}
}

func TestCountTerms(t *testing.T) {
	stop := map[string]struct{}{"오늘": {}}
	got := CountTerms([]string{"서울", "서울", "오늘", "7", "2024", "seoul"}, stop)
	want := FrequencyTable{"서울": 2, "2024": 1, "seoul": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPositionWeight(t *testing.T) {
	cases := []struct {
		i, n int
		want float64
	}{
		{0, 10, 1.3},
		{2, 10, 1.3},
		{3, 10, 1.0},
		{6, 10, 1.0},
		{8, 10, 0.8},
		{0, 1, 1.3},
		{1, 2, 1.0},
		{2, 3, 1.0},
		{3, 4, 0.8},
	}
	for _, tc := range cases {
		if got := PositionWeight(tc.i, tc.n); got != tc.want {
			t.Errorf("PositionWeight(%d, %d) = %v, want %v", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestLengthWeight(t *testing.T) {
	cases := []struct {
		runes int
		want  float64
	}{
		{19, 0.7},
		{20, 1.0},
		{29, 1.0},
		{30, 1.2},
		{150, 1.2},
		{151, 1.0},
		{200, 1.0},
		{201, 0.7},
	}
	for _, tc := range cases {
		if got := LengthWeight(strings.Repeat("가", tc.runes)); got != tc.want {
			t.Errorf("LengthWeight(%d runes) = %v, want %v", tc.runes, got, tc.want)
		}
	}
}

func TestScoreSentences(t *testing.T) {
	sentences := []Sentence{
		{Text: "서울 서울 Seoul", Index: 0},
		{Text: "부산 해운대 바다", Index: 1},
	}
	freq := FrequencyTable{"서울": 2, "seoul": 1}
	got := ScoreSentences(sentences, freq)
	if len(got) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(got))
	}
	// base 5, lead of two sentences, 11 runes
	if want := 5 * 1.3 * 0.7; math.Abs(got[0].Score-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", got[0].Score, want)
	}
	if got[1].Score != 0 {
		t.Fatalf("sentence without known terms should score 0, got %v", got[1].Score)
	}
	if got[1].Text != sentences[1].Text || got[1].Index != 1 {
		t.Fatalf("order not preserved: %+v", got[1])
	}
}

func TestScoreSentencesEmptyTable(t *testing.T) {
	got := ScoreSentences([]Sentence{{Text: "아무 의미 없는 문장입니다", Index: 0}}, FrequencyTable{})
	if got[0].Score != 0 {
		t.Fatalf("expected 0, got %v", got[0].Score)
	}
}
