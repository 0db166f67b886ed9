package summarizer

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func sentenceTexts(sentences []Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}

func TestSegmentPunctuation(t *testing.T) {
	got, err := Segment("오늘 서울에서 열린 행사는 성공적이었다. 참가자들은 매우 만족했다고 밝혔다.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"오늘 서울에서 열린 행사는 성공적이었다", "참가자들은 매우 만족했다고 밝혔다"}
	if !reflect.DeepEqual(sentenceTexts(got), want) {
		t.Fatalf("got %q, want %q", sentenceTexts(got), want)
	}
	for i, s := range got {
		if s.Index != i {
			t.Fatalf("sentence %d has index %d", i, s.Index)
		}
	}
}

func TestSegmentVerbEndingsKeepEnding(t *testing.T) {
	got, err := Segment("정부는 새로운 정책을 발표했다 시장은 즉각 긍정적으로 반응했다 전문가들은 신중한 태도를 보였다")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"정부는 새로운 정책을 발표했다",
		"시장은 즉각 긍정적으로 반응했다",
		"전문가들은 신중한 태도를 보였다",
	}
	if !reflect.DeepEqual(sentenceTexts(got), want) {
		t.Fatalf("got %q, want %q", sentenceTexts(got), want)
	}
}

func TestSegmentFiltersBoilerplate(t *testing.T) {
	text := "홍길동 기자가 현장에서 상황을 전했습니다. 시민들은 광장에 모여 오랫동안 목소리를 높였다. " +
		"자세한 내용은 홈페이지에서 확인할 수 있습니다. 짧은 문장."
	got, err := Segment(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"시민들은 광장에 모여 오랫동안 목소리를 높였다"}
	if !reflect.DeepEqual(sentenceTexts(got), want) {
		t.Fatalf("got %q, want %q", sentenceTexts(got), want)
	}
	if got[0].Index != 0 {
		t.Fatalf("surviving sentence should be re-indexed, got %d", got[0].Index)
	}
}

func TestSegmentFallsBackToPeriodSplit(t *testing.T) {
	text := "로그인 상태에서만 볼 수 있는 긴 문장이 여기에 있습니다"
	got, err := Segment(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Text != text {
		t.Fatalf("got %q", sentenceTexts(got))
	}
}

func TestSegmentExhausted(t *testing.T) {
	_, err := Segment(strings.Repeat("abc. ", 20))
	if !errors.Is(err, ErrSegmentationExhausted) {
		t.Fatalf("expected ErrSegmentationExhausted, got %v", err)
	}
	if _, err := Segment(""); !errors.Is(err, ErrSegmentationExhausted) {
		t.Fatalf("expected ErrSegmentationExhausted for empty text, got %v", err)
	}
}

func TestSegmentLengthIsExclusive(t *testing.T) {
	fifteen := strings.Repeat("가", 15)
	sixteen := strings.Repeat("나", 16)
	got, err := Segment(fifteen + ". " + sixteen + ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{sixteen}; !reflect.DeepEqual(sentenceTexts(got), want) {
		t.Fatalf("got %q, want %q", sentenceTexts(got), want)
	}
}
