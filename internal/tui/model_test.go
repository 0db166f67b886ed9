package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"newsdigest/internal/domain"
)

type stubSearch struct {
	gotQuery string
	results  []domain.SearchResult
}

func (s *stubSearch) Query(q string, _ int) ([]domain.SearchResult, error) {
	s.gotQuery = q
	return s.results, nil
}

var digests = []domain.Digest{
	{Article: domain.Article{Title: "반도체 수출 증가", Source: "연합뉴스"}, Summary: "반도체 수출이 늘었다. 정부가 발표했다.",
		Keywords: []domain.Keyword{{Term: "반도체", Weight: 3}}},
	{Article: domain.Article{Title: "프로야구 개막"}, Summary: "관중이 몰렸다."},
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestListNavigation(t *testing.T) {
	m := sized(New(&stubSearch{}, digests))
	if !strings.Contains(m.View(), "반도체 수출 증가") || !strings.Contains(m.View(), "키워드: 반도체") {
		t.Fatalf("first digest not shown:\n%s", m.View())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(m.View(), "프로야구 개막") || !strings.Contains(m.View(), "기사 2/2") {
		t.Fatalf("cursor did not move:\n%s", m.View())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Fatalf("cursor should wrap, got %d", m.cursor)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 1 {
		t.Fatalf("cursor should wrap backwards, got %d", m.cursor)
	}
}

func TestSearchAndEscape(t *testing.T) {
	stub := &stubSearch{results: []domain.SearchResult{{Digest: digests[1], Score: 0.5}}}
	m := sized(New(stub, digests))
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("관중")})
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if stub.gotQuery != "관중" {
		t.Fatalf("query = %q", stub.gotQuery)
	}
	if !m.searching || !strings.Contains(m.View(), "score=0.500") || !strings.Contains(m.View(), "프로야구 개막") {
		t.Fatalf("search results not shown:\n%s", m.View())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching || m.input.Value() != "" || !strings.Contains(m.View(), "반도체 수출 증가") {
		t.Fatalf("escape did not restore list:\n%s", m.View())
	}
}

func TestEmptyStates(t *testing.T) {
	m := sized(New(&stubSearch{}, nil))
	if !strings.Contains(m.View(), "요약된 기사가 없습니다.") {
		t.Fatalf("unexpected view:\n%s", m.View())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("없음")})
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "검색 결과가 없습니다.") {
		t.Fatalf("unexpected view:\n%s", m.View())
	}
}

func TestHighlightBestSentence(t *testing.T) {
	got := highlightBestSentence("반도체 수출이 늘었다. 정부가 발표했다.", "정부가")
	if !strings.Contains(got, "반도체 수출이 늘었다.") || !strings.Contains(got, "정부가 발표했다.") {
		t.Fatalf("sentences lost: %q", got)
	}
	if plain := highlightBestSentence("하나. 둘.", ""); plain != "하나. 둘." {
		t.Fatalf("no query should leave text as is: %q", plain)
	}
}
