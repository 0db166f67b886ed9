package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"newsdigest/internal/domain"
	"newsdigest/internal/summarizer"
)

// SearchPort is the TUI-facing subset of the digest service.
type SearchPort interface {
	Query(query string, topK int) ([]domain.SearchResult, error)
}

// Model is the Bubble Tea model for browsing digests of a run.
type Model struct {
	service   SearchPort
	input     textinput.Model
	viewport  viewport.Model
	digests   []domain.Digest
	results   []domain.SearchResult
	searching bool
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a model listing digests; typing a query and pressing Enter
// switches to search results, Esc goes back to the list.
func New(service SearchPort, digests []domain.Digest) Model {
	ti := textinput.New()
	ti.Prompt = "검색> "
	ti.Placeholder = "검색어 입력 후 Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		digests:  digests,
		status:   fmt.Sprintf("기사 %d건 요약 완료. ↑/↓ 이동, Enter 검색, Esc 목록", len(digests)),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := detailBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, counter, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				res, err := m.service.Query(q, 10)
				if err != nil {
					m.status = "오류: " + err.Error()
					m.results = nil
				} else {
					m.status = fmt.Sprintf("%q 검색 결과 %d건", q, len(res))
					m.results = res
					m.lastQuery = q
				}
				m.searching = true
				m.cursor = 0
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		case "esc":
			if m.searching {
				m.searching = false
				m.cursor = 0
				m.lastQuery = ""
				m.input.SetValue("")
				m.status = fmt.Sprintf("기사 %d건", len(m.digests))
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		case "down":
			if n := m.count(); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		case "up":
			if n := m.count(); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the selected digest.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("News Digest")
	counter := mutedStyle.Render(m.counter())
	detail := detailBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + counter + "\n" + detail + "\n" + input + "\n" + status
}

func (m Model) count() int {
	if m.searching {
		return len(m.results)
	}
	return len(m.digests)
}

func (m Model) counter() string {
	n := m.count()
	if n == 0 {
		return ""
	}
	if m.searching {
		return fmt.Sprintf("결과 %d/%d  score=%.3f", m.cursor+1, n, m.results[m.cursor].Score)
	}
	return fmt.Sprintf("기사 %d/%d", m.cursor+1, n)
}

func (m Model) renderCurrent() string {
	if m.count() == 0 {
		if m.searching {
			return "검색 결과가 없습니다."
		}
		return "요약된 기사가 없습니다."
	}
	var d domain.Digest
	if m.searching {
		d = m.results[m.cursor].Digest
	} else {
		d = m.digests[m.cursor]
	}
	return renderDigest(d, m.lastQuery)
}

func renderDigest(d domain.Digest, query string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Article.Title))
	b.WriteString("\n")
	meta := d.Article.Source
	if !d.Article.Published.IsZero() {
		meta += " · " + d.Article.Published.Format("2006-01-02 15:04")
	}
	if meta != "" {
		b.WriteString(mutedStyle.Render(meta) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(highlightBestSentence(d.Summary, query))
	if len(d.Keywords) > 0 {
		terms := make([]string, len(d.Keywords))
		for i, k := range d.Keywords {
			terms[i] = k.Term
		}
		b.WriteString("\n\n" + keywordStyle.Render("키워드: "+strings.Join(terms, ", ")))
	}
	if d.Article.Link != "" {
		b.WriteString("\n" + mutedStyle.Render(d.Article.Link))
	}
	return b.String()
}

var (
	detailBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	headerStyle    = lipgloss.NewStyle().Bold(true)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	keywordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sentenceRe     = regexp.MustCompile(`[^.!?]+[.!?]?`)
)

// highlightBestSentence marks the summary sentence sharing the most terms
// with the query.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTerms := termSet(query)
	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}
	if len(qTerms) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx, bestScore := 0, 0
	for i, s := range sentences {
		if score := overlap(qTerms, s); score > bestScore {
			bestScore, bestIdx = score, i
		}
	}
	if bestScore > 0 {
		sentences[bestIdx] = highlightStyle.Render(sentences[bestIdx])
	}
	return strings.Join(sentences, " ")
}

func termSet(s string) map[string]struct{} {
	terms := summarizer.ExtractTerms(s)
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		m[t] = struct{}{}
	}
	return m
}

func overlap(query map[string]struct{}, sentence string) int {
	score := 0
	for t := range termSet(sentence) {
		if _, ok := query[t]; ok {
			score++
		}
	}
	return score
}
