package report

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"newsdigest/internal/domain"
)

// Renderer turns a batch of digests into a Markdown report and an HTML page.
type Renderer struct {
	md    goldmark.Markdown
	title string
	now   func() time.Time
}

func NewRenderer(title string) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	return &Renderer{md: md, title: title, now: time.Now}
}

// Markdown builds the report source: an overview table followed by one
// section per digest.
func (r *Renderer) Markdown(digests []domain.Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeInline(r.title))
	fmt.Fprintf(&b, "생성 시각: %s · 기사 %d건\n\n", r.now().Format("2006-01-02 15:04"), len(digests))
	if len(digests) == 0 {
		b.WriteString("수집된 기사가 없습니다.\n")
		return b.String()
	}

	b.WriteString("| # | 제목 | 출처 | 키워드 |\n|---|---|---|---|\n")
	for i, d := range digests {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, cell(d.Article.Title), cell(d.Article.Source), cell(keywordList(d.Keywords)))
	}

	for i, d := range digests {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, escapeInline(d.Article.Title))
		if d.Article.Link != "" {
			fmt.Fprintf(&b, "<%s>\n\n", d.Article.Link)
		}
		if !d.Article.Published.IsZero() {
			fmt.Fprintf(&b, "*%s*\n\n", d.Article.Published.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(&b, "%s\n", escapeInline(d.Summary))
		if len(d.Keywords) > 0 {
			fmt.Fprintf(&b, "\n**키워드:** %s\n", escapeInline(keywordList(d.Keywords)))
		}
	}
	return b.String()
}

// HTML renders the report as a standalone HTML document.
func (r *Renderer) HTML(digests []domain.Digest) ([]byte, error) {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(r.Markdown(digests)), &body); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html lang=\"ko\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(r.title))
	out.WriteString("<style>body{font-family:sans-serif;max-width:860px;margin:2em auto;line-height:1.6}" +
		"table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:4px 8px}</style>\n</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

// WriteFile renders the HTML report to path, creating parent directories.
func (r *Renderer) WriteFile(path string, digests []domain.Digest) error {
	page, err := r.HTML(digests)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, page, 0o644)
}

func keywordList(kws []domain.Keyword) string {
	terms := make([]string, len(kws))
	for i, k := range kws {
		terms[i] = k.Term
	}
	return strings.Join(terms, ", ")
}

var inlineEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "<", "&lt;", "[", `\[`, "#", `\#`)

func escapeInline(s string) string {
	return inlineEscaper.Replace(strings.Join(strings.Fields(s), " "))
}

func cell(s string) string {
	return strings.ReplaceAll(escapeInline(s), "|", `\|`)
}
