package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"newsdigest/internal/domain"
)

// ErrUnsupported is returned for files that are neither .txt nor .json.
var ErrUnsupported = errors.New("importer: unsupported file type")

// Supported reports whether path has an importable extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".json":
		return true
	}
	return false
}

// LoadFile reads articles from a .txt file (one article) or a .json export.
func LoadFile(path string) ([]domain.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return []domain.Article{fromText(path, string(data))}, nil
	case ".json":
		articles, err := ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return articles, nil
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
}

// LoadPaths expands globs and loads every supported file, skipping others.
func LoadPaths(paths []string) ([]domain.Article, error) {
	var out []domain.Article
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !Supported(m) {
				continue
			}
			articles, err := LoadFile(m)
			if err != nil {
				return nil, err
			}
			out = append(out, articles...)
		}
	}
	return out, nil
}

// ParseJSON accepts either an array of article objects or an object with an
// "articles" array. Entries without any body text are dropped.
func ParseJSON(data []byte) ([]domain.Article, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	var items []gjson.Result
	switch {
	case root.IsArray():
		items = root.Array()
	case root.Get("articles").IsArray():
		items = root.Get("articles").Array()
	default:
		return nil, errors.New(`expected an array or an object with "articles"`)
	}
	out := make([]domain.Article, 0, len(items))
	for _, it := range items {
		a := domain.Article{
			Title:       first(it, "title"),
			Link:        first(it, "link", "url"),
			Description: first(it, "description", "summary"),
			Source:      first(it, "source", "category"),
			Content:     first(it, "content", "body", "text"),
		}
		if a.Content == "" {
			a.Content = a.Description
		}
		if strings.TrimSpace(a.Content) == "" {
			continue
		}
		if p := first(it, "published"); p != "" {
			a.Published = parseTime(p)
		}
		out = append(out, a)
	}
	return out, nil
}

func first(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() && v.String() != "" {
			return strings.TrimSpace(v.String())
		}
	}
	return ""
}

var timeLayouts = []string{time.RFC3339, time.RFC1123Z, time.RFC1123, "2006-01-02 15:04:05", "2006-01-02"}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func fromText(path, content string) domain.Article {
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return domain.Article{
		Title:   title,
		Link:    "file://" + filepath.ToSlash(path),
		Source:  "file",
		Content: content,
	}
}
