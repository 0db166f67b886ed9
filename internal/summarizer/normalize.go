package summarizer

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalizer strips publishing boilerplate from article text.
type Normalizer struct {
	rules []Rule
}

// NewNormalizer creates a normalizer over the given rules. With no rules it
// uses the built-in catalog.
func NewNormalizer(rules ...Rule) *Normalizer {
	if len(rules) == 0 {
		rules = defaultRules
	}
	return &Normalizer{rules: rules}
}

var defaultNormalizer = NewNormalizer()

// Normalize strips boilerplate using the built-in catalog.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Normalize applies every rule in order, collapses whitespace and trims.
// The catalog is re-applied until the text is stable: a removal can join two
// fragments into a new match, and the result must not contain any.
// Removals shrink the text, so a changing pass can happen at most len(text)
// times; the bound only matters for custom rules that grow it.
func (n *Normalizer) Normalize(text string) string {
	cur := n.pass(text)
	for i := 0; i <= len(text); i++ {
		next := n.pass(cur)
		if next == cur {
			break
		}
		cur = next
	}
	return cur
}

func (n *Normalizer) pass(text string) string {
	for _, r := range n.rules {
		text = r.Pattern.ReplaceAllLiteralString(text, r.Replacement)
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
