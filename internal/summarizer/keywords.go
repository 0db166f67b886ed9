package summarizer

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"newsdigest/internal/domain"
)

const (
	longTermRunes = 4
	longTermBonus = 1.5
	minKeywordHit = 2.0
)

// KeywordRanker ranks terms by stop-word filtered frequency with a bonus for
// long terms.
type KeywordRanker struct {
	stopwords map[string]struct{}
}

// NewKeywordRanker creates a ranker using the keyword-stage denylist.
func NewKeywordRanker() *KeywordRanker {
	return &KeywordRanker{stopwords: StopWords(StageKeywords)}
}

// RankKeywords ranks keywords with the default ranker.
func RankKeywords(text string, topK int) ([]domain.Keyword, error) {
	return defaultRanker.Rank(text, topK)
}

var defaultRanker = NewKeywordRanker()

// Rank returns at most topK keywords in descending weight. Terms whose final
// weight is below 2 are dropped after the cut, so the list can be shorter
// than topK or empty.
func (r *KeywordRanker) Rank(text string, topK int) ([]domain.Keyword, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top k %d", ErrInvalidArgument, topK)
	}
	counts := map[string]int{}
	var order []string
	for _, t := range ExtractTerms(text) {
		if utf8.RuneCountInString(t) < 2 {
			continue
		}
		if _, ok := r.stopwords[t]; ok {
			continue
		}
		if _, ok := counts[t]; !ok {
			order = append(order, t)
		}
		counts[t]++
	}

	ranked := make([]domain.Keyword, len(order))
	for i, t := range order {
		w := float64(counts[t])
		if utf8.RuneCountInString(t) >= longTermRunes {
			w *= longTermBonus
		}
		ranked[i] = domain.Keyword{Term: t, Weight: w}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Weight > ranked[j].Weight })
	if topK < len(ranked) {
		ranked = ranked[:topK]
	}

	out := make([]domain.Keyword, 0, len(ranked))
	for _, k := range ranked {
		if k.Weight >= minKeywordHit {
			out = append(out, k)
		}
	}
	return out, nil
}
