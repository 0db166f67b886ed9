package summarizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	hangulTermRe = regexp.MustCompile(`[가-힣]{2,}`)
	latinTermRe  = regexp.MustCompile(`[a-zA-Z]{3,}`)
	digitTermRe  = regexp.MustCompile(`[0-9]+`)
)

// FrequencyTable maps a term to its occurrence count.
type FrequencyTable map[string]int

// ExtractTerms returns Hangul runs of two or more syllables, Latin runs of
// three or more letters (lower-cased) and digit runs, in that order.
// Duplicates are kept so the result can be counted.
func ExtractTerms(text string) []string {
	hangul := hangulTermRe.FindAllString(text, -1)
	latin := latinTermRe.FindAllString(text, -1)
	digits := digitTermRe.FindAllString(text, -1)
	out := make([]string, 0, len(hangul)+len(latin)+len(digits))
	out = append(out, hangul...)
	for _, w := range latin {
		out = append(out, strings.ToLower(w))
	}
	return append(out, digits...)
}

// CountTerms builds a frequency table, skipping terms shorter than two runes
// and terms present in stop.
func CountTerms(terms []string, stop map[string]struct{}) FrequencyTable {
	freq := FrequencyTable{}
	for _, t := range terms {
		if utf8.RuneCountInString(t) < 2 {
			continue
		}
		if _, ok := stop[t]; ok {
			continue
		}
		freq[t]++
	}
	return freq
}
