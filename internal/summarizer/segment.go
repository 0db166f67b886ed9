package summarizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Sentence is a segmented fragment tagged with its position among the
// surviving fragments.
type Sentence struct {
	Text  string
	Index int
}

// minSentenceRunes is exclusive: a fragment must be longer to survive.
const minSentenceRunes = 15

// boundaryRe matches terminal punctuation (dropped) or a declarative verb
// ending followed by whitespace (the ending stays with its sentence).
var boundaryRe = regexp.MustCompile(`([.!?])|(습니다|ㅂ니다|었다|였다|했다|다)\s`)

type segmentStrategy func(text string) []Sentence

// segmentStrategies are tried in order; the first non-empty result wins.
var segmentStrategies = []segmentStrategy{
	filteredSplit,
	periodSplit,
}

// Segment splits normalized text into sentences. It returns
// ErrSegmentationExhausted when no strategy yields a sentence.
func Segment(text string) ([]Sentence, error) {
	for _, strategy := range segmentStrategies {
		if sentences := strategy(text); len(sentences) > 0 {
			return sentences, nil
		}
	}
	return nil, ErrSegmentationExhausted
}

func filteredSplit(text string) []Sentence {
	return collect(splitOnBoundaries(text), hasSentenceMarker)
}

func periodSplit(text string) []Sentence {
	return collect(strings.Split(text, "."), nil)
}

func collect(fragments []string, reject func(string) bool) []Sentence {
	var out []Sentence
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if utf8.RuneCountInString(f) <= minSentenceRunes {
			continue
		}
		if reject != nil && reject(f) {
			continue
		}
		out = append(out, Sentence{Text: f, Index: len(out)})
	}
	return out
}

func splitOnBoundaries(text string) []string {
	var out []string
	start := 0
	for _, m := range boundaryRe.FindAllStringSubmatchIndex(text, -1) {
		end := m[0]
		if m[4] >= 0 {
			end = m[5]
		}
		out = append(out, text[start:end])
		start = m[1]
	}
	return append(out, text[start:])
}
