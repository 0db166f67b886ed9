package summarizer

import "unicode/utf8"

// ScoredSentence pairs a sentence with its ranking score.
type ScoredSentence struct {
	Sentence
	Score float64
}

// ScoreSentences scores every sentence against the frequency table. The result
// has the same order and length as the input.
func ScoreSentences(sentences []Sentence, freq FrequencyTable) []ScoredSentence {
	out := make([]ScoredSentence, len(sentences))
	n := len(sentences)
	for i, s := range sentences {
		base := 0
		for _, term := range ExtractTerms(s.Text) {
			base += freq[term]
		}
		out[i] = ScoredSentence{
			Sentence: s,
			Score:    float64(base) * PositionWeight(i, n) * LengthWeight(s.Text),
		}
	}
	return out
}

// PositionWeight favours the opening of an article and discounts its tail.
// Both bounds are strict and the lead test (i < 0.3n) runs first: the first
// sentence is always a lead and sequences of three or fewer have no tail.
func PositionWeight(i, n int) float64 {
	switch {
	case float64(i) < float64(n)*0.3:
		return 1.3
	case float64(i) > float64(n)*0.7:
		return 0.8
	default:
		return 1.0
	}
}

// LengthWeight favours sentences of 30 to 150 runes.
func LengthWeight(text string) float64 {
	l := utf8.RuneCountInString(text)
	switch {
	case l >= 30 && l <= 150:
		return 1.2
	case l < 20 || l > 200:
		return 0.7
	default:
		return 1.0
	}
}
