package summarizer

import (
	"fmt"
	"sort"
	"strings"
)

// minContentBytes is the smallest normalized text worth summarizing. It counts
// UTF-8 bytes, not runes: a Hangul syllable takes three bytes, so a short
// two-sentence Korean article of around 20 syllables still clears the gate
// while Latin text needs 50 characters.
const minContentBytes = 50

// Status tells whether a Summary holds selected sentences or a sentinel text.
type Status int

const (
	StatusOK Status = iota
	StatusInsufficientInput
	StatusSegmentationExhausted
)

// Summary is the assembled result together with the sentences it was built from.
type Summary struct {
	Text      string
	Sentences []Sentence
	Status    Status
}

// Err maps a degraded Status to its sentinel error; nil for StatusOK.
func (s Summary) Err() error {
	switch s.Status {
	case StatusInsufficientInput:
		return ErrInsufficientInput
	case StatusSegmentationExhausted:
		return ErrSegmentationExhausted
	}
	return nil
}

// FrequencySummarizer ranks sentences by term frequency (stopwords filtered),
// position and length.
type FrequencySummarizer struct {
	normalizer *Normalizer
	stopwords  map[string]struct{}
}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{
		normalizer: defaultNormalizer,
		stopwords:  StopWords(StageScoring),
	}
}

// Summarize returns a short summary, or a sentinel text when the input is too
// short or cannot be segmented.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	sum, err := s.SummarizeDetailed(text, maxSentences)
	if err != nil {
		return "", err
	}
	return sum.Text, nil
}

// SummarizeDetailed runs the whole pipeline and keeps the selected sentences.
func (s *FrequencySummarizer) SummarizeDetailed(text string, maxSentences int) (Summary, error) {
	if maxSentences <= 0 {
		return Summary{}, fmt.Errorf("%w: max sentences %d", ErrInvalidArgument, maxSentences)
	}
	normalized := s.normalizer.Normalize(text)
	if len(normalized) < minContentBytes {
		return Summary{Text: InsufficientContentSummary, Status: StatusInsufficientInput}, nil
	}
	sentences, err := Segment(normalized)
	if err != nil {
		return Summary{Text: CannotSegmentSummary, Status: StatusSegmentationExhausted}, nil
	}
	freq := CountTerms(ExtractTerms(joinSentences(sentences)), s.stopwords)
	return Assemble(ScoreSentences(sentences, freq), maxSentences)
}

// Assemble picks the best maxSentences sentences and joins them in their
// original order. Equal scores keep the earlier sentence.
func Assemble(scored []ScoredSentence, maxSentences int) (Summary, error) {
	if maxSentences <= 0 {
		return Summary{}, fmt.Errorf("%w: max sentences %d", ErrInvalidArgument, maxSentences)
	}
	if len(scored) == 0 {
		return Summary{Text: CannotSegmentSummary, Status: StatusSegmentationExhausted}, nil
	}
	ranked := make([]ScoredSentence, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Index < ranked[j].Index
	})
	if maxSentences > len(ranked) {
		maxSentences = len(ranked)
	}
	// Keep original order among selected
	selected := ranked[:maxSentences]
	sort.Slice(selected, func(i, j int) bool { return selected[i].Index < selected[j].Index })

	out := make([]Sentence, len(selected))
	texts := make([]string, len(selected))
	for i, sc := range selected {
		out[i] = sc.Sentence
		texts[i] = sc.Text
	}
	text := strings.Join(texts, ". ")
	if !strings.HasSuffix(text, ".") {
		text += "."
	}
	return Summary{Text: text, Sentences: out, Status: StatusOK}, nil
}

func joinSentences(sentences []Sentence) string {
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text
	}
	return strings.Join(texts, " ")
}
