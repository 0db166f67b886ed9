package summarizer

import "errors"

var (
	// ErrInvalidArgument reports a non-positive sentence or keyword count.
	ErrInvalidArgument = errors.New("summarizer: invalid argument")
	// ErrInsufficientInput reports normalized text below the minimum length.
	ErrInsufficientInput = errors.New("summarizer: insufficient input")
	// ErrSegmentationExhausted reports that no segmentation strategy produced a sentence.
	ErrSegmentationExhausted = errors.New("summarizer: cannot segment text")
)

// Sentinel summaries shown to readers in place of a summary.
const (
	InsufficientContentSummary = "요약할 내용이 부족합니다."
	CannotSegmentSummary       = "문장을 분리할 수 없습니다."
)
