package driven

// SentenceSegmenter splits text into sentences for evidence truncation.
// Implementations must be deterministic; the choice of implementation may
// vary by environment (Unicode-aware where available, punctuation scanning
// otherwise) but truncation behavior built on top must not.
type SentenceSegmenter interface {
	// Segment returns the sentences of text in order. Concatenating the
	// returned sentences reproduces the input.
	Segment(text string) []string
}
