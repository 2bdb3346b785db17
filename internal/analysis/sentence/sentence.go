// Package sentence provides the two sentence-boundary segmenters used for
// evidence truncation: a Unicode-aware segmenter (UAX #29) and a fallback
// that scans for the nearest '.', '?' or '!'.
//
// Both satisfy the driven.SentenceSegmenter port. Truncate produces
// identical results with either segmenter on plain ASCII prose, which keeps
// evidence previews stable across environments.
package sentence

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"

	"github.com/ZaBrisket/ndareview/internal/core/ports/driven"
)

// Unicode segments text per UAX #29 sentence boundaries.
type Unicode struct{}

// NewUnicode creates the Unicode-aware segmenter.
func NewUnicode() *Unicode {
	return &Unicode{}
}

// Ensure both segmenters implement the port.
var (
	_ driven.SentenceSegmenter = (*Unicode)(nil)
	_ driven.SentenceSegmenter = (*Punct)(nil)
)

// Segment returns UAX #29 sentence segments.
func (u *Unicode) Segment(text string) []string {
	var out []string
	iter := sentences.FromString(text)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// Punct is the fallback segmenter: a sentence ends at the first '.', '?'
// or '!' followed by a space or end of text.
type Punct struct{}

// NewPunct creates the punctuation-scanning segmenter.
func NewPunct() *Punct {
	return &Punct{}
}

// Segment splits on terminal punctuation. Concatenating the returned
// segments reproduces the input exactly.
func (p *Punct) Segment(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '?' && c != '!' {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' && text[i+1] != '\n' {
			continue
		}
		// Include trailing whitespace with the sentence so segments
		// concatenate back to the input.
		end := i + 1
		for end < len(text) && (text[end] == ' ' || text[end] == '\n') {
			end++
		}
		out = append(out, text[start:end])
		start = end
		i = end - 1
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// Truncate bounds text to at most limit bytes, cutting at the last sentence
// boundary that fits. When not even the first sentence fits, the text is
// hard-cut at limit with a trailing ellipsis.
func Truncate(seg driven.SentenceSegmenter, text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}

	kept := 0
	for _, s := range seg.Segment(text) {
		if kept+len(s) > limit {
			break
		}
		kept += len(s)
	}
	if kept == 0 {
		return strings.TrimSpace(text[:limit]) + "…"
	}
	return strings.TrimSpace(text[:kept])
}
