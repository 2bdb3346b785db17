// Package textnorm canonicalizes raw contract text and splits it into
// heading-tagged sections. Evidence spans produced later in the pipeline
// index into the normalized text, so normalization must be idempotent.
package textnorm

import (
	"regexp"
	"strings"
)

// PreambleHeading names the implicit section before the first heading.
const PreambleHeading = "Preamble"

var (
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)

	// allCapsHeading matches an all-caps run of 7+ letters, dashes,
	// slashes or spaces, e.g. "CONFIDENTIALITY" or "NON-SOLICITATION".
	allCapsHeading = regexp.MustCompile(`^[A-Z][A-Z0-9 \-/&.]{6,}:?$`)

	// numberedHeading matches "Section 4" / "Article IX" style labels.
	numberedHeading = regexp.MustCompile(`^(?i:(section|article))\s+[0-9IVXivx]+[.)]?(\s+\S.*)?$`)

	tokenPattern = regexp.MustCompile(`[a-z0-9]+`)
)

// Section is a contiguous region of normalized text under one heading.
// Start and End are byte offsets of the body within the normalized text.
type Section struct {
	Heading string
	Body    string
	Start   int
	End     int
}

// Normalize canonicalizes line endings, collapses horizontal whitespace
// runs, collapses three or more consecutive newlines to one blank line and
// trims the ends. Normalize is idempotent.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = horizontalWS.ReplaceAllString(line, " ")
		lines[i] = strings.TrimRight(line, " ")
	}
	text = strings.Join(lines, "\n")

	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.Trim(text, " \n")
}

// SplitSections scans normalized text line by line and starts a new section
// at every line matching the heading heuristic. Content before the first
// heading is collected under the "Preamble" heading. Offsets index into the
// input text.
func SplitSections(text string) []Section {
	if text == "" {
		return nil
	}

	var sections []Section
	current := Section{Heading: PreambleHeading, Start: 0}
	var body strings.Builder

	flush := func(end int) {
		current.Body = strings.TrimSpace(body.String())
		current.End = end
		if current.Body != "" || current.Heading != PreambleHeading {
			sections = append(sections, current)
		}
		body.Reset()
	}

	offset := 0
	for _, line := range strings.Split(text, "\n") {
		lineLen := len(line)
		if IsHeading(line) {
			flush(offset)
			current = Section{
				Heading: strings.TrimSuffix(strings.TrimSpace(line), ":"),
				Start:   offset + lineLen + 1,
			}
			if current.Start > len(text) {
				current.Start = len(text)
			}
		} else {
			if body.Len() > 0 {
				body.WriteString("\n")
			}
			body.WriteString(line)
		}
		offset += lineLen + 1
	}
	flush(len(text))

	return sections
}

// IsHeading reports whether a line looks like a section heading: an
// all-caps run, a "Section N"/"Article N" label, or a short Title-Case
// line ending in a colon.
func IsHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if allCapsHeading.MatchString(trimmed) {
		return true
	}
	if numberedHeading.MatchString(trimmed) {
		return true
	}
	return isTitleCaseLabel(trimmed)
}

// isTitleCaseLabel matches short lines like "Governing Law:" where every
// word starts with a capital letter and the line ends in a colon.
func isTitleCaseLabel(line string) bool {
	if len(line) > 60 || !strings.HasSuffix(line, ":") {
		return false
	}
	words := strings.Fields(strings.TrimSuffix(line, ":"))
	if len(words) == 0 || len(words) > 6 {
		return false
	}
	for _, w := range words {
		c := w[0]
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// Tokenize lowercases text and returns its alphanumeric tokens in order.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
