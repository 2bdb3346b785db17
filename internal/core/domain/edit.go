package domain

// SuggestedEdit is one proposed change to a document, created from a finding
// and selected by a human. An edit with no OriginalText is a pure insertion;
// otherwise it replaces (or, with empty SuggestedText, deletes) the first
// literal occurrence of OriginalText.
type SuggestedEdit struct {
	ID         string `json:"id"`
	ClauseType string `json:"clauseType"`

	// OriginalText is the exact text to replace. Empty for pure insertions.
	OriginalText string `json:"originalText,omitempty"`

	// SuggestedText is the replacement or inserted text.
	SuggestedText string `json:"suggestedText"`

	Rationale string   `json:"rationale,omitempty"`
	Severity  Severity `json:"severity"`

	// Optional location hints from the finding's evidence span.
	ParagraphIndex *int `json:"paragraphIndex,omitempty"`
	Start          *int `json:"start,omitempty"`
	End            *int `json:"end,omitempty"`
}

// RedlineRequest asks for a tracked-change document incorporating Edits.
type RedlineRequest struct {
	// DocumentBytes is the original DOCX package, base64-encoded in JSON.
	DocumentBytes []byte `json:"documentBytes"`

	Edits    []SuggestedEdit `json:"edits"`
	Author   string          `json:"author"`
	Timezone string          `json:"timezone,omitempty"`
}

// RedlineResponse carries the revised document and any edits whose original
// text could not be located verbatim.
type RedlineResponse struct {
	DocumentBytes []byte          `json:"documentBytes"`
	Skipped       []SuggestedEdit `json:"skipped"`
}
