package domain

import "time"

// FindingStatus is the outcome of evaluating one clause.
type FindingStatus string

// Finding statuses.
const (
	StatusPass FindingStatus = "PASS"
	StatusWarn FindingStatus = "WARN"
	StatusFail FindingStatus = "FAIL"
	StatusNA   FindingStatus = "NA"
)

// ExtractedSpan is a candidate section carried as evidence, with its match
// quality against the clause's aliases. Start and End are byte offsets into
// the normalized text that produced it.
type ExtractedSpan struct {
	Heading      string  `json:"heading"`
	Text         string  `json:"text"`
	Start        int     `json:"start"`
	End          int     `json:"end"`
	HeadingScore float64 `json:"headingScore"`
}

// ClauseFinding is the per-clause outcome of one evaluation.
type ClauseFinding struct {
	// Clause is the name of the clause pattern that produced this finding.
	Clause string `json:"clause"`

	// Severity echoes the clause's severity for downstream aggregation.
	Severity Severity `json:"severity"`

	// Status is PASS, WARN, FAIL or NA.
	Status FindingStatus `json:"status"`

	// Score is the fraction of applicable checks that passed, in [0,1].
	Score float64 `json:"score"`

	// Evidence holds up to two candidate sections for human review.
	Evidence []ExtractedSpan `json:"evidence,omitempty"`

	// Notes accumulate explanations, including migration annotations.
	Notes []string `json:"notes,omitempty"`

	// Rationale is the clause's advice text, present on non-passing findings.
	Rationale string `json:"rationale,omitempty"`
}

// Variant selects between alternate advice wordings.
type Variant string

// Wording variants.
const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// ReviewStats describes the work done during one evaluation.
type ReviewStats struct {
	Tokens       int   `json:"tokens"`
	Pages        int   `json:"pages,omitempty"`
	ProcessingMs int64 `json:"processingMs"`
}

// ReviewAudit identifies the reviewed document without retaining its text.
type ReviewAudit struct {
	DocSHA256 string    `json:"docSha256"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewResult is the complete outcome of evaluating one document against
// one checklist. Findings are in checklist declaration order and their
// count always equals the checklist's clause count.
type ReviewResult struct {
	ChecklistID      string          `json:"checklistId"`
	ChecklistVersion string          `json:"checklistVersion"`
	Variant          Variant         `json:"variant"`
	Findings         []ClauseFinding `json:"findings"`
	Risk             RiskSummary     `json:"risk"`
	Context          DocumentContext `json:"context"`
	Stats            ReviewStats     `json:"stats"`
	Audit            ReviewAudit     `json:"audit"`
}

// Disclaimer accompanies every review result returned to a caller.
const Disclaimer = "This automated review is informational only and does not " +
	"constitute legal advice. Have a qualified attorney review the agreement " +
	"before signing."
