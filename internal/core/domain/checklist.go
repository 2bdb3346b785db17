package domain

import "time"

// Checklist is a named, versioned collection of clause patterns used to
// evaluate one document. Checklists are immutable once registered and are
// identified by (ID, Version).
type Checklist struct {
	// ID is the stable checklist name, e.g. "standard-nda".
	ID string `json:"id"`

	// Version identifies this revision of the checklist, e.g. "2024-01".
	Version string `json:"version"`

	// UpdatedAt records when this version was authored.
	UpdatedAt time.Time `json:"updatedAt"`

	// Clauses are the checkable requirements, in declaration order.
	// Finding order mirrors this order.
	Clauses []ClausePattern `json:"clauses"`
}

// ClausePattern defines one checkable requirement within a checklist.
type ClausePattern struct {
	// Name is the human-readable clause name, e.g. "Term".
	Name string `json:"name"`

	// Aliases are heading fragments used to locate the clause's section.
	Aliases []string `json:"aliases"`

	// MustInclude lists phrases that must appear in a candidate section.
	MustInclude []string `json:"mustInclude,omitempty"`

	// MustNotInclude lists phrases that may not appear in any candidate section.
	MustNotInclude []string `json:"mustNotInclude,omitempty"`

	// ShouldInclude lists advisory phrases; absence lowers the score but
	// never fails the clause on its own.
	ShouldInclude []string `json:"shouldInclude,omitempty"`

	// NumberBounds optionally constrains a duration found in the section.
	NumberBounds *NumberBounds `json:"numberBounds,omitempty"`

	// Logic optionally adds a boolean/proximity check over the lemmatized
	// token sequence of the whole document.
	Logic *LogicNode `json:"logic,omitempty"`

	// Synonyms maps a term to alternates accepted wherever the term is
	// required by Logic.
	Synonyms map[string][]string `json:"synonyms,omitempty"`

	// Severity is the weight this clause contributes to the risk score
	// when it fails.
	Severity Severity `json:"severity"`

	// Advice is reviewer guidance attached to a failing finding. AdviceAlt,
	// when present, is the variant-B wording.
	Advice    string `json:"advice,omitempty"`
	AdviceAlt string `json:"adviceAlt,omitempty"`
}

// BoundKind is the unit a NumberBounds is expressed in.
type BoundKind string

// Supported duration units.
const (
	BoundDays   BoundKind = "DAYS"
	BoundMonths BoundKind = "MONTHS"
	BoundYears  BoundKind = "YEARS"
)

// NumberBounds constrains a numeric duration extracted from clause text.
// Open ends default to zero / unbounded.
type NumberBounds struct {
	Kind BoundKind `json:"kind"`
	Min  *float64  `json:"min,omitempty"`
	Max  *float64  `json:"max,omitempty"`
}

// LogicOp tags a LogicNode variant.
type LogicOp string

// LogicNode operators.
const (
	LogicAllOf LogicOp = "ALL_OF"
	LogicAnyOf LogicOp = "ANY_OF"
	LogicNot   LogicOp = "NOT"
	LogicNear  LogicOp = "NEAR"
)

// LogicNode is one node of a boolean/proximity expression tree evaluated
// over a lemmatized token sequence.
//
//   - ALL_OF: Terms must all appear (directly or via synonyms).
//   - ANY_OF: at least one of Terms must appear.
//   - NOT: negates Child.
//   - NEAR: TermA and TermB must occur within Distance token positions,
//     in either order.
type LogicNode struct {
	Op       LogicOp    `json:"op"`
	Terms    []string   `json:"terms,omitempty"`
	Child    *LogicNode `json:"child,omitempty"`
	TermA    string     `json:"a,omitempty"`
	TermB    string     `json:"b,omitempty"`
	Distance int        `json:"distance,omitempty"`
}

// Severity is the risk weight of a clause.
type Severity struct {
	// Weight is added to the aggregate risk score when the clause fails.
	Weight int `json:"weight"`

	// Level classifies the failure impact.
	Level SeverityLevel `json:"level"`
}

// SeverityLevel classifies how serious a clause failure is.
type SeverityLevel string

// Severity levels, lowest to highest.
const (
	SeverityLow     SeverityLevel = "LOW"
	SeverityWarn    SeverityLevel = "WARN"
	SeverityBlocker SeverityLevel = "BLOCKER"
)
