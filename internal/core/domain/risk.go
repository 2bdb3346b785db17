package domain

// RiskLevel is the coarse document-level risk label.
type RiskLevel string

// Risk levels.
const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskSummary rolls per-clause findings into one score and label.
type RiskSummary struct {
	// Score is the sum of severity weights over failed clauses.
	Score int `json:"score"`

	// Level is LOW, MEDIUM or HIGH.
	Level RiskLevel `json:"level"`

	// Blockers counts failed clauses at BLOCKER severity.
	Blockers int `json:"blockers"`

	// Warns counts failed clauses at WARN severity.
	Warns int `json:"warns"`
}
