package services

import "github.com/ZaBrisket/ndareview/internal/core/domain"

// Risk thresholds. A single blocker forces HIGH regardless of score.
const (
	highScoreThreshold   = 20
	mediumScoreThreshold = 10
	mediumWarnThreshold  = 2
)

// RollupRisk reduces findings into one score and level. The reduction is
// pure and order-independent: only FAIL findings contribute, each adding
// its severity weight, and adding a failure can never lower the level.
func RollupRisk(findings []domain.ClauseFinding) domain.RiskSummary {
	var summary domain.RiskSummary

	for _, f := range findings {
		if f.Status != domain.StatusFail {
			continue
		}
		summary.Score += f.Severity.Weight
		switch f.Severity.Level {
		case domain.SeverityBlocker:
			summary.Blockers++
		case domain.SeverityWarn:
			summary.Warns++
		}
	}

	switch {
	case summary.Score >= highScoreThreshold || summary.Blockers >= 1:
		summary.Level = domain.RiskHigh
	case summary.Score >= mediumScoreThreshold || summary.Warns >= mediumWarnThreshold:
		summary.Level = domain.RiskMedium
	default:
		summary.Level = domain.RiskLow
	}
	return summary
}
