// Package builtin ships the standard NDA checklist so the tool is useful
// with no configuration. Directory-loaded checklists with the same ID and
// version replace these definitions.
package builtin

import (
	"fmt"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
	"github.com/ZaBrisket/ndareview/internal/core/services"
)

// StandardNDAID is the built-in checklist ID.
const StandardNDAID = "standard-nda"

// Versions of the built-in checklist.
const (
	VersionPrevious = "2023-06"
	VersionCurrent  = "2024-01"
)

func floatPtr(v float64) *float64 { return &v }

// Previous returns the prior revision of the standard NDA checklist.
// Kept registered so results produced under it can still be read and
// migrated.
func Previous() domain.Checklist {
	return domain.Checklist{
		ID:      StandardNDAID,
		Version: VersionPrevious,
		Clauses: []domain.ClausePattern{
			{
				Name:        "Definition of Confidential Information",
				Aliases:     []string{"confidential information", "definition"},
				MustInclude: []string{"confidential"},
				Severity:    domain.Severity{Weight: 8, Level: domain.SeverityWarn},
				Advice:      "Define confidential information explicitly, including oral disclosures.",
			},
			{
				Name:         "Term",
				Aliases:      []string{"term", "duration"},
				NumberBounds: &domain.NumberBounds{Kind: domain.BoundMonths, Max: floatPtr(36)},
				Severity:     domain.Severity{Weight: 12, Level: domain.SeverityBlocker},
				Advice:       "Cap the confidentiality term at thirty-six months.",
			},
			{
				Name:    "Return or Destruction of Materials",
				Aliases: []string{"return of materials", "return", "destruction"},
				Logic: &domain.LogicNode{
					Op:    domain.LogicAnyOf,
					Terms: []string{"return", "destroy"},
				},
				Synonyms: map[string][]string{"destroy": {"delete", "erase"}},
				Severity: domain.Severity{Weight: 10, Level: domain.SeverityWarn},
				Advice:   "Require return or destruction of materials on termination.",
			},
			{
				Name:        "Governing Law",
				Aliases:     []string{"governing law", "choice of law"},
				MustInclude: []string{"governed by"},
				Severity:    domain.Severity{Weight: 5, Level: domain.SeverityWarn},
				Advice:      "Name the governing law expressly.",
			},
		},
	}
}

// Current returns the current revision of the standard NDA checklist.
// Relative to the prior revision it tightens the term bound to two years
// and adds non-solicitation and use-restriction clauses.
func Current() domain.Checklist {
	return domain.Checklist{
		ID:      StandardNDAID,
		Version: VersionCurrent,
		Clauses: []domain.ClausePattern{
			{
				Name:          "Definition of Confidential Information",
				Aliases:       []string{"confidential information", "definition"},
				MustInclude:   []string{"confidential"},
				ShouldInclude: []string{"trade secret"},
				Severity:      domain.Severity{Weight: 8, Level: domain.SeverityWarn},
				Advice:        "Define confidential information explicitly, including oral disclosures.",
				AdviceAlt:     "Spell out what counts as confidential, oral disclosures included.",
			},
			{
				Name:         "Term",
				Aliases:      []string{"term", "duration"},
				NumberBounds: &domain.NumberBounds{Kind: domain.BoundYears, Max: floatPtr(2)},
				Severity:     domain.Severity{Weight: 12, Level: domain.SeverityBlocker},
				Advice:       "Cap the confidentiality term at two years.",
				AdviceAlt:    "Limit the term; two years is market standard.",
			},
			{
				Name:    "Return or Destruction of Materials",
				Aliases: []string{"return of materials", "return", "destruction"},
				Logic: &domain.LogicNode{
					Op:    domain.LogicAnyOf,
					Terms: []string{"return", "destroy"},
				},
				Synonyms: map[string][]string{"destroy": {"delete", "erase"}},
				Severity: domain.Severity{Weight: 10, Level: domain.SeverityWarn},
				Advice:   "Require return or destruction of materials on termination.",
				AdviceAlt: "Add an obligation to return or destroy materials when the " +
					"agreement ends.",
			},
			{
				Name:    "Non-Solicitation",
				Aliases: []string{"non-solicitation", "solicitation"},
				Logic: &domain.LogicNode{
					Op:       domain.LogicNear,
					TermA:    "solicit",
					TermB:    "employee",
					Distance: 12,
				},
				Severity:  domain.Severity{Weight: 6, Level: domain.SeverityLow},
				Advice:    "Consider a mutual non-solicitation covenant.",
				AdviceAlt: "A mutual non-solicit protects both sides' teams.",
			},
			{
				Name:           "Use Restrictions",
				Aliases:        []string{"use", "purpose", "permitted use"},
				MustInclude:    []string{"solely"},
				MustNotInclude: []string{"perpetual"},
				Severity:       domain.Severity{Weight: 7, Level: domain.SeverityWarn},
				Advice:         "Restrict use to the stated purpose; strike perpetual rights.",
				AdviceAlt:      "Tie use to the evaluation purpose and remove any perpetual grant.",
			},
			{
				Name:        "Governing Law",
				Aliases:     []string{"governing law", "choice of law"},
				MustInclude: []string{"governed by"},
				Severity:    domain.Severity{Weight: 5, Level: domain.SeverityWarn},
				Advice:      "Name the governing law expressly.",
				AdviceAlt:   "State the governing jurisdiction in so many words.",
			},
			{
				Name:        "Remedies",
				Aliases:     []string{"remedies", "equitable relief"},
				MustInclude: []string{"injunctive relief"},
				Severity:    domain.Severity{Weight: 4, Level: domain.SeverityLow},
				Advice:      "Preserve the right to seek injunctive relief.",
				AdviceAlt:   "Keep injunctive relief available without a bond requirement.",
			},
			{
				Name:        "No License",
				Aliases:     []string{"no license", "ownership"},
				MustInclude: []string{"no license"},
				Severity:    domain.Severity{Weight: 4, Level: domain.SeverityLow},
				Advice:      "State that disclosure grants no license to intellectual property.",
				AdviceAlt:   "Make explicit that no IP license is granted by disclosure.",
			},
			{
				Name:           "Residuals",
				Aliases:        []string{"residuals", "residual information"},
				MustNotInclude: []string{"residuals"},
				Severity:       domain.Severity{Weight: 9, Level: domain.SeverityWarn},
				Advice:         "Strike the residuals clause; it swallows the confidentiality obligation.",
				AdviceAlt:      "Remove residual-knowledge carve-outs entirely.",
			},
		},
	}
}

// Register installs both built-in versions and the forward migration.
// The current version is registered last so it becomes the default.
func Register(registry *services.Registry) error {
	if err := registry.Register(Previous()); err != nil {
		return fmt.Errorf("registering %s@%s: %w", StandardNDAID, VersionPrevious, err)
	}
	if err := registry.Register(Current()); err != nil {
		return fmt.Errorf("registering %s@%s: %w", StandardNDAID, VersionCurrent, err)
	}

	registry.RegisterMigration(StandardNDAID, VersionPrevious, VersionCurrent,
		func(result *domain.ReviewResult) *domain.ReviewResult {
			note := fmt.Sprintf("re-keyed from %s@%s; clause added in %s was not evaluated",
				StandardNDAID, VersionPrevious, VersionCurrent)
			for i := range result.Findings {
				result.Findings[i].Notes = append(result.Findings[i].Notes, note)
			}
			return result
		})
	return nil
}
