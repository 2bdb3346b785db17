package cli

import (
	"context"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
	"github.com/ZaBrisket/ndareview/internal/core/services"
)

// stubRedline returns fixed bytes without touching a real package.
type stubRedline struct {
	resp *domain.RedlineResponse
	err  error
	got  domain.RedlineRequest
}

func (s *stubRedline) Apply(_ context.Context, req domain.RedlineRequest) (*domain.RedlineResponse, error) {
	s.got = req
	return s.resp, s.err
}

// stubAudit serves canned audit records.
type stubAudit struct {
	records []domain.AuditRecord
}

func (s *stubAudit) Append(_ context.Context, record domain.AuditRecord) error {
	s.records = append(s.records, record)
	return nil
}

func (s *stubAudit) List(_ context.Context, limit int) ([]domain.AuditRecord, error) {
	if limit > len(s.records) {
		limit = len(s.records)
	}
	return s.records[:limit], nil
}

func (s *stubAudit) Close() error { return nil }

func testChecklist() domain.Checklist {
	two := 2.0
	return domain.Checklist{
		ID:      "standard-nda",
		Version: "2024-01",
		Clauses: []domain.ClausePattern{
			{
				Name:        "Definition of Confidential Information",
				Aliases:     []string{"confidential information"},
				MustInclude: []string{"confidential"},
				Severity:    domain.Severity{Weight: 8, Level: domain.SeverityWarn},
			},
			{
				Name:         "Term",
				Aliases:      []string{"term"},
				NumberBounds: &domain.NumberBounds{Kind: domain.BoundYears, Max: &two},
				Severity:     domain.Severity{Weight: 12, Level: domain.SeverityBlocker},
				Advice:       "Cap the confidentiality term at two years.",
			},
		},
	}
}

// setupTestServices wires real review services over a stub redline and
// audit store, restoring the previous wiring on cleanup.
func setupTestServices() func() {
	prevReview := reviewService
	prevRedline := redlineService
	prevRegistry := checklistRegistry
	prevAudit := auditStore
	prevStore := checklistStore
	prevRegister := registerChecklist

	registry := services.NewRegistry()
	if err := registry.Register(testChecklist()); err != nil {
		panic(err)
	}

	Configure(Services{
		Review:   services.NewReviewService(registry, services.NewEvaluator(nil), nil),
		Redline:  &stubRedline{resp: &domain.RedlineResponse{DocumentBytes: []byte("REDLINED")}},
		Registry: registry,
		Audit:    &stubAudit{},
	})

	return func() {
		reviewService = prevReview
		redlineService = prevRedline
		checklistRegistry = prevRegistry
		auditStore = prevAudit
		checklistStore = prevStore
		registerChecklist = prevRegister
	}
}

const sampleText = `CONFIDENTIAL INFORMATION:
All confidential information disclosed by either party.

TERM:
This Agreement remains in effect for thirty-six (36) months.
`
