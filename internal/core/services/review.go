package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ZaBrisket/ndareview/internal/analysis/docctx"
	"github.com/ZaBrisket/ndareview/internal/analysis/textnorm"
	"github.com/ZaBrisket/ndareview/internal/cache"
	"github.com/ZaBrisket/ndareview/internal/core/domain"
	"github.com/ZaBrisket/ndareview/internal/core/ports/driven"
	"github.com/ZaBrisket/ndareview/internal/core/ports/driving"
	"github.com/ZaBrisket/ndareview/internal/logger"
)

// Ensure ReviewService implements the interface.
var _ driving.ReviewService = (*ReviewService)(nil)

// contextCacheSize bounds the short-lived per-document context cache.
const contextCacheSize = 8

// charsPerPage approximates page count from normalized text length.
const charsPerPage = 1800

// ReviewService runs the full review pipeline: normalize, section,
// evaluate, roll up risk, extract context and write an audit record.
type ReviewService struct {
	registry  driving.ChecklistRegistry
	evaluator *Evaluator
	audit     driven.AuditStore
	contexts  *cache.LRU[string, domain.DocumentContext]
}

// NewReviewService creates the review pipeline. The audit store may be nil,
// in which case no audit records are written.
func NewReviewService(registry driving.ChecklistRegistry, evaluator *Evaluator, audit driven.AuditStore) *ReviewService {
	return &ReviewService{
		registry:  registry,
		evaluator: evaluator,
		audit:     audit,
		contexts:  cache.New[string, domain.DocumentContext](contextCacheSize),
	}
}

// Review evaluates raw contract text against a checklist version. An empty
// version selects the current version. Only the document's content hash is
// retained for audit; raw text never leaves this call.
func (s *ReviewService) Review(ctx context.Context, text, checklistID, version string) (*domain.ReviewResult, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty document text", domain.ErrInvalidInput)
	}

	checklist, err := s.registry.Get(checklistID, version)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	normalized := textnorm.Normalize(text)

	sum := sha256.Sum256([]byte(normalized))
	docSHA := hex.EncodeToString(sum[:])
	variant := PickVariant(docSHA)

	logger.Section("Clause Evaluation")
	logger.Debug("checklist %s@%s, variant %s", checklist.ID, checklist.Version, variant)

	findings := s.evaluator.Evaluate(normalized, checklist)
	applyVariantWording(findings, checklist, variant)

	docContext := s.contexts.GetOrCompute(docSHA, func() domain.DocumentContext {
		return docctx.Extract(normalized)
	})

	tokens := len(textnorm.Tokenize(normalized))
	result := &domain.ReviewResult{
		ChecklistID:      checklist.ID,
		ChecklistVersion: checklist.Version,
		Variant:          variant,
		Findings:         findings,
		Risk:             RollupRisk(findings),
		Context:          docContext,
		Stats: domain.ReviewStats{
			Tokens:       tokens,
			Pages:        (len(normalized) + charsPerPage - 1) / charsPerPage,
			ProcessingMs: time.Since(started).Milliseconds(),
		},
		Audit: domain.ReviewAudit{
			DocSHA256: docSHA,
			CreatedAt: time.Now().UTC(),
		},
	}

	s.appendAudit(ctx, result)
	return result, nil
}

// applyVariantWording swaps in the alternate advice for variant B.
// Findings and scores are identical across variants; only wording differs.
func applyVariantWording(findings []domain.ClauseFinding, checklist *domain.Checklist, variant domain.Variant) {
	if variant != domain.VariantB {
		return
	}
	for i := range findings {
		if findings[i].Rationale != "" && checklist.Clauses[i].AdviceAlt != "" {
			findings[i].Rationale = checklist.Clauses[i].AdviceAlt
		}
	}
}

// appendAudit writes the audit record. Audit failures are logged, not
// fatal: the review result is already complete.
func (s *ReviewService) appendAudit(ctx context.Context, result *domain.ReviewResult) {
	if s.audit == nil {
		return
	}
	record := domain.AuditRecord{
		ID:          uuid.New().String(),
		Kind:        domain.AuditKindReview,
		ChecklistID: result.ChecklistID,
		Version:     result.ChecklistVersion,
		DocSHA256:   result.Audit.DocSHA256,
		CreatedAt:   result.Audit.CreatedAt,
	}
	if err := s.audit.Append(ctx, record); err != nil {
		logger.Warn("audit append failed: %v", err)
	}
}
