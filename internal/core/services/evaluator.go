package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ZaBrisket/ndareview/internal/analysis/lemma"
	"github.com/ZaBrisket/ndareview/internal/analysis/logic"
	"github.com/ZaBrisket/ndareview/internal/analysis/sentence"
	"github.com/ZaBrisket/ndareview/internal/analysis/textnorm"
	"github.com/ZaBrisket/ndareview/internal/core/domain"
	"github.com/ZaBrisket/ndareview/internal/core/ports/driven"
	"github.com/ZaBrisket/ndareview/internal/logger"
)

// defaultEvidenceLimit bounds the evidence preview carried on a finding.
const defaultEvidenceLimit = 300

// maxEvidenceSpans is the number of candidate sections kept as evidence.
const maxEvidenceSpans = 2

// durationPattern extracts "36 months" / "thirty-six (36) months" style
// durations. The numeral inside parentheses is the one scanned.
var durationPattern = regexp.MustCompile(`(?i)(\d+)\s*\)?\s*(day|month|year)s?\b`)

// monthFactors converts each duration unit to months.
var monthFactors = map[domain.BoundKind]float64{
	domain.BoundDays:   1.0 / 30.0,
	domain.BoundMonths: 1,
	domain.BoundYears:  12,
}

// Evaluator is the canonical clause evaluation core: one immutable
// checklist against one immutable normalized text. It holds no per-document
// state beyond bounded caches, so it is safe to share across concurrent
// reviews of independent documents.
type Evaluator struct {
	matchers      *matcherCache
	segmenter     driven.SentenceSegmenter
	evidenceLimit int
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithEvidenceLimit sets the evidence preview length in bytes.
func WithEvidenceLimit(limit int) EvaluatorOption {
	return func(e *Evaluator) {
		if limit > 0 {
			e.evidenceLimit = limit
		}
	}
}

// NewEvaluator creates the evaluation core. The segmenter bounds evidence
// previews at sentence boundaries; nil selects the punctuation fallback.
func NewEvaluator(segmenter driven.SentenceSegmenter, opts ...EvaluatorOption) *Evaluator {
	if segmenter == nil {
		segmenter = sentence.NewPunct()
	}
	e := &Evaluator{
		matchers:      newMatcherCache(),
		segmenter:     segmenter,
		evidenceLimit: defaultEvidenceLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs every clause of the checklist against normalized text and
// returns findings in checklist declaration order. The finding count always
// equals the clause count.
func (e *Evaluator) Evaluate(text string, checklist *domain.Checklist) []domain.ClauseFinding {
	sections := textnorm.SplitSections(text)
	lemmas := lemma.Sequence(textnorm.Tokenize(text))

	findings := make([]domain.ClauseFinding, 0, len(checklist.Clauses))
	for i := range checklist.Clauses {
		findings = append(findings, e.evaluateClause(&checklist.Clauses[i], sections, lemmas))
	}
	return findings
}

// clauseChecks tracks the outcome of each applicable check for one clause.
type clauseChecks struct {
	applicable int
	passed     int
	hardFail   bool
}

func (c *clauseChecks) record(ok, hard bool) {
	c.applicable++
	if ok {
		c.passed++
	} else if hard {
		c.hardFail = true
	}
}

// evaluateClause runs the check ladder for one clause pattern.
func (e *Evaluator) evaluateClause(clause *domain.ClausePattern, sections []textnorm.Section, lemmas []string) domain.ClauseFinding {
	candidates := e.candidateSections(clause, sections)

	var checks clauseChecks

	// Required phrases: each must appear in at least one candidate section.
	for _, phrase := range clause.MustInclude {
		ok, err := e.anySectionMatches(phrase, candidates)
		if err != nil {
			logger.Warn("clause %q: %v; skipping pattern", clause.Name, err)
			continue
		}
		checks.record(ok, true)
	}

	// Forbidden phrases: none may appear in any candidate section.
	for _, phrase := range clause.MustNotInclude {
		ok, err := e.anySectionMatches(phrase, candidates)
		if err != nil {
			logger.Warn("clause %q: %v; skipping pattern", clause.Name, err)
			continue
		}
		checks.record(!ok, true)
	}

	// Numeric bounds over candidate sections.
	if clause.NumberBounds != nil {
		checks.record(checkNumberBounds(clause.NumberBounds, candidates), true)
	}

	// Logic expression over the whole document's lemma sequence.
	if clause.Logic != nil {
		expr, err := logic.Compile(clause.Logic)
		if err != nil {
			// Registration validates logic shapes, so this is a defect.
			logger.Warn("clause %q: %v; skipping logic check", clause.Name, err)
		} else {
			checks.record(expr.Evaluate(lemmas, clause.Synonyms), true)
		}
	}

	// Advisory phrases affect only the score.
	for _, phrase := range clause.ShouldInclude {
		ok, err := e.anySectionMatches(phrase, candidates)
		if err != nil {
			logger.Warn("clause %q: %v; skipping pattern", clause.Name, err)
			continue
		}
		checks.record(ok, false)
	}

	finding := domain.ClauseFinding{
		Clause:   clause.Name,
		Severity: clause.Severity,
		Status:   decideStatus(&checks, clause.Severity),
		Score:    scoreOf(&checks),
		Evidence: e.collectEvidence(candidates),
	}
	if finding.Status != domain.StatusPass && finding.Status != domain.StatusNA {
		finding.Rationale = clause.Advice
	}
	return finding
}

// candidateSections scores every section heading against the clause's
// aliases and returns the best-scoring sections, or all sections when no
// heading matches.
func (e *Evaluator) candidateSections(clause *domain.ClausePattern, sections []textnorm.Section) []scoredSection {
	scored := make([]scoredSection, 0, len(sections))
	matched := false
	for _, s := range sections {
		score := headingScore(s.Heading, clause.Aliases)
		if score > 0 {
			matched = true
		}
		scored = append(scored, scoredSection{Section: s, score: score})
	}

	if !matched {
		return scored
	}
	best := scored[:0:0]
	for _, s := range scored {
		if s.score > 0 {
			best = append(best, s)
		}
	}
	return best
}

// scoredSection pairs a section with its alias match quality.
type scoredSection struct {
	textnorm.Section
	score float64
}

// headingScore is 1 when the heading contains any alias case-insensitively,
// else 0.
func headingScore(heading string, aliases []string) float64 {
	lower := strings.ToLower(heading)
	for _, alias := range aliases {
		if alias != "" && strings.Contains(lower, strings.ToLower(alias)) {
			return 1
		}
	}
	return 0
}

// anySectionMatches reports whether the phrase occurs in any candidate
// section.
func (e *Evaluator) anySectionMatches(phrase string, candidates []scoredSection) (bool, error) {
	m, err := e.matchers.get(phrase)
	if err != nil {
		return false, err
	}
	for _, s := range candidates {
		if m.Matches(s.Body) || m.Matches(s.Heading) {
			return true, nil
		}
	}
	return false, nil
}

// checkNumberBounds scans candidate sections for durations and reports
// whether at least one, converted to the bound's unit, falls within
// [min, max]. Open ends default to zero and unbounded.
func checkNumberBounds(bounds *domain.NumberBounds, candidates []scoredSection) bool {
	factor, ok := monthFactors[bounds.Kind]
	if !ok {
		logger.Warn("unknown bound kind %q; skipping numeric check", bounds.Kind)
		return true
	}

	for _, s := range candidates {
		for _, m := range durationPattern.FindAllStringSubmatch(s.Body, -1) {
			value, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			unit := unitOf(m[2])
			months := float64(value) * monthFactors[unit]
			converted := months / factor

			if bounds.Min != nil && converted < *bounds.Min {
				continue
			}
			if bounds.Max != nil && converted > *bounds.Max {
				continue
			}
			return true
		}
	}
	return false
}

func unitOf(word string) domain.BoundKind {
	switch strings.ToLower(word) {
	case "day":
		return domain.BoundDays
	case "year":
		return domain.BoundYears
	default:
		return domain.BoundMonths
	}
}

// decideStatus applies the status ladder: PASS when every applicable check
// passed, NA when nothing was applicable, FAIL for hard failures at
// non-LOW severity, WARN otherwise.
func decideStatus(checks *clauseChecks, severity domain.Severity) domain.FindingStatus {
	if checks.applicable == 0 {
		return domain.StatusNA
	}
	if checks.passed == checks.applicable {
		return domain.StatusPass
	}
	if checks.hardFail && severity.Level != domain.SeverityLow {
		return domain.StatusFail
	}
	return domain.StatusWarn
}

// scoreOf is the fraction of applicable checks that passed.
func scoreOf(checks *clauseChecks) float64 {
	if checks.applicable == 0 {
		return 1
	}
	return float64(checks.passed) / float64(checks.applicable)
}

// collectEvidence keeps the first one or two candidate sections, each
// truncated at a sentence boundary.
func (e *Evaluator) collectEvidence(candidates []scoredSection) []domain.ExtractedSpan {
	n := len(candidates)
	if n > maxEvidenceSpans {
		n = maxEvidenceSpans
	}
	spans := make([]domain.ExtractedSpan, 0, n)
	for _, s := range candidates[:n] {
		spans = append(spans, domain.ExtractedSpan{
			Heading:      s.Heading,
			Text:         sentence.Truncate(e.segmenter, s.Body, e.evidenceLimit),
			Start:        s.Start,
			End:          s.End,
			HeadingScore: s.score,
		})
	}
	return spans
}
