// Package services implements the driving port interfaces.
// Services contain the core review logic - checklist registry, clause
// evaluation, risk rollup - and orchestrate calls to driven ports.
//
// The evaluation core is deliberately singular: every caller reaches the
// same Evaluator, so a checklist produces identical findings no matter
// which surface asked for the review.
package services
