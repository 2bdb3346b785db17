// Package domain defines the core business entities for the NDA review engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Checklist / ClausePattern: a versioned set of checkable requirements
//   - LogicNode: a boolean/proximity expression over lemmatized tokens
//   - ClauseFinding / ReviewResult: the per-clause and per-document outcomes
//   - SuggestedEdit / RedlineRequest: human-selected edits for redlining
//   - DocumentContext: best-effort party/jurisdiction metadata
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
