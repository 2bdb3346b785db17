// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ChecklistStore: Checklist definition loading and hot reload
//   - ConfigStore: Application configuration
//   - SentenceSegmenter: Sentence boundaries for evidence truncation
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AuditStore: Review audit trail. Without it, reviews run but no
//     audit records are written.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or analysis package
package driven
