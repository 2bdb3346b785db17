package domain

import "time"

// AuditKindReview is the record kind written for every completed review.
const AuditKindReview = "review"

// AuditRecord is one append-only audit entry. Records identify documents
// only by content hash; raw document text is never logged.
type AuditRecord struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	ChecklistID string    `json:"checklistId"`
	Version     string    `json:"version"`
	DocSHA256   string    `json:"docSha256"`
	CreatedAt   time.Time `json:"createdAt"`
}
