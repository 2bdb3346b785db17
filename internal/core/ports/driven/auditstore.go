package driven

import (
	"context"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

// AuditStore is the append-only sink for review audit records.
// Implementations must never persist raw document content.
type AuditStore interface {
	// Append writes one audit record.
	Append(ctx context.Context, record domain.AuditRecord) error

	// List returns the most recent records, newest first.
	List(ctx context.Context, limit int) ([]domain.AuditRecord, error)

	// Close releases the underlying storage.
	Close() error
}
