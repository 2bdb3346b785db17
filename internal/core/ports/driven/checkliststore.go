package driven

import (
	"context"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

// ChecklistStore loads checklist definitions from an external source
// (typically JSON files on disk). Definitions failing structural validation
// are reported, not returned: a structurally invalid checklist must never
// reach the registry.
type ChecklistStore interface {
	// LoadAll returns every valid checklist definition found.
	LoadAll(ctx context.Context) ([]domain.Checklist, error)

	// Watch invokes onChange with each checklist that is added or modified
	// after the initial load. Implementations that cannot watch return
	// domain.ErrNotFound and callers degrade to static loading.
	Watch(ctx context.Context, onChange func(domain.Checklist)) error

	// Close releases watch resources.
	Close() error
}
