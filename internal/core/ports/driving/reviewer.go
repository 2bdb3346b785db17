package driving

import (
	"context"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

// ReviewService evaluates normalized contract text against a checklist.
type ReviewService interface {
	// Review runs the full pipeline: normalize, section, evaluate every
	// clause, roll up risk and write an audit record. An empty version
	// selects the checklist's current version.
	Review(ctx context.Context, text, checklistID, version string) (*domain.ReviewResult, error)
}

// RedlineService turns accepted edits into a tracked-change document.
type RedlineService interface {
	// Apply folds the request's edits into the document one at a time,
	// producing revision markup attributed to the request's author.
	// Unlocatable edits are reported in the response, never dropped.
	Apply(ctx context.Context, req domain.RedlineRequest) (*domain.RedlineResponse, error)
}

// ChecklistRegistry exposes registered checklists and their migrations.
type ChecklistRegistry interface {
	// Get returns the checklist at the given version, or the current
	// version when version is empty.
	Get(id, version string) (*domain.Checklist, error)

	// List returns the IDs of all registered checklists, sorted.
	List() []string

	// Versions returns the registered versions of one checklist, oldest
	// first.
	Versions(id string) ([]string, error)

	// Migrate re-keys a prior result onto another version of the same
	// checklist using a registered pairwise migration.
	Migrate(result *domain.ReviewResult, toVersion string) (*domain.ReviewResult, error)
}
