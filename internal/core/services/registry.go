package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ZaBrisket/ndareview/internal/analysis/logic"
	"github.com/ZaBrisket/ndareview/internal/core/domain"
	"github.com/ZaBrisket/ndareview/internal/core/ports/driving"
)

// Ensure Registry implements the interface.
var _ driving.ChecklistRegistry = (*Registry)(nil)

// Migration rewrites a review result produced under one checklist version
// so it can be read against another. Migrations must preserve finding count
// and clause identity; they annotate findings rather than rewriting scores.
type Migration func(result *domain.ReviewResult) *domain.ReviewResult

// migrationKey identifies one directed migration edge.
type migrationKey struct {
	id       string
	from, to string
}

// Registry holds named, versioned checklists and their pairwise migrations.
// Checklists are immutable once registered. Safe for concurrent use; the
// checklist watcher re-registers definitions at runtime.
type Registry struct {
	mu         sync.RWMutex
	checklists map[string]map[string]*domain.Checklist
	current    map[string]string
	order      map[string][]string
	migrations map[migrationKey]Migration
}

// NewRegistry creates an empty checklist registry.
func NewRegistry() *Registry {
	return &Registry{
		checklists: make(map[string]map[string]*domain.Checklist),
		current:    make(map[string]string),
		order:      make(map[string][]string),
		migrations: make(map[migrationKey]Migration),
	}
}

// Register validates and stores a checklist version. Structural defects —
// missing identity, no clauses, or a clause logic expression that fails to
// compile — reject the whole checklist. Registering an (id, version) pair
// again replaces it; the most recently registered version becomes current.
func (r *Registry) Register(checklist domain.Checklist) error {
	if checklist.ID == "" || checklist.Version == "" {
		return fmt.Errorf("%w: checklist requires id and version", domain.ErrInvalidChecklist)
	}
	if len(checklist.Clauses) == 0 {
		return fmt.Errorf("%w: checklist %q has no clauses", domain.ErrInvalidChecklist, checklist.ID)
	}
	for i, clause := range checklist.Clauses {
		if clause.Name == "" {
			return fmt.Errorf("%w: clause %d of %q has no name", domain.ErrInvalidChecklist, i, checklist.ID)
		}
		if clause.Logic != nil {
			if _, err := logic.Compile(clause.Logic); err != nil {
				return fmt.Errorf("checklist %q clause %q: %w", checklist.ID, clause.Name, err)
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	versions, ok := r.checklists[checklist.ID]
	if !ok {
		versions = make(map[string]*domain.Checklist)
		r.checklists[checklist.ID] = versions
	}
	if _, replaced := versions[checklist.Version]; !replaced {
		r.order[checklist.ID] = append(r.order[checklist.ID], checklist.Version)
	}
	stored := checklist
	versions[checklist.Version] = &stored
	r.current[checklist.ID] = checklist.Version
	return nil
}

// Get returns the checklist at the given version, or the current version
// when version is empty.
func (r *Registry) Get(id, version string) (*domain.Checklist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.checklists[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownChecklist, id)
	}
	if version == "" {
		version = r.current[id]
	}
	checklist, ok := versions[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s@%s", domain.ErrUnknownVersion, id, version)
	}
	return checklist, nil
}

// List returns the IDs of all registered checklists, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.checklists))
	for id := range r.checklists {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Versions returns the registered versions of one checklist in
// registration order.
func (r *Registry) Versions(id string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.checklists[id]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownChecklist, id)
	}
	out := make([]string, len(r.order[id]))
	copy(out, r.order[id])
	return out, nil
}

// RegisterMigration declares a directed migration edge between two versions
// of a checklist. Only direct edges exist; multi-hop paths are not resolved.
func (r *Registry) RegisterMigration(id, from, to string, fn Migration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.migrations[migrationKey{id: id, from: from, to: to}] = fn
}

// GetMigration returns the direct migration between two versions, if one
// was registered.
func (r *Registry) GetMigration(id, from, to string) (Migration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.migrations[migrationKey{id: id, from: from, to: to}]
	return fn, ok
}

// Migrate re-keys a review result onto another version of its checklist.
// Absence of a direct migration edge is the explicit ErrNoMigration
// condition; the registry never guesses an upgrade or downgrade path.
// The migration invariant (finding count and clause identity preserved)
// is enforced after the function runs.
func (r *Registry) Migrate(result *domain.ReviewResult, toVersion string) (*domain.ReviewResult, error) {
	if result == nil {
		return nil, domain.ErrInvalidInput
	}
	if result.ChecklistVersion == toVersion {
		return result, nil
	}

	fn, ok := r.GetMigration(result.ChecklistID, result.ChecklistVersion, toVersion)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s->%s", domain.ErrNoMigration,
			result.ChecklistID, result.ChecklistVersion, toVersion)
	}

	migrated := fn(cloneResult(result))
	if err := checkMigrated(result, migrated, toVersion); err != nil {
		return nil, err
	}
	return migrated, nil
}

// checkMigrated enforces the migration invariants.
func checkMigrated(before, after *domain.ReviewResult, toVersion string) error {
	if after == nil || len(after.Findings) != len(before.Findings) {
		return fmt.Errorf("%w: migration changed finding count", domain.ErrInvalidInput)
	}
	for i := range after.Findings {
		if after.Findings[i].Clause != before.Findings[i].Clause {
			return fmt.Errorf("%w: migration changed clause identity at %d", domain.ErrInvalidInput, i)
		}
		if len(after.Findings[i].Notes) <= len(before.Findings[i].Notes) {
			return fmt.Errorf("%w: migration must annotate finding %q", domain.ErrInvalidInput, after.Findings[i].Clause)
		}
	}
	after.ChecklistVersion = toVersion
	return nil
}

// cloneResult deep-copies a result so migrations never mutate the original.
func cloneResult(r *domain.ReviewResult) *domain.ReviewResult {
	out := *r
	out.Findings = make([]domain.ClauseFinding, len(r.Findings))
	for i, f := range r.Findings {
		cf := f
		cf.Evidence = append([]domain.ExtractedSpan(nil), f.Evidence...)
		cf.Notes = append([]string(nil), f.Notes...)
		out.Findings[i] = cf
	}
	return &out
}

// PickVariant deterministically selects a wording variant from a document's
// hex content hash: 'A' when the last nibble is even, 'B' when odd. Unknown
// trailing characters fall back to 'A'.
func PickVariant(docHashHex string) domain.Variant {
	if docHashHex == "" {
		return domain.VariantA
	}
	c := docHashHex[len(docHashHex)-1]
	var nibble byte
	switch {
	case c >= '0' && c <= '9':
		nibble = c - '0'
	case c >= 'a' && c <= 'f':
		nibble = c - 'a' + 10
	case c >= 'A' && c <= 'F':
		nibble = c - 'A' + 10
	default:
		return domain.VariantA
	}
	if nibble%2 == 0 {
		return domain.VariantA
	}
	return domain.VariantB
}
