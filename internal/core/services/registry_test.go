package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

func testChecklist(id, version string) domain.Checklist {
	return domain.Checklist{
		ID:        id,
		Version:   version,
		UpdatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Clauses: []domain.ClausePattern{
			{Name: "Term", Aliases: []string{"term"}, Severity: domain.Severity{Weight: 5, Level: domain.SeverityWarn}},
			{Name: "Governing Law", Aliases: []string{"governing law"}, Severity: domain.Severity{Weight: 3, Level: domain.SeverityLow}},
		},
	}
}

// TestRegistry_RegisterAndGet tests registration and version lookup
func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testChecklist("standard-nda", "2024-01")))

	got, err := r.Get("standard-nda", "2024-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", got.Version)
	assert.Len(t, got.Clauses, 2)
}

// TestRegistry_CurrentVersion tests that empty version selects the latest registration
func TestRegistry_CurrentVersion(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testChecklist("standard-nda", "2023-06")))
	require.NoError(t, r.Register(testChecklist("standard-nda", "2024-01")))

	got, err := r.Get("standard-nda", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-01", got.Version)
}

// TestRegistry_UnknownChecklist tests the unknown-ID error
func TestRegistry_UnknownChecklist(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope", "")
	assert.ErrorIs(t, err, domain.ErrUnknownChecklist)
}

// TestRegistry_UnknownVersion tests the unknown-version error
func TestRegistry_UnknownVersion(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testChecklist("standard-nda", "2024-01")))

	_, err := r.Get("standard-nda", "1999-01")
	assert.ErrorIs(t, err, domain.ErrUnknownVersion)
}

// TestRegistry_RejectsStructuralDefects tests load-time validation
func TestRegistry_RejectsStructuralDefects(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name      string
		checklist domain.Checklist
	}{
		{"missing id", domain.Checklist{Version: "1", Clauses: []domain.ClausePattern{{Name: "x"}}}},
		{"missing version", domain.Checklist{ID: "c", Clauses: []domain.ClausePattern{{Name: "x"}}}},
		{"no clauses", domain.Checklist{ID: "c", Version: "1"}},
		{"unnamed clause", domain.Checklist{ID: "c", Version: "1", Clauses: []domain.ClausePattern{{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, r.Register(tt.checklist))
		})
	}
}

// TestRegistry_RejectsBadLogic tests fail-fast logic compilation at registration
func TestRegistry_RejectsBadLogic(t *testing.T) {
	r := NewRegistry()
	checklist := testChecklist("standard-nda", "2024-01")
	checklist.Clauses[0].Logic = &domain.LogicNode{Op: "MAYBE"}

	err := r.Register(checklist)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidLogic)

	// The defective checklist must not be registered at all.
	_, err = r.Get("standard-nda", "")
	assert.ErrorIs(t, err, domain.ErrUnknownChecklist)
}

// TestRegistry_MigrationFidelity tests finding count and annotation invariants
func TestRegistry_MigrationFidelity(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testChecklist("standard-nda", "2023-06")))
	require.NoError(t, r.Register(testChecklist("standard-nda", "2024-01")))
	r.RegisterMigration("standard-nda", "2023-06", "2024-01", func(res *domain.ReviewResult) *domain.ReviewResult {
		for i := range res.Findings {
			res.Findings[i].Notes = append(res.Findings[i].Notes, "migrated from 2023-06")
		}
		return res
	})

	original := &domain.ReviewResult{
		ChecklistID:      "standard-nda",
		ChecklistVersion: "2023-06",
		Findings: []domain.ClauseFinding{
			{Clause: "Term", Status: domain.StatusFail, Score: 0},
			{Clause: "Governing Law", Status: domain.StatusPass, Score: 1},
		},
	}

	migrated, err := r.Migrate(original, "2024-01")
	require.NoError(t, err)

	assert.Len(t, migrated.Findings, len(original.Findings))
	assert.Equal(t, "2024-01", migrated.ChecklistVersion)
	for i, f := range migrated.Findings {
		assert.Equal(t, original.Findings[i].Clause, f.Clause)
		assert.NotEmpty(t, f.Notes)
	}

	// The original result is untouched.
	assert.Empty(t, original.Findings[0].Notes)
	assert.Equal(t, "2023-06", original.ChecklistVersion)
}

// TestRegistry_NoMigrationPath tests the explicit no-migration error
func TestRegistry_NoMigrationPath(t *testing.T) {
	r := NewRegistry()
	result := &domain.ReviewResult{ChecklistID: "standard-nda", ChecklistVersion: "2020-01"}

	_, err := r.Migrate(result, "2024-01")
	assert.ErrorIs(t, err, domain.ErrNoMigration)
}

// TestRegistry_MigrationMustAnnotate tests rejection of silent migrations
func TestRegistry_MigrationMustAnnotate(t *testing.T) {
	r := NewRegistry()
	r.RegisterMigration("standard-nda", "a", "b", func(res *domain.ReviewResult) *domain.ReviewResult {
		return res // no notes appended
	})

	result := &domain.ReviewResult{
		ChecklistID:      "standard-nda",
		ChecklistVersion: "a",
		Findings:         []domain.ClauseFinding{{Clause: "Term"}},
	}
	_, err := r.Migrate(result, "b")
	assert.Error(t, err)
}

// TestPickVariant tests the content-addressed coin flip (Scenario C)
func TestPickVariant(t *testing.T) {
	tests := []struct {
		hash string
		want domain.Variant
	}{
		{"deadbeefa", domain.VariantA}, // a = 10, even
		{"deadbeefb", domain.VariantB}, // b = 11, odd
		{"00", domain.VariantA},
		{"0f", domain.VariantB},
		{"1", domain.VariantB},
		{"", domain.VariantA},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PickVariant(tt.hash), tt.hash)
	}
}

// TestRegistry_List tests sorted ID listing
func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testChecklist("zeta", "1")))
	require.NoError(t, r.Register(testChecklist("alpha", "1")))

	assert.Equal(t, []string{"alpha", "zeta"}, r.List())
}

// TestRegistry_Versions tests registration-order version listing
func TestRegistry_Versions(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testChecklist("standard-nda", "2023-06")))
	require.NoError(t, r.Register(testChecklist("standard-nda", "2024-01")))

	versions, err := r.Versions("standard-nda")
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-06", "2024-01"}, versions)

	_, err = r.Versions("missing")
	assert.ErrorIs(t, err, domain.ErrUnknownChecklist)
}
