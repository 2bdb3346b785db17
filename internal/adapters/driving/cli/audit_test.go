package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

func TestAuditCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"audit"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No audit records.")
}

func TestAuditCmd_ListsRecords(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	auditStore = &stubAudit{records: []domain.AuditRecord{{
		ID:          "r1",
		Kind:        domain.AuditKindReview,
		ChecklistID: "standard-nda",
		Version:     "2024-01",
		DocSHA256:   "abcdef0123456789",
		CreatedAt:   time.Date(2026, 8, 27, 9, 30, 0, 0, time.UTC),
	}}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"audit"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "2026-08-27 09:30:00")
	assert.Contains(t, out, "review")
	assert.Contains(t, out, "standard-nda@2024-01")
	assert.Contains(t, out, "abcdef012345")
}
