package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

func TestRedlineCmd_Use(t *testing.T) {
	assert.Equal(t, "redline [document.docx]", redlineCmd.Use)
}

func TestRedlineCmd_RequiresEditsFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"redline", "doc.docx"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "edits")
}

func TestRedlineCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	docPath := filepath.Join(dir, "nda.docx")
	require.NoError(t, os.WriteFile(docPath, []byte("fake docx"), 0600))
	editsPath := filepath.Join(dir, "edits.json")
	require.NoError(t, os.WriteFile(editsPath, []byte(`[
	  {"id": "e1", "clauseType": "Term", "originalText": "thirty-six", "suggestedText": "twenty-four"}
	]`), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"redline", "--edits", editsPath, "--author", "Jordan", docPath})
	defer func() {
		rootCmd.SetArgs(nil)
		redlineEdits = ""
		redlineAuthor = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1 edit(s) applied, 0 skipped")

	outPath := filepath.Join(dir, "nda.redline.docx")
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "REDLINED", string(data))

	stub := redlineService.(*stubRedline)
	assert.Equal(t, "Jordan", stub.got.Author)
	require.Len(t, stub.got.Edits, 1)
	assert.Equal(t, "thirty-six", stub.got.Edits[0].OriginalText)
}

func TestRedlineCmd_ReportsSkipped(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	redlineService = &stubRedline{resp: &domain.RedlineResponse{
		DocumentBytes: []byte("REDLINED"),
		Skipped: []domain.SuggestedEdit{
			{ID: "e1", ClauseType: "Term", OriginalText: "absent"},
		},
	}}

	dir := t.TempDir()
	docPath := filepath.Join(dir, "nda.docx")
	require.NoError(t, os.WriteFile(docPath, []byte("fake docx"), 0600))
	editsPath := filepath.Join(dir, "edits.json")
	require.NoError(t, os.WriteFile(editsPath, []byte(`[{"id": "e1", "clauseType": "Term", "originalText": "absent", "suggestedText": "x"}]`), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"redline", "--edits", editsPath, docPath})
	defer func() {
		rootCmd.SetArgs(nil)
		redlineEdits = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "0 edit(s) applied, 1 skipped")
	assert.Contains(t, out, "skipped e1 (Term)")
}
