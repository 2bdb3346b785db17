package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

var (
	redlineEdits    string
	redlineAuthor   string
	redlineTimezone string
	redlineOut      string
)

var redlineCmd = &cobra.Command{
	Use:   "redline [document.docx]",
	Short: "Apply suggested edits to a DOCX as tracked changes",
	Long: `Reads a DOCX document and a JSON file of suggested edits, applies each
edit as a tracked-change revision and writes the revised document. Edits
whose original text cannot be located verbatim are reported and skipped,
never silently dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runRedline,
}

func init() {
	redlineCmd.Flags().StringVarP(&redlineEdits, "edits", "e", "", "JSON file with the suggested edits array (required)")
	redlineCmd.Flags().StringVarP(&redlineAuthor, "author", "a", "", "revision author name")
	redlineCmd.Flags().StringVar(&redlineTimezone, "timezone", "", "IANA timezone for revision timestamps")
	redlineCmd.Flags().StringVarP(&redlineOut, "out", "o", "", "output path (default: <document>.redline.docx)")
	_ = redlineCmd.MarkFlagRequired("edits")
	rootCmd.AddCommand(redlineCmd)
}

func runRedline(cmd *cobra.Command, args []string) error {
	if redlineService == nil {
		return errors.New("redline service not configured")
	}

	docPath := args[0]
	docBytes, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", docPath, err)
	}

	edits, err := readEdits(redlineEdits)
	if err != nil {
		return err
	}

	resp, err := redlineService.Apply(context.Background(), domain.RedlineRequest{
		DocumentBytes: docBytes,
		Edits:         edits,
		Author:        redlineAuthor,
		Timezone:      redlineTimezone,
	})
	if err != nil {
		return fmt.Errorf("redline failed: %w", err)
	}

	outPath := redlineOut
	if outPath == "" {
		outPath = strings.TrimSuffix(docPath, ".docx") + ".redline.docx"
	}
	if err := os.WriteFile(outPath, resp.DocumentBytes, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	applied := len(edits) - len(resp.Skipped)
	cmd.Printf("Wrote %s (%d edit(s) applied, %d skipped)\n", outPath, applied, len(resp.Skipped))
	for _, edit := range resp.Skipped {
		cmd.Printf("  skipped %s (%s): original text not found\n", edit.ID, edit.ClauseType)
	}
	return nil
}

// readEdits loads a JSON array of suggested edits.
func readEdits(path string) ([]domain.SuggestedEdit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var edits []domain.SuggestedEdit
	if err := json.Unmarshal(data, &edits); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return edits, nil
}
