package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
	"github.com/ZaBrisket/ndareview/internal/logger"
)

var (
	reviewChecklist string
	reviewVersion   string
	reviewJSON      bool
	reviewWatch     bool
)

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Evaluate contract text against a clause checklist",
	Long: `Reads plain contract text from a file (or stdin with "-"), evaluates
every clause of the selected checklist and prints per-clause findings with
an aggregate risk level.

With --watch, the review re-runs whenever a checklist definition in the
checklist directory changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewChecklist, "checklist", "c", "standard-nda", "checklist ID to evaluate against")
	reviewCmd.Flags().StringVar(&reviewVersion, "checklist-version", "", "checklist version (default: current)")
	reviewCmd.Flags().BoolVar(&reviewJSON, "json", false, "output the result as JSON")
	reviewCmd.Flags().BoolVar(&reviewWatch, "watch", false, "re-run when checklist definitions change")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	if reviewService == nil {
		return errors.New("review service not configured")
	}

	text, err := readInput(args[0])
	if err != nil {
		return err
	}

	if err := reviewOnce(cmd, text); err != nil {
		return err
	}
	if !reviewWatch {
		return nil
	}
	return watchAndReview(cmd, text)
}

func reviewOnce(cmd *cobra.Command, text string) error {
	result, err := reviewService.Review(context.Background(), text, reviewChecklist, reviewVersion)
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}

	if reviewJSON {
		return outputReviewJSON(cmd, result)
	}
	outputReviewText(cmd, result)
	return nil
}

// watchAndReview re-runs the review each time the checklist store reports
// a changed definition. Blocks until interrupted.
func watchAndReview(cmd *cobra.Command, text string) error {
	if checklistStore == nil || registerChecklist == nil {
		return errors.New("checklist watching not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Println("Watching for checklist changes (ctrl-c to stop)...")
	err := checklistStore.Watch(ctx, func(checklist domain.Checklist) {
		if err := registerChecklist(checklist); err != nil {
			logger.Warn("Rejected checklist %s@%s: %v", checklist.ID, checklist.Version, err)
			return
		}
		cmd.Printf("\nChecklist %s@%s reloaded\n\n", checklist.ID, checklist.Version)
		if err := reviewOnce(cmd, text); err != nil {
			logger.Warn("Re-review failed: %v", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watching checklists: %w", err)
	}
	return nil
}

// readInput reads the document text from a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func outputReviewJSON(cmd *cobra.Command, result *domain.ReviewResult) error {
	payload := struct {
		*domain.ReviewResult
		Disclaimer string `json:"disclaimer"`
	}{result, domain.Disclaimer}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputReviewText(cmd *cobra.Command, result *domain.ReviewResult) {
	cmd.Printf("Checklist: %s@%s  Risk: %s (score %d, %d blocker(s), %d warning(s))\n",
		result.ChecklistID, result.ChecklistVersion,
		result.Risk.Level, result.Risk.Score, result.Risk.Blockers, result.Risk.Warns)
	cmd.Println()

	for _, f := range result.Findings {
		cmd.Printf("  [%s] %s (%.0f%%)\n", f.Status, f.Clause, f.Score*100)
		if f.Rationale != "" {
			cmd.Printf("        %s\n", f.Rationale)
		}
		for _, span := range f.Evidence {
			preview := span.Text
			if i := strings.IndexByte(preview, '\n'); i >= 0 {
				preview = preview[:i]
			}
			cmd.Printf("        > %s: %s\n", span.Heading, preview)
		}
		for _, note := range f.Notes {
			cmd.Printf("        note: %s\n", note)
		}
	}

	cmd.Println()
	if len(result.Context.PartyStates) > 0 {
		cmd.Printf("Parties incorporated in: %s\n", strings.Join(result.Context.PartyStates, ", "))
	}
	if result.Context.GoverningLaw != "" {
		cmd.Printf("Governing law: %s\n", result.Context.GoverningLaw)
	}
	cmd.Printf("Stats: %d tokens, ~%d page(s), %dms\n",
		result.Stats.Tokens, result.Stats.Pages, result.Stats.ProcessingMs)
	cmd.Println()
	cmd.Println(domain.Disclaimer)
}
