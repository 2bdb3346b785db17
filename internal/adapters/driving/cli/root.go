// Package cli wires the review, redline and checklist services to cobra
// commands. Services are injected once via Configure before Execute runs;
// commands never construct adapters themselves.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
	"github.com/ZaBrisket/ndareview/internal/core/ports/driven"
	"github.com/ZaBrisket/ndareview/internal/core/ports/driving"
	"github.com/ZaBrisket/ndareview/internal/logger"
)

// version is the build version, set at link time or via SetVersion.
var version = "dev"

// Injected services. Nil services make their commands fail with a clear
// error instead of panicking.
var (
	reviewService     driving.ReviewService
	redlineService    driving.RedlineService
	checklistRegistry driving.ChecklistRegistry
	auditStore        driven.AuditStore
	checklistStore    driven.ChecklistStore
	registerChecklist func(domain.Checklist) error
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ndareview",
	Short: "Review NDA text against clause checklists and build tracked-change redlines",
	Long: `ndareview evaluates contract text against versioned clause checklists,
rolls findings up into a risk summary, and turns accepted suggested edits
into a DOCX with tracked changes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Services bundles everything the commands need.
type Services struct {
	Review    driving.ReviewService
	Redline   driving.RedlineService
	Registry  driving.ChecklistRegistry
	Audit     driven.AuditStore
	Checklist driven.ChecklistStore

	// RegisterChecklist installs a checklist into the registry; the watch
	// path uses it to apply hot reloads.
	RegisterChecklist func(domain.Checklist) error
}

// Configure injects the services used by all commands.
func Configure(s Services) {
	reviewService = s.Review
	redlineService = s.Redline
	checklistRegistry = s.Registry
	auditStore = s.Audit
	checklistStore = s.Checklist
	registerChecklist = s.RegisterChecklist
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
