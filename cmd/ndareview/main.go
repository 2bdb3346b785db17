// Command ndareview reviews NDA text against clause checklists and builds
// tracked-change DOCX redlines.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	auditsqlite "github.com/ZaBrisket/ndareview/internal/adapters/driven/audit/sqlite"
	checklistfile "github.com/ZaBrisket/ndareview/internal/adapters/driven/checklists/file"
	configfile "github.com/ZaBrisket/ndareview/internal/adapters/driven/config/file"
	"github.com/ZaBrisket/ndareview/internal/adapters/driving/cli"
	"github.com/ZaBrisket/ndareview/internal/analysis/sentence"
	"github.com/ZaBrisket/ndareview/internal/checklists/builtin"
	"github.com/ZaBrisket/ndareview/internal/core/ports/driven"
	"github.com/ZaBrisket/ndareview/internal/core/services"
	"github.com/ZaBrisket/ndareview/internal/logger"
	"github.com/ZaBrisket/ndareview/internal/redline"
)

// version is overridden at link time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	registry := services.NewRegistry()
	if err := builtin.Register(registry); err != nil {
		return err
	}

	checklistDir := cfg.GetString(configfile.KeyChecklistDir)
	if checklistDir == "" {
		checklistDir = filepath.Join(filepath.Dir(cfg.Path()), "checklists")
	}
	checklistStore, err := checklistfile.NewStore(checklistDir)
	if err != nil {
		return fmt.Errorf("opening checklist store: %w", err)
	}
	defer checklistStore.Close()

	checklists, err := checklistStore.LoadAll(context.Background())
	if err != nil {
		logger.Warn("Loading checklists from %s: %v", checklistDir, err)
	}
	for _, checklist := range checklists {
		if err := registry.Register(checklist); err != nil {
			logger.Warn("Rejected checklist %s@%s: %v", checklist.ID, checklist.Version, err)
		}
	}

	// A broken audit store degrades to reviewing without an audit trail.
	var audit driven.AuditStore
	if store, err := auditsqlite.NewStore(cfg.GetString(configfile.KeyDataDir)); err != nil {
		logger.Warn("Audit store unavailable: %v", err)
	} else {
		audit = store
		defer store.Close()
	}

	var evalOpts []services.EvaluatorOption
	if limit := cfg.GetInt(configfile.KeyEvidenceLimit); limit > 0 {
		evalOpts = append(evalOpts, services.WithEvidenceLimit(limit))
	}
	evaluator := services.NewEvaluator(sentence.NewUnicode(), evalOpts...)

	cli.SetVersion(version)
	cli.Configure(cli.Services{
		Review:            services.NewReviewService(registry, evaluator, audit),
		Redline:           redline.NewBuilder(),
		Registry:          registry,
		Audit:             audit,
		Checklist:         checklistStore,
		RegisterChecklist: registry.Register,
	})
	return cli.Execute()
}
