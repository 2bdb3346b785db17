// Package file loads checklist definitions from JSON files in a directory.
// Every definition is validated against an embedded JSON Schema before it is
// handed to the registry; files that fail validation are reported and
// skipped so one broken checklist never takes the rest down.
package file

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/xeipuuv/gojsonschema"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
	"github.com/ZaBrisket/ndareview/internal/core/ports/driven"
	"github.com/ZaBrisket/ndareview/internal/logger"
)

//go:embed schema.json
var checklistSchema []byte

// Store reads checklist JSON files from a single directory.
type Store struct {
	dir    string
	schema *gojsonschema.Schema

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

var _ driven.ChecklistStore = (*Store)(nil)

// NewStore creates a checklist store over the given directory. The schema
// is compiled once; a schema that fails to compile is a build defect, not
// a runtime condition.
func NewStore(dir string) (*Store, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(checklistSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling checklist schema: %w", err)
	}
	return &Store{dir: dir, schema: schema}, nil
}

// LoadAll returns every valid checklist definition in the directory.
// A missing directory is treated as empty.
func (s *Store) LoadAll(_ context.Context) ([]domain.Checklist, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading checklist directory: %w", err)
	}

	var checklists []domain.Checklist //nolint:prealloc // most entries may be skipped
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		checklist, err := s.loadFile(path)
		if err != nil {
			logger.Warn("Skipping checklist %s: %v", entry.Name(), err)
			continue
		}
		checklists = append(checklists, checklist)
	}
	return checklists, nil
}

// Watch invokes onChange with each checklist file that is written or
// created after the initial load. Invalid files are reported and ignored.
// Watch blocks until ctx is cancelled or the store is closed.
func (s *Store) Watch(ctx context.Context, onChange func(domain.Checklist)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			checklist, err := s.loadFile(event.Name)
			if err != nil {
				logger.Warn("Ignoring checklist change %s: %v", filepath.Base(event.Name), err)
				continue
			}
			logger.Debug("Checklist %s version %s reloaded", checklist.ID, checklist.Version)
			onChange(checklist)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Checklist watch error: %v", err)
		}
	}
}

// Close stops an active watch.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

// loadFile reads, validates and decodes one checklist file.
func (s *Store) loadFile(path string) (domain.Checklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("reading file: %w", err)
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("%w: %v", domain.ErrInvalidChecklist, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return domain.Checklist{}, fmt.Errorf("%w: %s", domain.ErrInvalidChecklist, strings.Join(details, "; "))
	}

	var checklist domain.Checklist
	if err := json.Unmarshal(data, &checklist); err != nil {
		return domain.Checklist{}, fmt.Errorf("%w: %v", domain.ErrInvalidChecklist, err)
	}
	return checklist, nil
}
