// Package redline turns accepted suggested edits into a DOCX package with
// tracked-change revision markup.
package redline

import (
	"context"
	"fmt"
	"time"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
	"github.com/ZaBrisket/ndareview/internal/core/ports/driving"
	"github.com/ZaBrisket/ndareview/internal/logger"
	"github.com/ZaBrisket/ndareview/internal/redline/docxtree"
)

// defaultAuthor attributes revisions when the request names nobody.
const defaultAuthor = "NDA Review"

// Builder applies suggested edits as tracked changes. Edits fold
// sequentially: each edit operates on the document produced by the one
// before it.
type Builder struct {
	now func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the timestamp source for revision attribution.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// NewBuilder creates a redline builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ driving.RedlineService = (*Builder)(nil)

// Apply opens the document, folds every edit into it and returns the
// repacked bytes with tracked changes enabled. Edits whose original text
// cannot be located verbatim are reported in Skipped, never dropped
// silently.
func (b *Builder) Apply(ctx context.Context, req domain.RedlineRequest) (*domain.RedlineResponse, error) {
	if len(req.DocumentBytes) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pkg, err := docxtree.Open(req.DocumentBytes)
	if err != nil {
		return nil, err
	}

	rev := docxtree.Revision{
		Author: req.Author,
		Date:   b.revisionDate(req.Timezone),
	}
	if rev.Author == "" {
		rev.Author = defaultAuthor
	}

	doc := pkg.Document()
	skipped := []domain.SuggestedEdit{}
	for _, edit := range req.Edits {
		if edit.OriginalText == "" {
			afterIndex := -1
			if edit.ParagraphIndex != nil {
				afterIndex = *edit.ParagraphIndex
			}
			doc.InsertParagraph(edit.SuggestedText, afterIndex, rev)
			continue
		}
		if !doc.ReplaceFirst(edit.OriginalText, edit.SuggestedText, rev) {
			logger.Warn("Edit %s: original text not found, skipping", edit.ID)
			skipped = append(skipped, edit)
		}
	}

	if err := pkg.EnableTrackedChanges(); err != nil {
		return nil, err
	}
	out, err := pkg.Bytes()
	if err != nil {
		return nil, err
	}
	return &domain.RedlineResponse{DocumentBytes: out, Skipped: skipped}, nil
}

// revisionDate formats the attribution timestamp in the requested
// timezone, falling back to UTC when the zone is unknown.
func (b *Builder) revisionDate(tz string) string {
	loc := time.UTC
	if tz != "" {
		if parsed, err := time.LoadLocation(tz); err == nil {
			loc = parsed
		} else {
			logger.Warn("Unknown timezone %q, using UTC", tz)
		}
	}
	return b.now().In(loc).Format("2006-01-02T15:04:05Z07:00")
}
