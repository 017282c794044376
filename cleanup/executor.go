package cleanup

import (
	"context"
	"log/slog"

	"github.com/jordanlucero/scanclean/analysis"
	"github.com/jordanlucero/scanclean/doc"
	"github.com/jordanlucero/scanclean/pagecache"
	"github.com/jordanlucero/scanclean/richtext"
)

// Executor applies cleanup options to a document and keeps the cache in
// step. Multi-page options mutate the pages first, then update every
// affected cache entry and persist in one read-modify-write cycle under the
// document's cache lock.
type Executor struct {
	cache *pagecache.Service
	log   *slog.Logger
}

func NewExecutor(cache *pagecache.Service, log *slog.Logger) *Executor {
	return &Executor{cache: cache, log: log}
}

// Apply executes one option against the document. It returns the number of
// lines removed. Stale targets whose line is no longer present are skipped
// silently; a missing or unusable cache degrades to rebuilding the blob
// from the mutated pages.
func (e *Executor) Apply(ctx context.Context, d *doc.Document, opt analysis.CleanupOption) (int, error) {
	updated := make(map[int]*richtext.Text)
	for _, t := range opt.Targets {
		page := d.Page(t.Ordinal)
		if page == nil || page.Text == nil {
			continue
		}

		var target string
		var stripNumbers bool
		switch {
		case t.PageNumber != nil:
			target = t.PageNumber.Line
		case t.Header != nil:
			target = t.Header.Header
			stripNumbers = true
		default:
			continue
		}

		txt := page.Text.Clone()
		if !RemoveLine(txt, target, stripNumbers) {
			continue
		}
		page.SetText(txt)
		updated[t.Ordinal] = txt
	}
	removed := len(updated)

	// One write regardless of how many pages changed, with the cache lock
	// held across the load so a concurrent mutation cannot be clobbered.
	if removed > 0 {
		err := e.cache.Mutate(ctx, d.ID, func(c *pagecache.Cache) error {
			for ordinal, txt := range updated {
				if entry := c.Entry(ordinal); entry != nil {
					entry.Text = txt.Clone()
					entry.Recount()
				}
			}
			return nil
		})
		if err != nil {
			e.log.Warn("cache unavailable for cleanup, rebuilding", "doc_id", d.ID, "error", err)
			if _, err := e.cache.Rebuild(ctx, d); err != nil {
				return removed, err
			}
		}
	}

	e.log.Info("cleanup applied", "doc_id", d.ID, "kind", opt.Kind.String(), "removed", removed)
	return removed, nil
}
