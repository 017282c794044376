// Package export produces a document's combined text from the cache
// snapshot, so export never opens pages one at a time. When the cache
// cannot be loaded it degrades to direct per-page reads: slower, always
// correct.
package export

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jordanlucero/scanclean/doc"
	"github.com/jordanlucero/scanclean/pagecache"
)

// Stats aggregates the per-page statistics of an export.
type Stats struct {
	Pages int
	Words int
	Chars int
}

// Service builds exports for documents.
type Service struct {
	cache *pagecache.Service
	log   *slog.Logger
}

func NewService(cache *pagecache.Service, log *slog.Logger) *Service {
	return &Service{cache: cache, log: log}
}

// Text returns the document's pages combined in reading order with form
// feed separators, plus aggregate statistics.
func (s *Service) Text(ctx context.Context, d *doc.Document) (string, Stats, error) {
	c, err := s.cache.Load(ctx, d.ID)
	if err != nil {
		s.log.Warn("export falling back to direct page reads", "doc_id", d.ID, "error", err)
		c = &pagecache.Cache{Version: pagecache.FormatVersion}
		for _, p := range d.Pages {
			c.Entries = append(c.Entries, pagecache.NewEntry(p))
		}
	}

	var b strings.Builder
	stats := Stats{Pages: len(c.Entries)}
	for i := range c.Entries {
		e := &c.Entries[i]
		if i > 0 {
			b.WriteString("\f")
		}
		b.WriteString(e.Text.String())
		stats.Words += e.WordCount
		stats.Chars += e.CharCount
	}
	return b.String(), stats, nil
}
