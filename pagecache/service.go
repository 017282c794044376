package pagecache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jordanlucero/scanclean/doc"
	"github.com/jordanlucero/scanclean/richtext"
)

// Service owns cache lifecycle and mutation. Every mutation loads the whole
// blob, edits a local copy, and saves it back in one write; mutations are
// serialized per document because they interleave badly otherwise.
type Service struct {
	store BlobStore
	log   *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store BlobStore, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}
}

// lock acquires the per-document mutation lock and returns its release.
func (s *Service) lock(docID string) func() {
	s.mu.Lock()
	l, ok := s.locks[docID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[docID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Build constructs the cache from the document's in-memory pages in one
// pass and persists it. Used once, when page content first becomes
// available.
func (s *Service) Build(ctx context.Context, d *doc.Document) (*Cache, error) {
	defer s.lock(d.ID)()

	c := &Cache{Version: FormatVersion, Entries: make([]Entry, 0, len(d.Pages))}
	for _, p := range d.Pages {
		c.Entries = append(c.Entries, NewEntry(p))
	}
	c.sort()
	if err := s.save(ctx, d.ID, c); err != nil {
		return nil, err
	}
	s.log.Info("cache built", "doc_id", d.ID, "pages", len(c.Entries))
	return c, nil
}

// Load deserializes the stored blob. It fails soft: a missing blob returns
// ErrCacheMissing, a future-versioned one ErrCacheVersion; callers fall
// back to direct per-page reads on any error.
func (s *Service) Load(ctx context.Context, docID string) (*Cache, error) {
	blob, err := s.store.Load(ctx, docID)
	if err != nil {
		return nil, err
	}
	c, err := Decode(blob)
	if err != nil {
		s.log.Warn("cache blob unusable", "doc_id", docID, "error", err)
		return nil, err
	}
	return c, nil
}

// Save persists a cache snapshot as one atomic blob write. Batch operations
// use it to write once after mutating many entries in memory.
func (s *Service) Save(ctx context.Context, docID string, c *Cache) error {
	defer s.lock(docID)()
	return s.save(ctx, docID, c)
}

// Mutate runs one read-modify-write cycle under the per-document lock:
// load, apply fn to the loaded copy, save. Nothing else can write the blob
// between the load and the save, so batch edits built against the loaded
// snapshot cannot clobber a concurrent mutation.
func (s *Service) Mutate(ctx context.Context, docID string, fn func(*Cache) error) error {
	defer s.lock(docID)()

	c, err := s.Load(ctx, docID)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return s.save(ctx, docID, c)
}

func (s *Service) save(ctx context.Context, docID string, c *Cache) error {
	c.Version = FormatVersion
	blob, err := Encode(c)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, docID, blob); err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	return nil
}

// UpdateOne replaces a single entry's text and recomputes its statistics.
// Used after one page's content changes.
func (s *Service) UpdateOne(ctx context.Context, docID string, ordinal int, text *richtext.Text) error {
	defer s.lock(docID)()

	c, err := s.Load(ctx, docID)
	if err != nil {
		return err
	}
	e := c.Entry(ordinal)
	if e == nil {
		return fmt.Errorf("no cache entry for page %d", ordinal)
	}
	e.Text = text.Clone()
	e.Recount()
	return s.save(ctx, docID, c)
}

// AddEntries appends entries for pages added to an existing document.
func (s *Service) AddEntries(ctx context.Context, docID string, pages []*doc.Page) error {
	defer s.lock(docID)()

	c, err := s.Load(ctx, docID)
	if err != nil {
		return err
	}
	for _, p := range pages {
		c.Entries = append(c.Entries, NewEntry(p))
	}
	c.sort()
	return s.save(ctx, docID, c)
}

// RemoveEntry deletes one entry. It renumbers nothing: the caller must
// apply the same renumbering to document pages and cache (see Renumber)
// before the next cache read.
func (s *Service) RemoveEntry(ctx context.Context, docID string, ordinal int) error {
	defer s.lock(docID)()

	c, err := s.Load(ctx, docID)
	if err != nil {
		return err
	}
	for i := range c.Entries {
		if c.Entries[i].Ordinal == ordinal {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			return s.save(ctx, docID, c)
		}
	}
	return fmt.Errorf("no cache entry for page %d", ordinal)
}

// Renumber reassigns contiguous ordinals starting at 1, preserving order.
// Call after RemoveEntry once the document's pages have been renumbered the
// same way.
func (s *Service) Renumber(ctx context.Context, docID string) error {
	defer s.lock(docID)()

	c, err := s.Load(ctx, docID)
	if err != nil {
		return err
	}
	for i := range c.Entries {
		c.Entries[i].Ordinal = i + 1
	}
	return s.save(ctx, docID, c)
}

// SwapOrdinals exchanges the ordinals of two entries in place, used for
// move-up/move-down reordering.
func (s *Service) SwapOrdinals(ctx context.Context, docID string, a, b int) error {
	defer s.lock(docID)()

	c, err := s.Load(ctx, docID)
	if err != nil {
		return err
	}
	ea, eb := c.Entry(a), c.Entry(b)
	if ea == nil || eb == nil {
		return fmt.Errorf("swap %d,%d: cache entry not found", a, b)
	}
	ea.Ordinal, eb.Ordinal = eb.Ordinal, ea.Ordinal
	c.sort()
	return s.save(ctx, docID, c)
}

// Rebuild regenerates the cache from source pages. It reads every page, so
// it is the recovery path for a missing or unusable blob, not the fast
// path. Entry statistics are computed in parallel.
func (s *Service) Rebuild(ctx context.Context, d *doc.Document) (*Cache, error) {
	defer s.lock(d.ID)()

	entries := make([]Entry, len(d.Pages))
	g, _ := errgroup.WithContext(ctx)
	for i, p := range d.Pages {
		i, p := i, p
		g.Go(func() error {
			entries[i] = NewEntry(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Cache{Version: FormatVersion, Entries: entries}
	c.sort()
	if err := s.save(ctx, d.ID, c); err != nil {
		return nil, err
	}
	s.log.Info("cache rebuilt", "doc_id", d.ID, "pages", len(c.Entries))
	return c, nil
}
