// Package pagecache maintains the consolidated analysis/export cache: one
// serialized blob per document holding every page's text plus precomputed
// statistics, so that analysis and export never open pages one at a time.
package pagecache

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/jordanlucero/scanclean/doc"
	"github.com/jordanlucero/scanclean/richtext"
)

// FormatVersion is the blob layout version this implementation writes.
// Load rejects blobs carrying a newer version.
const FormatVersion = 1

var (
	// ErrCacheMissing means no blob is stored for the document.
	ErrCacheMissing = errors.New("pagecache: no cache stored")
	// ErrCacheVersion means the stored blob was written by a newer layout.
	ErrCacheVersion = errors.New("pagecache: unsupported cache version")
)

// Entry is one page's cached text and statistics.
type Entry struct {
	Ordinal   int            `json:"ordinal"`
	Name      string         `json:"name,omitempty"`
	Text      *richtext.Text `json:"text"`
	WordCount int            `json:"word_count"`
	CharCount int            `json:"char_count"`
}

// NewEntry builds a cache entry from a page, computing its statistics.
func NewEntry(p *doc.Page) Entry {
	e := Entry{Ordinal: p.Ordinal, Name: p.Name, Text: p.Text.Clone()}
	e.Recount()
	return e
}

// Recount recomputes the word and character counts from the entry text.
func (e *Entry) Recount() {
	plain := e.Text.String()
	e.WordCount = len(strings.Fields(plain))
	e.CharCount = len([]rune(plain))
}

// Cache is the ordered set of entries for one document.
type Cache struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Entry returns a pointer to the entry with the given ordinal, or nil.
func (c *Cache) Entry(ordinal int) *Entry {
	for i := range c.Entries {
		if c.Entries[i].Ordinal == ordinal {
			return &c.Entries[i]
		}
	}
	return nil
}

// Ordinals returns the entry ordinals in reading order.
func (c *Cache) Ordinals() []int {
	out := make([]int, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Ordinal
	}
	return out
}

func (c *Cache) sort() {
	sort.Slice(c.Entries, func(i, j int) bool {
		return c.Entries[i].Ordinal < c.Entries[j].Ordinal
	})
}

// Encode serializes the cache to its blob form.
func Encode(c *Cache) ([]byte, error) {
	blob, err := sonic.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode cache: %w", err)
	}
	return blob, nil
}

// Decode deserializes a blob, rejecting layouts newer than FormatVersion.
func Decode(blob []byte) (*Cache, error) {
	var c Cache
	if err := sonic.Unmarshal(blob, &c); err != nil {
		return nil, fmt.Errorf("decode cache: %w", err)
	}
	if c.Version > FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrCacheVersion, c.Version)
	}
	c.sort()
	return &c, nil
}
