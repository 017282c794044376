// Package doc models a multi-page document as seen by the analysis engine:
// an ordered set of pages, each with a stable 1-based ordinal, rich text
// content, and a last-modified stamp. Ordinals are contiguous starting at 1;
// every mutation here keeps that invariant and names the cache operation the
// caller must pair it with.
package doc

import (
	"fmt"
	"sort"
	"time"

	"github.com/jordanlucero/scanclean/richtext"
)

// Page is one page of a document.
type Page struct {
	Ordinal    int            // 1-based position, defines reading order
	Name       string         // optional display name
	Text       *richtext.Text // rich text content
	ModifiedAt time.Time
}

// SetText replaces the page's rich text and bumps the modified stamp.
func (p *Page) SetText(t *richtext.Text) {
	p.Text = t
	p.ModifiedAt = time.Now()
}

// Document owns an ordered set of pages.
type Document struct {
	ID    string
	Title string
	Pages []*Page
}

// Page returns the page with the given ordinal, or nil.
func (d *Document) Page(ordinal int) *Page {
	for _, p := range d.Pages {
		if p.Ordinal == ordinal {
			return p
		}
	}
	return nil
}

// AppendPages adds pages to the end of the document, assigning the next
// contiguous ordinals. Pair with Service.AddEntries on the cache.
func (d *Document) AppendPages(pages ...*Page) {
	next := len(d.Pages) + 1
	for _, p := range pages {
		p.Ordinal = next
		next++
		d.Pages = append(d.Pages, p)
	}
}

// RemovePage deletes the page with the given ordinal and renumbers the
// remaining pages to stay contiguous. Pair with Service.RemoveEntry followed
// by the same renumbering of cache entries before the next cache read.
func (d *Document) RemovePage(ordinal int) error {
	idx := -1
	for i, p := range d.Pages {
		if p.Ordinal == ordinal {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no page with ordinal %d", ordinal)
	}
	d.Pages = append(d.Pages[:idx], d.Pages[idx+1:]...)
	for i, p := range d.Pages {
		p.Ordinal = i + 1
	}
	return nil
}

// SwapPages exchanges the ordinals of two pages, used for move-up/move-down
// reordering. Pair with Service.SwapOrdinals on the cache.
func (d *Document) SwapPages(a, b int) error {
	pa, pb := d.Page(a), d.Page(b)
	if pa == nil || pb == nil {
		return fmt.Errorf("swap %d,%d: page not found", a, b)
	}
	pa.Ordinal, pb.Ordinal = pb.Ordinal, pa.Ordinal
	// Keep the slice in reading order.
	sort.Slice(d.Pages, func(i, j int) bool {
		return d.Pages[i].Ordinal < d.Pages[j].Ordinal
	})
	return nil
}

// Ordinals returns the page ordinals in reading order.
func (d *Document) Ordinals() []int {
	out := make([]int, len(d.Pages))
	for i, p := range d.Pages {
		out[i] = p.Ordinal
	}
	return out
}
