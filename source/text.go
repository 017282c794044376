package source

import (
	"io"
	"strings"

	"github.com/jordanlucero/scanclean/doc"
)

// TextReader handles plain text. Form feeds split pages; without them the
// whole input is one page.
type TextReader struct{}

func (p *TextReader) ReadPages(r io.Reader, _ string) ([]*doc.Page, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var pages []*doc.Page
	for _, chunk := range strings.Split(string(raw), "\f") {
		chunk = strings.TrimSpace(strings.ReplaceAll(chunk, "\r\n", "\n"))
		if chunk == "" {
			continue
		}
		b := newPageBuilder("")
		b.addBlock(chunk, richAttrsNone)
		pages = append(pages, b.page())
	}
	return pages, nil
}
