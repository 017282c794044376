package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jordanlucero/scanclean/doc"
)

// MarkdownReader handles Markdown using goldmark. Headings start new pages
// and keep bold formatting; other blocks accumulate onto the current page.
type MarkdownReader struct{}

func (p *MarkdownReader) ReadPages(r io.Reader, _ string) ([]*doc.Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var pages []*doc.Page
	current := newPageBuilder("")
	flush := func() {
		if !current.empty() {
			pages = append(pages, current.page())
		}
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if title == "" {
				continue
			}
			flush()
			current = newPageBuilder(title)
			current.addBlock(title, boldAttrs)
		default:
			if t := markdownBlockText(n, src); t != "" {
				current.addBlock(t, richAttrsNone)
			}
		}
	}
	flush()
	return pages, nil
}

// markdownBlockText gets the text content of a goldmark AST node.
func markdownBlockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	// Container blocks and inlines: walk the children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		if s := markdownBlockText(c, src); s != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(s)
		}
	}
	return strings.TrimSpace(buf.String())
}
