package corpus

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// LinkKind records where a link was found.
type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "autolink"
	LinkKindHTML   LinkKind = "html"
)

// Link is a link-like construct extracted from a document body.
type Link struct {
	Kind        LinkKind
	Destination string
}

// parsed is the result of one pass over a Markdown body.
type parsed struct {
	title string
	links []Link
}

// add records l unless its destination was already recorded.
func (p *parsed) add(seen map[string]bool, links ...Link) {
	for _, l := range links {
		if seen[l.Destination] {
			continue
		}
		seen[l.Destination] = true
		p.links = append(p.links, l)
	}
}

// analyze parses body once and extracts the first level-1 heading and the
// distinct link destinations, including href/src attributes inside raw HTML.
// Reference-style links resolve to their definition's destination, so a
// definition is recorded once however often it is used.
func analyze(body []byte) parsed {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	var out parsed
	seen := map[string]bool{}
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			if node.Level == 1 && out.title == "" {
				out.title = strings.TrimSpace(string(nodeText(node, body)))
			}
		case *gmast.Link:
			out.add(seen, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		case *gmast.Image:
			out.add(seen, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.AutoLink:
			out.add(seen, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.HTMLBlock:
			var raw bytes.Buffer
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				raw.Write(seg.Value(body))
			}
			if node.HasClosure() {
				raw.Write(node.ClosureLine.Value(body))
			}
			out.add(seen, htmlLinks(raw.Bytes())...)
		case *gmast.RawHTML:
			var raw bytes.Buffer
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				raw.Write(seg.Value(body))
			}
			out.add(seen, htmlLinks(raw.Bytes())...)
		}
		return gmast.WalkContinue, nil
	})

	// Definitions no link used are still resolved by the generator.
	for _, ref := range ctx.References() {
		out.add(seen, Link{Kind: LinkKindInline, Destination: string(ref.Destination())})
	}
	return out
}

// nodeText concatenates the text segments below n.
func nodeText(n gmast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			buf.Write(t.Segment.Value(source))
			continue
		}
		buf.Write(nodeText(c, source))
	}
	return buf.Bytes()
}

// htmlLinks tokenizes an HTML fragment and returns its href and src values.
func htmlLinks(fragment []byte) []Link {
	var links []Link
	z := html.NewTokenizer(bytes.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			_, hasAttr := z.TagName()
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				k := string(key)
				if (k == "href" || k == "src") && len(val) > 0 {
					links = append(links, Link{Kind: LinkKindHTML, Destination: string(val)})
				}
			}
		}
	}
}
