// Package htmldoc wraps an x/net/html parse tree with the handful of queries
// the audit rules need: first/all element lookup, attribute access, trimmed
// text content and a serialized form of the whole document.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
	raw  string
}

// Element is a single element node of a Document.
type Element struct {
	node *html.Node
}

// Parse reads an HTML document from r. The parser is lenient: malformed
// markup is repaired rather than rejected, so errors are limited to read
// failures on r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	return &Document{root: root, raw: buf.String()}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// HTML returns the serialized document.
func (d *Document) HTML() string {
	return d.raw
}

// Size returns the length of the serialized document in bytes.
func (d *Document) Size() int {
	return len(d.raw)
}

// Find returns the first element in document order named tag for which
// match reports true. A nil match accepts any element with that name.
func (d *Document) Find(tag string, match func(*Element) bool) (*Element, bool) {
	var found *Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != tag {
			return true
		}
		el := &Element{node: n}
		if match == nil || match(el) {
			found = el
			return false
		}
		return true
	})
	return found, found != nil
}

// FindAll returns every element whose name is one of tags, in document order.
func (d *Document) FindAll(tags ...string) []*Element {
	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && slices.Contains(tags, n.Data) {
			out = append(out, &Element{node: n})
		}
		return true
	})
	return out
}

// FindMeta returns the first <meta> whose name attribute equals name,
// ignoring case.
func (d *Document) FindMeta(name string) (*Element, bool) {
	return d.Find("meta", func(el *Element) bool {
		v, ok := el.Attr("name")
		return ok && strings.EqualFold(strings.TrimSpace(v), name)
	})
}

// Tag returns the lower-case element name, e.g. "h2".
func (e *Element) Tag() string {
	return e.node.Data
}

// Attr returns the value of the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasToken reports whether the space-separated attribute name contains tok,
// ignoring case. It is meant for multi-valued attributes such as rel.
func (e *Element) HasToken(name, tok string) bool {
	v, ok := e.Attr(name)
	if !ok {
		return false
	}
	for _, f := range strings.Fields(v) {
		if strings.EqualFold(f, tok) {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content of the element, trimmed.
func (e *Element) Text() string {
	var sb strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		return true
	})
	return strings.TrimSpace(sb.String())
}

// walk visits n and its descendants depth-first in document order until
// visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}
