// Package dom exposes a parsed HTML page through the small set of capabilities
// page transforms need: lookup by id, selector queries, attribute access and
// text extraction. Transforms depend on the Document and Element interfaces,
// not on the parser's node type.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed page.
type Document interface {
	// GetElementByID returns the first element in document order with the given id.
	GetElementByID(id string) (Element, bool)
	// QuerySelectorAll returns matching elements in document order.
	QuerySelectorAll(selector string) ([]Element, error)
	// Render serializes the document.
	Render() (string, error)
}

// Element is a single element node within a Document.
type Element interface {
	Tag() string
	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	TextContent() string
	Parent() (Element, bool)
	QuerySelectorAll(selector string) ([]Element, error)
}

// HTMLDocument implements Document on top of golang.org/x/net/html.
type HTMLDocument struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &HTMLDocument{root: root}, nil
}

// ParseString is Parse for in-memory content.
func ParseString(content string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(content))
}

// GetElementByID implements Document.
func (d *HTMLDocument) GetElementByID(id string) (Element, bool) {
	if n := findByID(d.root, id); n != nil {
		return &HTMLElement{node: n}, true
	}
	return nil, false
}

// QuerySelectorAll implements Document.
func (d *HTMLDocument) QuerySelectorAll(selector string) ([]Element, error) {
	return queryAll(d.root, selector)
}

// Render implements Document.
func (d *HTMLDocument) Render() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HTMLElement implements Element.
type HTMLElement struct {
	node *html.Node
}

// Tag returns the lowercase tag name.
func (e *HTMLElement) Tag() string { return e.node.Data }

// GetAttribute implements Element.
func (e *HTMLElement) GetAttribute(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute overwrites an existing attribute in place or appends a new one.
func (e *HTMLElement) SetAttribute(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttribute implements Element.
func (e *HTMLElement) RemoveAttribute(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// TextContent concatenates all descendant text nodes.
func (e *HTMLElement) TextContent() string {
	return htmlquery.InnerText(e.node)
}

// Parent returns the closest element ancestor.
func (e *HTMLElement) Parent() (Element, bool) {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return &HTMLElement{node: p}, true
		}
	}
	return nil, false
}

// QuerySelectorAll searches the element's descendants.
func (e *HTMLElement) QuerySelectorAll(selector string) ([]Element, error) {
	return queryAll(e.node, selector)
}

// IsHeading reports whether the element is h1..h6.
func IsHeading(e Element) bool {
	switch atom.Lookup([]byte(e.Tag())) {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// compiled caches parsed selectors; transforms query the same few selectors
// on every page.
var compiled sync.Map // selector -> cascadia.Selector

func compile(selector string) (cascadia.Selector, error) {
	if v, ok := compiled.Load(selector); ok {
		return v.(cascadia.Selector), nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	compiled.Store(selector, sel)
	return sel, nil
}

// queryAll returns the element descendants of top matching selector, in
// document order. top itself is never part of the result.
func queryAll(top *html.Node, selector string) ([]Element, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	nodes := sel.MatchAll(top)
	out := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		if n == top || n.Type != html.ElementNode {
			continue
		}
		out = append(out, &HTMLElement{node: n})
	}
	return out, nil
}
