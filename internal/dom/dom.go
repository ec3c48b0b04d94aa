// Package dom is a small document object model over golang.org/x/net/html.
// It offers just the operations the board needs to build and mutate a page:
// lookup by id or class, element creation, attributes, text and rendering.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document node.
func (d *Document) Root() *Element {
	return wrap(d.root)
}

// ElementByID returns the first element whose id attribute equals id, or nil.
func (d *Document) ElementByID(id string) *Element {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return wrap(found)
}

// ElementsByClass returns every element carrying class, in document order.
func (d *Document) ElementsByClass(class string) []*Element {
	return d.Root().ElementsByClass(class)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Element is a handle on an element node.
type Element struct {
	n *html.Node
}

func wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{n: n}
}

// NewElement creates a detached element. attrs are key/value pairs.
func NewElement(tag string, attrs ...string) *Element {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return &Element{n: n}
}

// Tag returns the element name.
func (e *Element) Tag() string { return e.n.Data }

// Attr returns the value of key, or "" when absent.
func (e *Element) Attr(key string) string {
	return attr(e.n, key)
}

// HasAttr reports whether key is present, regardless of its value.
func (e *Element) HasAttr(key string) bool {
	for _, a := range e.n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces key.
func (e *Element) SetAttr(key, val string) *Element {
	for i, a := range e.n.Attr {
		if a.Key == key {
			e.n.Attr[i].Val = val
			return e
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: key, Val: val})
	return e
}

// RemoveAttr deletes key if present.
func (e *Element) RemoveAttr(key string) *Element {
	kept := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	e.n.Attr = kept
	return e
}

// HasClass reports whether class appears in the class attribute.
func (e *Element) HasClass(class string) bool {
	return hasClass(e.n, class)
}

// SetClass replaces the class attribute.
func (e *Element) SetClass(classes ...string) *Element {
	return e.SetAttr("class", strings.Join(classes, " "))
}

// AppendChild attaches child (which must be detached) as the last child.
func (e *Element) AppendChild(child *Element) *Element {
	e.n.AppendChild(child.n)
	return e
}

// Append is AppendChild for several children; it returns e for chaining.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		e.AppendChild(c)
	}
	return e
}

// AppendText adds a text node.
func (e *Element) AppendText(text string) *Element {
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return e
}

// RemoveChildren detaches every child node.
func (e *Element) RemoveChildren() *Element {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	return e
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) *Element {
	return e.RemoveChildren().AppendText(text)
}

// Text returns the concatenated text content of e and its descendants.
func (e *Element) Text() string {
	var b strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

// Children returns the element children of e.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, wrap(c))
		}
	}
	return out
}

// ElementsByClass returns descendants of e carrying class, in document order.
func (e *Element) ElementsByClass(class string) []*Element {
	var out []*Element
	walk(e.n, func(n *html.Node) bool {
		if n != e.n && n.Type == html.ElementNode && hasClass(n, class) {
			out = append(out, wrap(n))
		}
		return true
	})
	return out
}

// ElementsByTag returns descendants of e with the given tag name.
func (e *Element) ElementsByTag(tag string) []*Element {
	var out []*Element
	walk(e.n, func(n *html.Node) bool {
		if n != e.n && n.Type == html.ElementNode && n.Data == tag {
			out = append(out, wrap(n))
		}
		return true
	})
	return out
}

// Find returns the first descendant for which match returns true.
func (e *Element) Find(match func(*Element) bool) *Element {
	var found *html.Node
	walk(e.n, func(n *html.Node) bool {
		if n != e.n && n.Type == html.ElementNode && match(wrap(n)) {
			found = n
			return false
		}
		return true
	})
	return wrap(found)
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
