// Package dom is a thin query facade over a parsed HTML document. The
// extraction heuristics depend only on this package, never on the concrete
// parser, so the parser can be swapped without touching any extractor.
package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed, read-only HTML page.
type Document struct {
	root *html.Node
}

// Parse builds a Document from a raw HTML body.
func Parse(body string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Select returns all descendant nodes matching the selector, in document
// order. An empty selector matches nothing.
func (d *Document) Select(selector string) []*Node {
	return selectFrom(d.root, selector)
}

// First returns the first node matching the selector, or nil.
func (d *Document) First(selector string) *Node {
	return firstFrom(d.root, selector)
}

// Node is a single node of the document tree. All navigation methods return
// nil when the requested relative does not exist; they never mutate the tree.
type Node struct {
	n *html.Node
}

func wrap(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n}
}

// Select returns all descendants of the node matching the selector, in
// document order. The node itself is never part of the result.
func (nd *Node) Select(selector string) []*Node {
	return selectFrom(nd.n, selector)
}

// First returns the first descendant matching the selector, or nil.
func (nd *Node) First(selector string) *Node {
	return firstFrom(nd.n, selector)
}

func (nd *Node) Parent() *Node      { return wrap(nd.n.Parent) }
func (nd *Node) PrevSibling() *Node { return wrap(nd.n.PrevSibling) }
func (nd *Node) NextSibling() *Node { return wrap(nd.n.NextSibling) }
func (nd *Node) FirstChild() *Node  { return wrap(nd.n.FirstChild) }
func (nd *Node) LastChild() *Node   { return wrap(nd.n.LastChild) }

// LastChildElement returns the last child that is an element node, or nil.
func (nd *Node) LastChildElement() *Node {
	for c := nd.n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return wrap(c)
		}
	}
	return nil
}

// IsElement reports whether the node is an element node.
func (nd *Node) IsElement() bool {
	return nd.n.Type == html.ElementNode
}

// TagName returns the element tag name, or "" for non-element nodes.
func (nd *Node) TagName() string {
	if nd.n.Type != html.ElementNode {
		return ""
	}
	return nd.n.Data
}

// Attr returns the value of the named attribute on an element node.
func (nd *Node) Attr(name string) (string, bool) {
	if nd.n.Type != html.ElementNode {
		return "", false
	}
	for _, a := range nd.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// TextData returns the node's own content when it is a text node.
func (nd *Node) TextData() (string, bool) {
	if nd.n.Type != html.TextNode {
		return "", false
	}
	return nd.n.Data, true
}

// FirstText returns the content of the first text node found in a depth-first
// walk of the subtree. Several heuristics key off this leading token rather
// than the joined text, because nested element text must not leak into the
// comparison.
func (nd *Node) FirstText() string {
	first := ""
	walkText(nd.n, func(data string) bool {
		first = data
		return false
	})
	return first
}

// Text returns all descendant text joined in document order.
func (nd *Node) Text() string {
	var sb strings.Builder
	walkText(nd.n, func(data string) bool {
		sb.WriteString(data)
		return true
	})
	return sb.String()
}

// Texts returns every descendant text node content in document order.
func (nd *Node) Texts() []string {
	var texts []string
	walkText(nd.n, func(data string) bool {
		texts = append(texts, data)
		return true
	})
	return texts
}

// walkText visits descendant text nodes depth-first until fn returns false.
func walkText(n *html.Node, fn func(string) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if !fn(c.Data) {
				return false
			}
			continue
		}
		if !walkText(c, fn) {
			return false
		}
	}
	return true
}

func selectFrom(n *html.Node, selector string) []*Node {
	if selector == "" {
		return nil
	}
	sel := goquery.NewDocumentFromNode(n).Find(selector)
	nodes := make([]*Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, wrap(s.Get(0)))
	})
	return nodes
}

func firstFrom(n *html.Node, selector string) *Node {
	if selector == "" {
		return nil
	}
	sel := goquery.NewDocumentFromNode(n).Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return wrap(sel.Get(0))
}
