// Package goquery adapts goquery selections to the newsparse node model and
// locates article bodies in fetched pages with CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/newsparse"
	"golang.org/x/net/html"
)

// Ensure Node implements the newsparse node interfaces at compile time.
var (
	_ newsparse.Node         = (*Node)(nil)
	_ newsparse.TagContainer = (*Node)(nil)
)

// Node wraps a single-node goquery selection.
type Node struct {
	sel *goquery.Selection
}

// NewNode wraps the first node of sel.
// Returns nil if the selection is empty.
func NewNode(sel *goquery.Selection) *Node {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return &Node{sel: sel.First()}
}

// WrapNode wraps a parsed html.Node, e.g. one returned by a content
// extraction library.
func WrapNode(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{sel: goquery.NewDocumentFromNode(n).Selection}
}

// ParseFragment parses an HTML fragment and returns its first top-level
// element. If the fragment has no elements, the body itself is returned.
func ParseFragment(fragment string) (newsparse.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "failed to parse HTML: %v", err)
	}
	body := doc.Find("body")
	if first := body.Children().First(); first.Length() > 0 {
		return NewNode(first), nil
	}
	return NewNode(body), nil
}

// PlainText returns the text content of an HTML fragment, such as a feed
// item description. Returns the input unchanged if it cannot be parsed.
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return doc.Find("body").Text()
}

// HTMLNode returns the underlying html.Node.
func (n *Node) HTMLNode() *html.Node {
	return n.sel.Get(0)
}

// Tag returns the lowercase element name, or empty string for non-elements.
func (n *Node) Tag() string {
	if n.HTMLNode().Type != html.ElementNode {
		return ""
	}
	return goquery.NodeName(n.sel)
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool {
	return n.HTMLNode().Type == html.TextNode
}

// Text returns the text content of the node's subtree.
func (n *Node) Text() string {
	return n.sel.Text()
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Children returns the child nodes, text and comments included.
func (n *Node) Children() []newsparse.Node {
	contents := n.sel.Contents()
	children := make([]newsparse.Node, 0, contents.Length())
	contents.Each(func(_ int, s *goquery.Selection) {
		children = append(children, &Node{sel: s})
	})
	return children
}

// ContainsTag reports whether any descendant element has one of the tags.
func (n *Node) ContainsTag(tags ...string) bool {
	if len(tags) == 0 {
		return false
	}
	if m, err := cascadia.Compile(strings.Join(tags, ", ")); err == nil {
		return n.sel.FindMatcher(m).Length() > 0
	}

	// Tags that are not valid selectors are compared by name.
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	found := false
	n.sel.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = set[goquery.NodeName(s)]
		return !found
	})
	return found
}
