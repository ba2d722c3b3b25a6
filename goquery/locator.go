package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsparse"
	"golang.org/x/net/html"
)

// Ensure Locator implements newsparse.Locator at compile time.
var _ newsparse.Locator = (*Locator)(nil)

// DefaultRemove lists the elements pruned from every page before the body is
// selected. Comments are always removed as well.
var DefaultRemove = []string{"script", "style", "link", "noscript", "br", "hr"}

// Locator finds the article body in a page with a CSS selector.
type Locator struct {
	body   string
	remove []string
}

// NewLocator returns a Locator selecting body after pruning the default
// elements and the extra remove selectors. An empty body selects <body>.
func NewLocator(body string, remove ...string) *Locator {
	if strings.TrimSpace(body) == "" {
		body = "body"
	}
	return &Locator{
		body:   body,
		remove: append(append([]string{}, DefaultRemove...), remove...),
	}
}

// KeepBreaks stops l from pruning <br> elements, for sites that split
// paragraphs on them. It returns l.
func (l *Locator) KeepBreaks() *Locator {
	l.remove = slices.DeleteFunc(l.remove, func(s string) bool { return s == "br" })
	return l
}

// Locate parses page and returns the first element matching the body
// selector. Returns ENOTFOUND if nothing matches.
func (l *Locator) Locate(page string) (newsparse.Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "failed to parse HTML: %v", err)
	}

	Prune(doc.Selection, l.remove...)

	body := doc.Find(l.body)
	if body.Length() == 0 {
		return nil, newsparse.Errorf(newsparse.ENOTFOUND, "article body %q not found", l.body)
	}
	return NewNode(body), nil
}

// Prune removes comments and every element matching one of the selectors
// from sel's subtree.
func Prune(sel *goquery.Selection, selectors ...string) {
	for _, n := range sel.Nodes {
		removeComments(n)
	}
	for _, s := range selectors {
		if strings.TrimSpace(s) == "" {
			continue
		}
		sel.Find(s).Remove()
	}
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}
